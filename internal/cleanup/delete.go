package cleanup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Gmail system labels used by the trash mutation.
const (
	labelTrash = "TRASH"
	labelInbox = "INBOX"
)

// BatchResult reports the outcome of one delete invocation.
type BatchResult struct {
	Succeeded int
	Failed    int
	Errors    []string
}

type deleteSvc interface {
	BatchModify(ctx context.Context, ids, addLabelIDs, removeLabelIDs []string) error
	TrashMessage(ctx context.Context, msgID string) error
}

// NewExecutor creates a delete executor over the mailbox gateway.
func NewExecutor(svc deleteSvc) *Executor {
	return &Executor{svc: svc}
}

// Executor moves messages to trash: one bulk mutation first, falling back to
// per-message calls when the bulk call fails outright.
type Executor struct {
	svc deleteSvc
}

// Delete trashes the given messages. Empty input returns a zero result
// without any remote call. The bulk path is all-or-nothing; partial success
// is only possible on the fallback path.
func (e *Executor) Delete(ctx context.Context, ids []string) BatchResult {
	if len(ids) == 0 {
		return BatchResult{Errors: []string{}}
	}

	err := e.svc.BatchModify(ctx, ids, []string{labelTrash}, []string{labelInbox})
	if err == nil {
		log.Info().Int("count", len(ids)).Msg("batch trash succeeded")

		return BatchResult{Succeeded: len(ids), Errors: []string{}}
	}

	log.Warn().Err(err).Int("count", len(ids)).Msg("batch trash failed, repairing per message")

	return e.Repair(ctx, ids)
}

// Repair trashes messages one by one, accumulating per-message failures.
// Idempotent and safe to call directly: trashing an already-trashed message
// is a no-op for Gmail.
func (e *Executor) Repair(ctx context.Context, ids []string) BatchResult {
	result := BatchResult{Errors: []string{}}

	for _, id := range ids {
		if err := e.svc.TrashMessage(ctx, id); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("failed to trash %s: %s", id, err))
			continue
		}
		result.Succeeded++
	}

	log.Info().
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("per-message trash completed")

	return result
}
