package cleanup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/mailsweep/internal/cleanup"
)

type deleteSvcMock struct {
	BatchModifyFunc  func(ctx context.Context, ids, addLabelIDs, removeLabelIDs []string) error
	TrashMessageFunc func(ctx context.Context, msgID string) error

	batchCalls []int
	trashCalls []string
}

func (m *deleteSvcMock) BatchModify(ctx context.Context, ids, addLabelIDs, removeLabelIDs []string) error {
	m.batchCalls = append(m.batchCalls, len(ids))
	return m.BatchModifyFunc(ctx, ids, addLabelIDs, removeLabelIDs)
}

func (m *deleteSvcMock) TrashMessage(ctx context.Context, msgID string) error {
	m.trashCalls = append(m.trashCalls, msgID)
	return m.TrashMessageFunc(ctx, msgID)
}

func TestDeleteEmptyInputMakesNoRemoteCalls(t *testing.T) {
	svc := &deleteSvcMock{}
	executor := cleanup.NewExecutor(svc)

	result := executor.Delete(context.Background(), nil)

	assert.Equal(t, cleanup.BatchResult{Succeeded: 0, Failed: 0, Errors: []string{}}, result)
	assert.Empty(t, svc.batchCalls)
	assert.Empty(t, svc.trashCalls)
}

func TestDeleteBulkSuccess(t *testing.T) {
	svc := &deleteSvcMock{
		BatchModifyFunc: func(_ context.Context, ids, addLabelIDs, removeLabelIDs []string) error {
			assert.Equal(t, []string{"TRASH"}, addLabelIDs)
			assert.Equal(t, []string{"INBOX"}, removeLabelIDs)
			return nil
		},
	}
	executor := cleanup.NewExecutor(svc)

	result := executor.Delete(context.Background(), []string{"m-1", "m-2", "m-3"})

	assert.Equal(t, cleanup.BatchResult{Succeeded: 3, Failed: 0, Errors: []string{}}, result)
	assert.Equal(t, []int{3}, svc.batchCalls)
	assert.Empty(t, svc.trashCalls, "bulk success must not trigger the fallback")
}

func TestDeleteBulkFailureFallsBackPerMessage(t *testing.T) {
	svc := &deleteSvcMock{
		BatchModifyFunc: func(_ context.Context, _, _, _ []string) error {
			return errors.New("batch rejected")
		},
		TrashMessageFunc: func(_ context.Context, msgID string) error {
			if msgID == "m-2" {
				return errors.New("not found")
			}
			return nil
		},
	}
	executor := cleanup.NewExecutor(svc)

	result := executor.Delete(context.Background(), []string{"m-1", "m-2", "m-3"})

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "m-2")
	assert.Equal(t, []string{"m-1", "m-2", "m-3"}, svc.trashCalls)
}

func TestRepairDirectly(t *testing.T) {
	svc := &deleteSvcMock{
		TrashMessageFunc: func(_ context.Context, _ string) error { return nil },
	}
	executor := cleanup.NewExecutor(svc)

	result := executor.Repair(context.Background(), []string{"m-1", "m-2"})

	assert.Equal(t, cleanup.BatchResult{Succeeded: 2, Failed: 0, Errors: []string{}}, result)
	assert.Empty(t, svc.batchCalls, "repair must not touch the bulk path")
}
