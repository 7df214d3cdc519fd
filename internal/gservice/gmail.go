// Package gservice wraps the Gmail API behind the operations the cleanup
// core needs: search, metadata fetch, batch label mutation, trash.
package gservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/hal9000y/mailsweep/internal/auth"
)

const gmailUserID = "me"

// maxRetryElapsed bounds the backoff loop on rate-limited calls.
const maxRetryElapsed = 15 * time.Second

// ErrRemoteUnavailable indicates a transport or auth failure talking to Gmail.
var ErrRemoteUnavailable = errors.New("mailbox service unavailable")

// ErrRateLimited indicates Gmail throttled the call and retries were exhausted.
var ErrRateLimited = errors.New("mailbox service rate limited")

// NewGMail creates a gateway bound to an OAuth config and token source.
func NewGMail(cfg *oauth2.Config, tok *auth.Token) *GMail {
	return &GMail{
		cfg: cfg,
		tok: tok,
	}
}

// GMail issues Gmail API calls, constructing a service per call from the
// current token so refreshed credentials are always picked up.
type GMail struct {
	cfg *oauth2.Config
	tok *auth.Token
}

// ListMessageIDs returns the IDs of messages matching the search query,
// following result pages up to maxResults.
func (m *GMail) ListMessageIDs(ctx context.Context, query string, maxResults int64) ([]string, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w: %s", ErrRemoteUnavailable, err)
	}

	var ids []string
	pageToken := ""

	for {
		call := svc.Users.Messages.List(gmailUserID).
			Q(query).
			PageToken(pageToken).
			MaxResults(maxResults - int64(len(ids)))

		var result *gmail.ListMessagesResponse
		err := m.retry(ctx, func() error {
			var callErr error
			result, callErr = call.Do()
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("messages.List failed: %w", err)
		}

		for _, msg := range result.Messages {
			ids = append(ids, msg.Id)
		}

		pageToken = result.NextPageToken
		if pageToken == "" || int64(len(ids)) >= maxResults {
			break
		}
	}

	if int64(len(ids)) > maxResults {
		ids = ids[:maxResults]
	}

	return ids, nil
}

// GetMessageMetadata fetches the From/Subject/Date headers plus snippet,
// labels and size for a single message.
func (m *GMail) GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w: %s", ErrRemoteUnavailable, err)
	}

	var msg *gmail.Message
	err = m.retry(ctx, func() error {
		var callErr error
		msg, callErr = svc.Users.Messages.Get(gmailUserID, msgID).
			Format("metadata").
			MetadataHeaders("From", "Subject", "Date").
			Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("messages.Get failed: %w", err)
	}

	return msg, nil
}

// GetMessage fetches a full message including body parts.
func (m *GMail) GetMessage(ctx context.Context, msgID string) (*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w: %s", ErrRemoteUnavailable, err)
	}

	var msg *gmail.Message
	err = m.retry(ctx, func() error {
		var callErr error
		msg, callErr = svc.Users.Messages.Get(gmailUserID, msgID).Format("full").Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("messages.Get failed: %w", err)
	}

	return msg, nil
}

// BatchModify applies the same label change to all ids in one call. The call
// is all-or-nothing from the caller's perspective; fallback on failure is the
// caller's responsibility.
func (m *GMail) BatchModify(ctx context.Context, ids, addLabelIDs, removeLabelIDs []string) error {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return fmt.Errorf("newSvc failed: %w: %s", ErrRemoteUnavailable, err)
	}

	req := &gmail.BatchModifyMessagesRequest{
		Ids:            ids,
		AddLabelIds:    addLabelIDs,
		RemoveLabelIds: removeLabelIDs,
	}

	err = m.retry(ctx, func() error {
		return svc.Users.Messages.BatchModify(gmailUserID, req).Do()
	})
	if err != nil {
		return fmt.Errorf("messages.BatchModify failed: %w", err)
	}

	return nil
}

// TrashMessage moves a single message to trash.
func (m *GMail) TrashMessage(ctx context.Context, msgID string) error {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return fmt.Errorf("newSvc failed: %w: %s", ErrRemoteUnavailable, err)
	}

	err = m.retry(ctx, func() error {
		_, callErr := svc.Users.Messages.Trash(gmailUserID, msgID).Do()
		return callErr
	})
	if err != nil {
		return fmt.Errorf("messages.Trash failed: %w", err)
	}

	return nil
}

// ListLabels returns the user's labels.
func (m *GMail) ListLabels(ctx context.Context) ([]*gmail.Label, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w: %s", ErrRemoteUnavailable, err)
	}

	var result *gmail.ListLabelsResponse
	err = m.retry(ctx, func() error {
		var callErr error
		result, callErr = svc.Users.Labels.List(gmailUserID).Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("labels.List failed: %w", err)
	}

	return result.Labels, nil
}

// retry runs call, backing off and retrying while Gmail reports throttling.
// Exhausted retries degrade to ErrRemoteUnavailable (still marked rate
// limited); any other failure is ErrRemoteUnavailable immediately.
func (m *GMail) retry(ctx context.Context, call func() error) error {
	throttled := false
	op := func() error {
		err := call()
		if err == nil {
			return nil
		}
		if isRateLimited(err) {
			throttled = true
			return err
		}
		throttled = false
		return backoff.Permanent(err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxRetryElapsed

	err := backoff.Retry(op, backoff.WithContext(bo, ctx))
	if err == nil {
		return nil
	}

	if throttled {
		return fmt.Errorf("%w: %w: %s", ErrRemoteUnavailable, ErrRateLimited, err)
	}

	return fmt.Errorf("%w: %s", ErrRemoteUnavailable, err)
}

func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}

	if apiErr.Code == http.StatusTooManyRequests {
		return true
	}

	if apiErr.Code == http.StatusForbidden {
		for _, e := range apiErr.Errors {
			if e.Reason == "rateLimitExceeded" || e.Reason == "userRateLimitExceeded" {
				return true
			}
		}
	}

	return false
}

func (m *GMail) newSvc(ctx context.Context) (*gmail.Service, error) {
	t, err := m.tok.OAuthToken()
	if err != nil {
		return nil, fmt.Errorf("tok.OAuthToken failed: %w", err)
	}

	clt := m.cfg.Client(ctx, t)

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(clt))
	if err != nil {
		return nil, fmt.Errorf("gmail.NewService failed: %w", err)
	}

	return svc, nil
}
