package tool_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"

	"github.com/hal9000y/mailsweep/internal/ai"
	"github.com/hal9000y/mailsweep/internal/cleanup"
	"github.com/hal9000y/mailsweep/internal/eventlog"
	"github.com/hal9000y/mailsweep/internal/tool"
)

type gmailSvcMock struct {
	ListMessageIDsFunc     func(ctx context.Context, query string, maxResults int64) ([]string, error)
	GetMessageMetadataFunc func(ctx context.Context, msgID string) (*gmail.Message, error)
	GetMessageFunc         func(ctx context.Context, msgID string) (*gmail.Message, error)
	BatchModifyFunc        func(ctx context.Context, ids, addLabelIDs, removeLabelIDs []string) error
	TrashMessageFunc       func(ctx context.Context, msgID string) error
	ListLabelsFunc         func(ctx context.Context) ([]*gmail.Label, error)
}

var errNotConfigured = errors.New("mock not configured")

func (m *gmailSvcMock) ListMessageIDs(ctx context.Context, query string, maxResults int64) ([]string, error) {
	if m.ListMessageIDsFunc == nil {
		return nil, errNotConfigured
	}
	return m.ListMessageIDsFunc(ctx, query, maxResults)
}

func (m *gmailSvcMock) GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error) {
	if m.GetMessageMetadataFunc == nil {
		return nil, errNotConfigured
	}
	return m.GetMessageMetadataFunc(ctx, msgID)
}

func (m *gmailSvcMock) GetMessage(ctx context.Context, msgID string) (*gmail.Message, error) {
	if m.GetMessageFunc == nil {
		return nil, errNotConfigured
	}
	return m.GetMessageFunc(ctx, msgID)
}

func (m *gmailSvcMock) BatchModify(ctx context.Context, ids, addLabelIDs, removeLabelIDs []string) error {
	if m.BatchModifyFunc == nil {
		return errNotConfigured
	}
	return m.BatchModifyFunc(ctx, ids, addLabelIDs, removeLabelIDs)
}

func (m *gmailSvcMock) TrashMessage(ctx context.Context, msgID string) error {
	if m.TrashMessageFunc == nil {
		return errNotConfigured
	}
	return m.TrashMessageFunc(ctx, msgID)
}

func (m *gmailSvcMock) ListLabels(ctx context.Context) ([]*gmail.Label, error) {
	if m.ListLabelsFunc == nil {
		return nil, errNotConfigured
	}
	return m.ListLabelsFunc(ctx)
}

type aiSvcMock struct {
	CategorizeFunc func(ctx context.Context, stats cleanup.SenderStats) ai.CategoryMap
	SummarizeFunc  func(ctx context.Context, messages []cleanup.Message, stats cleanup.SenderStats) string
}

func (m *aiSvcMock) Categorize(ctx context.Context, stats cleanup.SenderStats) ai.CategoryMap {
	if m.CategorizeFunc == nil {
		return ai.CategoryMap{"uncategorized": stats.Senders()}
	}
	return m.CategorizeFunc(ctx, stats)
}

func (m *aiSvcMock) Summarize(ctx context.Context, messages []cleanup.Message, stats cleanup.SenderStats) string {
	if m.SummarizeFunc == nil {
		return ""
	}
	return m.SummarizeFunc(ctx, messages, stats)
}

type testSession struct {
	ctx           context.Context
	client        *mcp.ClientSession
	serverSession *mcp.ServerSession
}

func (s *testSession) Close() {
	s.client.Close()
	s.serverSession.Close()
}

func newTestSession(t *testing.T, svc *gmailSvcMock, aiSvc *aiSvcMock, rec *eventlog.Recorder) *testSession {
	t.Helper()

	if rec == nil {
		rec = eventlog.NewRecorder(0)
	}

	server := tool.NewServer(svc, aiSvc, rec)
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	return &testSession{
		ctx:           ctx,
		client:        clientSession,
		serverSession: serverSession,
	}
}

func callTool[T any](t *testing.T, s *testSession, name string, args any) T {
	t.Helper()

	result, err := s.client.CallTool(s.ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.IsError, "unexpected tool error: %v", result.Content)
	require.NotEmpty(t, result.Content)

	var response T
	require.NoError(t, json.Unmarshal(
		[]byte(result.Content[0].(*mcp.TextContent).Text),
		&response,
	))

	return response
}

func callToolExpectError(t *testing.T, s *testSession, name string, args any) string {
	t.Helper()

	result, err := s.client.CallTool(s.ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.True(t, result.IsError, "expected tool error")
	require.NotEmpty(t, result.Content)

	return result.Content[0].(*mcp.TextContent).Text
}
