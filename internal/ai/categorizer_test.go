package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hal9000y/mailsweep/internal/cleanup"
)

type chatClientMock struct {
	CreateChatCompletionFunc func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

func (m *chatClientMock) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return m.CreateChatCompletionFunc(ctx, req)
}

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func statsFor(senders ...string) cleanup.SenderStats {
	stats := make(cleanup.SenderStats, 0, len(senders))
	for i, s := range senders {
		stats = append(stats, cleanup.SenderStat{Sender: s, Count: len(senders) - i})
	}
	return stats
}

func TestCategorizeWithoutClient(t *testing.T) {
	c := NewCategorizer("", "")

	got := c.Categorize(context.Background(), statsFor("a@x.com", "b@y.com"))

	assert.Equal(t, CategoryMap{"uncategorized": {"a@x.com", "b@y.com"}}, got)
}

func TestCategorizeCallFailure(t *testing.T) {
	c := &Categorizer{
		model: DefaultModel,
		client: &chatClientMock{
			CreateChatCompletionFunc: func(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, errors.New("api down")
			},
		},
	}

	got := c.Categorize(context.Background(), statsFor("a@x.com", "b@y.com"))

	assert.Equal(t, CategoryMap{"uncategorized": {"a@x.com", "b@y.com"}}, got)
}

func TestCategorizeMalformedPayload(t *testing.T) {
	cases := []string{
		"not json at all",
		`["a@x.com"]`,
		`{"newsletter": "a@x.com"}`,
		`{"unknown_bucket": ["a@x.com"]}`,
	}

	for _, payload := range cases {
		t.Run(payload, func(t *testing.T) {
			c := &Categorizer{
				model: DefaultModel,
				client: &chatClientMock{
					CreateChatCompletionFunc: func(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
						return chatResponse(payload), nil
					},
				},
			}

			got := c.Categorize(context.Background(), statsFor("a@x.com", "b@y.com"))

			assert.Equal(t, CategoryMap{"uncategorized": {"a@x.com", "b@y.com"}}, got)
		})
	}
}

func TestCategorizeValidPayload(t *testing.T) {
	c := &Categorizer{
		model: DefaultModel,
		client: &chatClientMock{
			CreateChatCompletionFunc: func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				require.Equal(t, DefaultModel, req.Model)
				require.NotNil(t, req.ResponseFormat)
				return chatResponse(`{
					"newsletter": ["news@a.com"],
					"promotional": ["promo@b.com", "intruder@evil.com"],
					"potentially_important": ["human@c.com"]
				}`), nil
			},
		},
	}

	got := c.Categorize(context.Background(), statsFor("news@a.com", "promo@b.com", "human@c.com", "skipped@d.com"))

	assert.Equal(t, CategoryMap{
		"newsletter":            {"news@a.com"},
		"promotional":           {"promo@b.com"},
		"potentially_important": {"human@c.com"},
		"uncategorized":         {"skipped@d.com"},
	}, got, "unknown senders dropped, unassigned senders land in uncategorized")
}

func TestCategorizeOutputSendersSubsetOfInput(t *testing.T) {
	c := &Categorizer{
		model: DefaultModel,
		client: &chatClientMock{
			CreateChatCompletionFunc: func(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return chatResponse(`{"automated": ["a@x.com", "ghost@nowhere.com"]}`), nil
			},
		},
	}

	input := statsFor("a@x.com", "b@y.com")
	got := c.Categorize(context.Background(), input)

	inputSet := map[string]bool{"a@x.com": true, "b@y.com": true}
	for category, senders := range got {
		for _, s := range senders {
			assert.True(t, inputSet[s], "sender %s in category %s not part of input", s, category)
		}
	}
}

func TestCategorizeCapsPromptSenders(t *testing.T) {
	var senders []string
	for i := range 60 {
		senders = append(senders, fmt.Sprintf("s%02d@example.com", i))
	}

	c := NewCategorizer("", "")

	got := c.Categorize(context.Background(), statsFor(senders...))

	require.Len(t, got["uncategorized"], 50, "prompt input bounded to top 50 senders")
	assert.Equal(t, "s00@example.com", got["uncategorized"][0])
}

func TestSummarizeFallback(t *testing.T) {
	c := NewCategorizer("", "")

	msgs := make([]cleanup.Message, 15)
	summary := c.Summarize(context.Background(), msgs, statsFor("top@x.com", "other@y.com"))

	assert.Equal(t, "Ready to delete 15 unread emails from 2 senders. Top sender: top@x.com (2 emails).", summary)
}

func TestSummarizeEmpty(t *testing.T) {
	c := NewCategorizer("", "")

	assert.Equal(t, "Nothing to delete.", c.Summarize(context.Background(), nil, nil))
}

func TestSummarizeUsesModelOutput(t *testing.T) {
	c := &Categorizer{
		model: DefaultModel,
		client: &chatClientMock{
			CreateChatCompletionFunc: func(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return chatResponse("  You are about to delete 3 emails.  "), nil
			},
		},
	}

	summary := c.Summarize(context.Background(), make([]cleanup.Message, 3), statsFor("a@x.com"))

	assert.Equal(t, "You are about to delete 3 emails.", summary)
}
