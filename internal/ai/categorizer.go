// Package ai enriches sender stats with LLM-assigned categories. Everything
// here is best-effort: any remote failure degrades to the uncategorized
// bucket, never to an error.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hal9000y/mailsweep/internal/cleanup"
)

// DefaultModel is used when OPENAI_MODEL is not configured.
const DefaultModel = "gpt-4o-mini"

// maxSendersPerPrompt bounds prompt size and cost.
const maxSendersPerPrompt = 50

// CategoryUncategorized collects senders with no AI assignment.
const CategoryUncategorized = "uncategorized"

// knownCategories is the fixed taxonomy the model is asked to use.
var knownCategories = []string{
	"newsletter",
	"promotional",
	"social",
	"automated",
	"potentially_important",
}

// CategoryMap maps a category name to the senders assigned to it. A snapshot:
// it must be recomputed whenever the working set changes.
type CategoryMap map[string][]string

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewCategorizer creates a categorizer. An empty API key leaves the client
// unset; Categorize then always returns the uncategorized fallback.
func NewCategorizer(apiKey, model string) *Categorizer {
	c := &Categorizer{model: model}
	if c.model == "" {
		c.model = DefaultModel
	}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	}
	return c
}

// Categorizer groups senders into categories via an OpenAI chat completion.
type Categorizer struct {
	client chatClient
	model  string
}

// Categorize assigns each of the top senders to one category. It never
// returns an error: a missing credential, failed call or malformed payload
// all yield {"uncategorized": input senders}.
func (c *Categorizer) Categorize(ctx context.Context, stats cleanup.SenderStats) CategoryMap {
	senders := stats.Senders()
	if len(senders) > maxSendersPerPrompt {
		senders = senders[:maxSendersPerPrompt]
	}

	if c.client == nil || len(senders) == 0 {
		return uncategorized(senders)
	}

	payload, err := json.Marshal(senders)
	if err != nil {
		return uncategorized(senders)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: categorizePrompt(payload)},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("sender categorization call failed")

		return uncategorized(senders)
	}

	if len(resp.Choices) == 0 {
		return uncategorized(senders)
	}

	categories, err := parseCategories(resp.Choices[0].Message.Content, senders)
	if err != nil {
		log.Warn().Err(err).Msg("sender categorization payload rejected")

		return uncategorized(senders)
	}

	log.Info().Int("senders", len(senders)).Int("categories", len(categories)).
		Msg("categorization completed")

	return categories
}

// parseCategories validates the model output: unknown category keys are
// dropped, as are senders that were never in the input; senders the model
// skipped land in the uncategorized bucket.
func parseCategories(raw string, senders []string) (CategoryMap, error) {
	var decoded map[string][]string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("json.Unmarshal failed: %w", err)
	}

	input := make(map[string]bool, len(senders))
	for _, s := range senders {
		input[s] = true
	}

	assigned := make(map[string]bool, len(senders))
	categories := CategoryMap{}

	for _, category := range knownCategories {
		for _, sender := range decoded[category] {
			if !input[sender] || assigned[sender] {
				continue
			}
			assigned[sender] = true
			categories[category] = append(categories[category], sender)
		}
	}

	if len(assigned) == 0 {
		return nil, fmt.Errorf("no usable assignments in payload")
	}

	for _, sender := range senders {
		if !assigned[sender] {
			categories[CategoryUncategorized] = append(categories[CategoryUncategorized], sender)
		}
	}

	return categories, nil
}

func uncategorized(senders []string) CategoryMap {
	return CategoryMap{CategoryUncategorized: senders}
}

func categorizePrompt(senders []byte) string {
	return fmt.Sprintf(`Analyze these email senders and categorize them into groups.

Senders:
%s

Categorize into these groups:
- newsletter: Regular newsletters and subscriptions
- promotional: Marketing, sales, deals, promotions
- social: Social media notifications (LinkedIn, Twitter, Facebook, etc.)
- automated: System notifications, alerts, no-reply addresses
- potentially_important: Might be from real people or important services

Return a JSON object with category names as keys and arrays of sender emails as values.
Only include senders in one category. Return ONLY valid JSON, no other text.`, senders)
}

// Summarize produces a short human-readable summary of a pending deletion.
// Without a client, or on any failure, it falls back to a deterministic
// sentence built from the stats.
func (c *Categorizer) Summarize(ctx context.Context, messages []cleanup.Message, stats cleanup.SenderStats) string {
	if c.client == nil || len(stats) == 0 {
		return basicSummary(messages, stats)
	}

	top := stats
	if len(top) > 10 {
		top = top[:10]
	}

	var lines []string
	for _, st := range top {
		lines = append(lines, fmt.Sprintf("%s: %d", st.Sender, st.Count))
	}

	prompt := fmt.Sprintf(`Create a brief, friendly summary of emails about to be deleted.

Total emails: %d
Top senders (sender: count):
%s

Write 2-3 sentences summarizing:
1. How many emails will be deleted
2. Main sources (group similar senders)
3. Any recommendation (e.g., if many are from newsletters, suggest unsubscribing)

Keep it concise and helpful.`, len(messages), strings.Join(lines, "\n"))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   200,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return basicSummary(messages, stats)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

func basicSummary(messages []cleanup.Message, stats cleanup.SenderStats) string {
	if len(stats) == 0 {
		return "Nothing to delete."
	}

	return fmt.Sprintf("Ready to delete %d unread emails from %d senders. Top sender: %s (%d emails).",
		len(messages), len(stats), stats[0].Sender, stats[0].Count)
}
