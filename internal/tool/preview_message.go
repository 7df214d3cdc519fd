package tool

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/hal9000y/mailsweep/internal/format"
)

// PreviewMessageRequest identifies the message to preview.
type PreviewMessageRequest struct {
	MessageID string `json:"message_id" jsonschema:"ID of the message to preview"`
}

// PreviewMessageResponse carries the readable body of a message.
type PreviewMessageResponse struct {
	MessageID string `json:"message_id" jsonschema:"message ID"`
	BodyText  string `json:"body_text" jsonschema:"plain-text body, falling back to snippet"`
}

type previewMessageSvc interface {
	GetMessage(ctx context.Context, msgID string) (*gmail.Message, error)
}

// NewPreviewMessage creates the preview_message tool.
func NewPreviewMessage(svc previewMessageSvc) *PreviewMessage {
	return &PreviewMessage{svc: svc}
}

// PreviewMessage fetches a full message and extracts readable body text,
// preferring text/plain over converted HTML over the snippet.
type PreviewMessage struct {
	svc previewMessageSvc
}

// PreviewMessage returns the message body as plain text.
func (t *PreviewMessage) PreviewMessage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PreviewMessageRequest,
) (*mcp.CallToolResult, PreviewMessageResponse, error) {
	msg, err := t.svc.GetMessage(ctx, input.MessageID)
	if err != nil {
		return nil, PreviewMessageResponse{}, fmt.Errorf("svc.GetMessage failed: %w", err)
	}

	body := ""
	if msg.Payload != nil {
		textBody, htmlBody := extractMessageBodies(msg.Payload)
		switch {
		case textBody != "":
			body = textBody
		case htmlBody != "":
			body = format.HTMLToText([]byte(htmlBody))
		}
	}

	if body == "" {
		body = msg.Snippet
	}

	return nil, PreviewMessageResponse{
		MessageID: input.MessageID,
		BodyText:  body,
	}, nil
}

func extractMessageBodies(payload *gmail.MessagePart) (textBody, htmlBody string) {
	textBody, htmlBody = extractBodyFromPart(payload)

	for _, part := range payload.Parts {
		partText, partHTML := extractBodyFromPart(part)

		if textBody == "" {
			textBody = partText
		}
		if htmlBody == "" {
			htmlBody = partHTML
		}

		if len(part.Parts) > 0 {
			nestedText, nestedHTML := extractMessageBodies(part)
			if textBody == "" {
				textBody = nestedText
			}
			if htmlBody == "" {
				htmlBody = nestedHTML
			}
		}
	}

	return textBody, htmlBody
}

func extractBodyFromPart(part *gmail.MessagePart) (textBody, htmlBody string) {
	if part.Body == nil || part.Body.Data == "" {
		return "", ""
	}

	switch part.MimeType {
	case "text/plain":
		return decodeBase64URL(part.Body.Data), ""
	case "text/html":
		return "", decodeBase64URL(part.Body.Data)
	default:
		return "", ""
	}
}

func decodeBase64URL(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return data
		}
	}
	return string(decoded)
}
