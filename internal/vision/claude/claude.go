package claude

import (
	"context"
	"fmt"
	"io"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/stagecrew/propshelf/internal/vision"
)

// ClaudeTagger suggests prop tags through the Anthropic Messages API.
type ClaudeTagger struct {
	client *anthropic.Client
	model  string
}

func NewClaudeTagger(apiKey, model string, opts ...anthropic.ClientOption) *ClaudeTagger {
	return &ClaudeTagger{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (t *ClaudeTagger) SuggestTags(ctx context.Context, r io.Reader, mimeType string) (*vision.Suggestion, error) {
	imageData, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	resp, err := t.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(t.model),
		// Two short lines of output; 256 tokens leaves room for verbose models.
		MaxTokens: 256,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(anthropic.NewMessageContentSource(
						anthropic.MessagesContentSourceTypeBase64, mimeType, imageData,
					)),
					anthropic.NewTextMessageContent(vision.TagPrompt),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call claude: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("claude returned an empty response")
	}

	return vision.ParseSuggestion(resp.Content[0].GetText()), nil
}
