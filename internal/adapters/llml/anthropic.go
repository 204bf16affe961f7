package llml

import (
	"context"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	aoption "github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicDefaultModel = "claude-3-5-haiku-latest"

type anthropicCompleter struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func newAnthropicCompleter(o Options) *anthropicCompleter {
	opts := []aoption.RequestOption{aoption.WithAPIKey(o.APIKey)}
	if o.BaseURL != "" {
		opts = append(opts, aoption.WithBaseURL(o.BaseURL))
	}
	model := o.Model
	if model == "" {
		model = anthropicDefaultModel
	}
	return &anthropicCompleter{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: o.MaxTokens,
	}
}

// complete issues one message call; the JSON-only constraint lives in the
// system instruction since the messages API has no response-format knob
func (c *anthropicCompleter) complete(ctx context.Context, system, user string) (string, int64, int64, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(0.1),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", 0, 0, err
	}
	var sb strings.Builder
	for _, blk := range msg.Content {
		if t, ok := blk.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(t.Text)
		}
	}
	return strings.TrimSpace(sb.String()), msg.Usage.OutputTokens, c.maxTokens, nil
}
