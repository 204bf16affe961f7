package llml

import (
	"context"
	"strings"

	openai "github.com/openai/openai-go"
	ooption "github.com/openai/openai-go/option"
	oresponses "github.com/openai/openai-go/responses"
	oshared "github.com/openai/openai-go/shared"
)

const openAIDefaultModel = "gpt-4o-mini"

type openAICompleter struct {
	client    openai.Client
	model     string
	maxTokens int64
}

func newOpenAICompleter(o Options) *openAICompleter {
	opts := []ooption.RequestOption{ooption.WithAPIKey(o.APIKey)}
	if o.BaseURL != "" {
		opts = append(opts, ooption.WithBaseURL(o.BaseURL))
	}
	model := o.Model
	if model == "" {
		model = openAIDefaultModel
	}
	return &openAICompleter{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: o.MaxTokens,
	}
}

// complete issues one response call with a JSON-object output constraint and
// low temperature for determinism
func (c *openAICompleter) complete(ctx context.Context, system, user string) (string, int64, int64, error) {
	params := oresponses.ResponseNewParams{
		Model:           oshared.ResponsesModel(c.model),
		MaxOutputTokens: openai.Int(c.maxTokens),
		Temperature:     openai.Float(0.1),
		Instructions:    openai.String(system),
	}
	obj := oshared.NewResponseFormatJSONObjectParam()
	params.Text = oresponses.ResponseTextConfigParam{
		Format: oresponses.ResponseFormatTextConfigUnionParam{OfJSONObject: &obj},
	}
	params.Input = oresponses.ResponseNewParamsInputUnion{
		OfInputItemList: oresponses.ResponseInputParam{
			oresponses.ResponseInputItemParamOfMessage(user, oresponses.EasyInputMessageRoleUser),
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return "", 0, 0, err
	}
	return strings.TrimSpace(resp.OutputText()), resp.Usage.OutputTokens, c.maxTokens, nil
}
