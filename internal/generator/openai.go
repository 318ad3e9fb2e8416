package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model string, opts ...option.RequestOption) Provider {
	if model == "" {
		model = defaultOpenAIModel
	}
	all := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	return &openAIProvider{client: openai.NewClient(all...), model: model}
}

func (p *openAIProvider) Name() string { return "openai:" + p.model }

func (p *openAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	log := config.WithContext(ctx).WithField("provider", p.Name())

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: messages,
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			log.WithError(err).Errorf("OpenAI returned status %d", apiErr.StatusCode)
		}
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}
	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", errors.New("response was blocked by the content filter")
	}
	raw := strings.TrimSpace(choice.Message.Content)
	if raw == "" {
		return "", errors.New("empty response from model")
	}
	return raw, nil
}
