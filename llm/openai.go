package llm

import (
	"context"
	"strings"
	"time"

	"github.com/curio-chat/curio/config"
	"github.com/curio-chat/curio/errors"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int64
	temperature float64
	timeout     time.Duration
}

var _ Client = (*OpenAIClient)(nil)

func NewOpenAIClient(conf *config.ModelConfig) (*OpenAIClient, error) {
	if conf.OpenAIAPIKey == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "openai api key is not set")
	}

	return &OpenAIClient{
		client:      openai.NewClient(option.WithAPIKey(conf.OpenAIAPIKey)),
		model:       conf.Model,
		maxTokens:   int64(conf.MaxTokens),
		temperature: conf.Temperature,
		timeout:     conf.RequestTimeout,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.F(openai.ChatModel(c.model)),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", errors.Wrapf(errors.ErrTransport, "openai completion failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.Wrapf(errors.ErrTransport, "openai returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.Wrapf(errors.ErrTransport, "openai returned an empty completion")
	}

	return text, nil
}
