package llm

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/curio-chat/curio/config"
	"github.com/curio-chat/curio/errors"
)

type AnthropicClient struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
	timeout     time.Duration
}

var _ Client = (*AnthropicClient)(nil)

func NewAnthropicClient(conf *config.ModelConfig) (*AnthropicClient, error) {
	if conf.AnthropicAPIKey == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "anthropic api key is not set")
	}

	return &AnthropicClient{
		client:      anthropic.NewClient(option.WithAPIKey(conf.AnthropicAPIKey)),
		model:       conf.Model,
		maxTokens:   int64(conf.MaxTokens),
		temperature: conf.Temperature,
		timeout:     conf.RequestTimeout,
	}, nil
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", errors.Wrapf(errors.ErrTransport, "anthropic completion failed: %v", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.Wrapf(errors.ErrTransport, "anthropic returned an empty completion")
	}

	return text, nil
}
