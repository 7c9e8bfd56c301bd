package llm

import (
	"context"

	"github.com/curio-chat/curio/config"
	"github.com/curio-chat/curio/errors"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIEmbedder backs the semantic index with text-embedding-3-small
// (1536 dimensions) unless configured otherwise.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

var _ Embedder = (*OpenAIEmbedder)(nil)

func NewOpenAIEmbedder(conf *config.ModelConfig) (*OpenAIEmbedder, error) {
	if conf.OpenAIAPIKey == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "openai api key is not set")
	}

	return &OpenAIEmbedder{
		client: openai.NewClient(option.WithAPIKey(conf.OpenAIAPIKey)),
		model:  conf.EmbeddingModel,
	}, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts ...string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.F(openai.EmbeddingModel(e.model)),
		Input: openai.F[openai.EmbeddingNewParamsInputUnion](
			openai.EmbeddingNewParamsInputArrayOfStrings(texts),
		),
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrTransport, "embedding request failed: %v", err)
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		embeddings[i] = vec
	}

	return embeddings, nil
}
