package embedding

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v2"
)

// OpenAIProvider implements Provider on top of the OpenAI embeddings API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(client openai.Client, model string) Provider {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIProvider{
		client: client,
		model:  model,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	res, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(p.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding: %w", err)
	}
	if len(res.Data) == 0 {
		return nil, fmt.Errorf("openai embedding: empty response")
	}

	values := make([]float32, len(res.Data[0].Embedding))
	for i, v := range res.Data[0].Embedding {
		values[i] = float32(v)
	}

	return Normalize(values), nil
}
