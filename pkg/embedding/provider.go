package embedding

import "context"

// Provider generates a vector embedding for a piece of text.
type Provider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
