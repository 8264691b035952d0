package contract

import (
	"context"

	"smart-librarian-be/internal/entity"
)

// ScoredBookEmbedding pairs an indexed document with its cosine distance to
// the query vector. Smaller distance = better match.
type ScoredBookEmbedding struct {
	Embedding *entity.BookEmbedding
	Distance  float64
}

// BookEmbeddingRepository is the nearest-neighbor oracle over the indexed
// catalog. It does not rerank or filter; it forwards what the vector store
// returns.
type BookEmbeddingRepository interface {
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	CreateBulk(ctx context.Context, embeddings []*entity.BookEmbedding) error
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*ScoredBookEmbedding, error)
}
