package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookEmbedding is one indexed catalog document: the embedded text plus the
// title it resolves back to.
type BookEmbedding struct {
	Id             uuid.UUID
	Title          string
	Document       string
	Tags           []string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
