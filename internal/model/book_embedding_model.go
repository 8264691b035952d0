package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type BookEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string          `gorm:"type:text;not null;uniqueIndex"`
	Document       string          `gorm:"type:text"`
	Tags           datatypes.JSON  `gorm:"type:jsonb"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small uses 1536 dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (BookEmbedding) TableName() string {
	return "book_embeddings"
}
