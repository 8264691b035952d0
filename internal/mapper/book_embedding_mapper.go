package mapper

import (
	"encoding/json"
	"time"

	"smart-librarian-be/internal/entity"
	"smart-librarian-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type BookEmbeddingMapper struct{}

func NewBookEmbeddingMapper() *BookEmbeddingMapper {
	return &BookEmbeddingMapper{}
}

func (m *BookEmbeddingMapper) ToEntity(e *model.BookEmbedding) *entity.BookEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var tags []string
	if len(e.Tags) > 0 {
		_ = json.Unmarshal(e.Tags, &tags)
	}

	return &entity.BookEmbedding{
		Id:             e.Id,
		Title:          e.Title,
		Document:       e.Document,
		Tags:           tags,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *BookEmbeddingMapper) ToModel(e *entity.BookEmbedding) *model.BookEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	var tags datatypes.JSON
	if len(e.Tags) > 0 {
		raw, err := json.Marshal(e.Tags)
		if err == nil {
			tags = raw
		}
	}

	return &model.BookEmbedding{
		Id:             e.Id,
		Title:          e.Title,
		Document:       e.Document,
		Tags:           tags,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *BookEmbeddingMapper) ToEntities(embeddings []*model.BookEmbedding) []*entity.BookEmbedding {
	entities := make([]*entity.BookEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *BookEmbeddingMapper) ToModels(embeddings []*entity.BookEmbedding) []*model.BookEmbedding {
	models := make([]*model.BookEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
