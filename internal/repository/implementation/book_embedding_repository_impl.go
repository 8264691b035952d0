package implementation

import (
	"context"

	"smart-librarian-be/internal/entity"
	"smart-librarian-be/internal/mapper"
	"smart-librarian-be/internal/model"
	"smart-librarian-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type BookEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookEmbeddingMapper
}

func NewBookEmbeddingRepository(db *gorm.DB) contract.BookEmbeddingRepository {
	return &BookEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewBookEmbeddingMapper(),
	}
}

func (r *BookEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BookEmbedding{}).Count(&count).Error
	return count, err
}

func (r *BookEmbeddingRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.BookEmbedding{}).Error
}

func (r *BookEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.BookEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	models := make([]*model.BookEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update generated IDs back to entities
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *BookEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredBookEmbedding, error) {
	if limit <= 0 {
		limit = 3
	}

	// Cosine distance in pgvector: embedding_value <=> query_vector,
	// ascending = closest first.
	type result struct {
		model.BookEmbedding
		Distance float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("book_embeddings").
		Select("book_embeddings.*, embedding_value <=> ? AS distance", queryVector).
		Order("distance ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredBookEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredBookEmbedding{
			Embedding: r.mapper.ToEntity(&res.BookEmbedding),
			Distance:  res.Distance,
		}
	}
	return scored, nil
}
