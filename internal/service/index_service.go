package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smart-librarian-be/internal/entity"
	"smart-librarian-be/internal/pkg/logger"
	"smart-librarian-be/internal/repository/contract"
	"smart-librarian-be/pkg/catalog"
	"smart-librarian-be/pkg/embedding"
)

// IIndexService reconciles the vector index with the catalog on disk.
// Detection is count-based: an empty index is seeded, a count mismatch
// triggers a full rebuild, a matching count is trusted as-is. Edits that keep
// the book count unchanged are not detected.
type IIndexService interface {
	Sync(ctx context.Context) error
}

type indexService struct {
	repository contract.BookEmbeddingRepository
	embedder   embedding.Provider
	cat        *catalog.Catalog
	log        logger.ILogger
}

func NewIndexService(
	repository contract.BookEmbeddingRepository,
	embedder embedding.Provider,
	cat *catalog.Catalog,
	log logger.ILogger,
) IIndexService {
	return &indexService{
		repository: repository,
		embedder:   embedder,
		cat:        cat,
		log:        log,
	}
}

func (s *indexService) Sync(ctx context.Context) error {
	count, err := s.repository.Count(ctx)
	if err != nil {
		return err
	}
	expected := int64(s.cat.Len())

	if count == expected && count > 0 {
		s.log.Info("IndexService", "Vector index is up to date", map[string]interface{}{
			"documents": count,
		})
		return nil
	}

	if count == 0 {
		s.log.Info("IndexService", "Empty vector index, seeding from catalog", map[string]interface{}{
			"books": expected,
		})
	} else {
		s.log.Info("IndexService", "Catalog size changed, rebuilding vector index", map[string]interface{}{
			"indexed": count,
			"books":   expected,
		})
		if err := s.repository.DeleteAll(ctx); err != nil {
			return err
		}
	}

	embeddings := make([]*entity.BookEmbedding, 0, s.cat.Len())
	for _, book := range s.cat.Books() {
		document := catalog.Document(book)
		vector, err := s.embedder.Generate(ctx, document)
		if err != nil {
			return err
		}
		embeddings = append(embeddings, &entity.BookEmbedding{
			Id:             uuid.New(),
			Title:          book.Title,
			Document:       document,
			Tags:           book.Tags,
			EmbeddingValue: vector,
			CreatedAt:      time.Now(),
		})
	}

	if err := s.repository.CreateBulk(ctx, embeddings); err != nil {
		return err
	}

	s.log.Info("IndexService", "Vector index rebuilt", map[string]interface{}{
		"documents": len(embeddings),
	})
	return nil
}
