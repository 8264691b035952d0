package service

import (
	"context"

	"smart-librarian-be/internal/repository/contract"
	"smart-librarian-be/pkg/embedding"
	"smart-librarian-be/pkg/recommend"
)

// IRetrievalService embeds a free-text query and returns the nearest indexed
// titles. Zero hits is a normal outcome, not an error.
type IRetrievalService interface {
	Search(ctx context.Context, query string, limit int) ([]recommend.Candidate, error)
}

type retrievalService struct {
	repository contract.BookEmbeddingRepository
	embedder   embedding.Provider
}

func NewRetrievalService(repository contract.BookEmbeddingRepository, embedder embedding.Provider) IRetrievalService {
	return &retrievalService{
		repository: repository,
		embedder:   embedder,
	}
}

func (s *retrievalService) Search(ctx context.Context, query string, limit int) ([]recommend.Candidate, error) {
	vector, err := s.embedder.Generate(ctx, query)
	if err != nil {
		return nil, err
	}

	scored, err := s.repository.SearchSimilar(ctx, vector, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]recommend.Candidate, 0, len(scored))
	for _, hit := range scored {
		candidates = append(candidates, recommend.Candidate{
			Title:    hit.Embedding.Title,
			Distance: hit.Distance,
		})
	}
	return candidates, nil
}
