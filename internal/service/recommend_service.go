package service

import (
	"context"
	"encoding/json"
	"strings"

	"smart-librarian-be/internal/constant"
	"smart-librarian-be/internal/dto"
	"smart-librarian-be/internal/pkg/logger"
	"smart-librarian-be/pkg/catalog"
	"smart-librarian-be/pkg/media"
	"smart-librarian-be/pkg/recommend"
)

// ProfanityGate answers whether a query is allowed to reach any remote
// service. The gate runs before retrieval, so a rejected query costs nothing.
type ProfanityGate interface {
	IsProfane(text string) bool
}

// Recommender runs the model conversation over a query and its candidates.
type Recommender interface {
	Run(ctx context.Context, query string, candidates []recommend.Candidate) (*recommend.Recommendation, error)
}

// IRecommendService is the full pipeline behind POST /api/recommend: gate,
// retrieve, converse, precompute media URLs, queue synthesis.
type IRecommendService interface {
	Recommend(ctx context.Context, query string) (*dto.RecommendResponse, error)
}

type recommendService struct {
	gate        ProfanityGate
	retrieval   IRetrievalService
	recommender Recommender
	cat         *catalog.Catalog
	publisher   IPublisherService
	log         logger.ILogger

	topK  int
	voice string
}

func NewRecommendService(
	gate ProfanityGate,
	retrieval IRetrievalService,
	recommender Recommender,
	cat *catalog.Catalog,
	publisher IPublisherService,
	log logger.ILogger,
	topK int,
	voice string,
) IRecommendService {
	return &recommendService{
		gate:        gate,
		retrieval:   retrieval,
		recommender: recommender,
		cat:         cat,
		publisher:   publisher,
		log:         log,
		topK:        topK,
		voice:       voice,
	}
}

func (s *recommendService) Recommend(ctx context.Context, query string) (*dto.RecommendResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return fixedReply(constant.ReplyEmptyQuery), nil
	}

	if s.gate.IsProfane(query) {
		s.log.Info("RecommendService", "Query rejected by profanity gate", nil)
		return fixedReply(constant.ReplyProfanity), nil
	}

	candidates, err := s.retrieval.Search(ctx, query, s.topK)
	if err != nil {
		s.log.Error("RecommendService", "Retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
		return fixedReply(constant.ReplyServiceFailure), nil
	}
	if len(candidates) == 0 {
		return fixedReply(constant.ReplyNoMatches), nil
	}

	rec, err := s.recommender.Run(ctx, query, candidates)
	if err != nil {
		s.log.Error("RecommendService", "Chat loop failed", map[string]interface{}{
			"error": err.Error(),
		})
		resp := fixedReply(constant.ReplyServiceFailure)
		resp.Candidates = toCandidateDTOs(candidates)
		return resp, nil
	}

	resp := &dto.RecommendResponse{
		Answer:     rec.Answer,
		Title:      rec.Title,
		AudioURL:   "/static/audio/" + media.HashText(rec.Answer) + ".mp3",
		Candidates: toCandidateDTOs(candidates),
	}
	if rec.Title != "" {
		resp.ImageURL = "/static/img/" + media.HashText("cover:"+rec.Title) + ".png"
	}

	s.queueMedia(ctx, rec)

	return resp, nil
}

// queueMedia publishes the synthesis job. The response never waits on it, and
// a publish failure only costs the media files, not the recommendation.
func (s *recommendService) queueMedia(ctx context.Context, rec *recommend.Recommendation) {
	short, tags := s.cat.MetaByTitle(rec.Title)
	payload, err := json.Marshal(dto.SynthesizeMediaMessage{
		Answer: rec.Answer,
		Title:  rec.Title,
		Short:  short,
		Tags:   tags,
		Voice:  s.voice,
	})
	if err == nil {
		err = s.publisher.Publish(ctx, payload)
	}
	if err != nil {
		s.log.Warn("RecommendService", "Could not queue media synthesis", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func fixedReply(answer string) *dto.RecommendResponse {
	return &dto.RecommendResponse{
		Answer:     answer,
		Candidates: []dto.CandidateDTO{},
	}
}

func toCandidateDTOs(candidates []recommend.Candidate) []dto.CandidateDTO {
	out := make([]dto.CandidateDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, dto.CandidateDTO{Title: c.Title, Distance: c.Distance})
	}
	return out
}
