package service

import (
	"context"
	"errors"

	"smart-librarian-be/internal/entity"
	"smart-librarian-be/internal/repository/contract"
	"smart-librarian-be/pkg/recommend"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeGate struct {
	profane bool
	calls   int
}

func (g *fakeGate) IsProfane(string) bool {
	g.calls++
	return g.profane
}

type fakeRetrieval struct {
	candidates []recommend.Candidate
	err        error
	calls      int
}

func (r *fakeRetrieval) Search(_ context.Context, _ string, _ int) ([]recommend.Candidate, error) {
	r.calls++
	return r.candidates, r.err
}

type fakeRecommender struct {
	rec   *recommend.Recommendation
	err   error
	calls int
}

func (f *fakeRecommender) Run(_ context.Context, _ string, _ []recommend.Candidate) (*recommend.Recommendation, error) {
	f.calls++
	return f.rec, f.err
}

type fakePublisher struct {
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return p.err
}

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (e *fakeEmbedder) Generate(_ context.Context, _ string) ([]float32, error) {
	e.calls++
	return e.vector, e.err
}

type fakeRepository struct {
	count      int64
	scored     []*contract.ScoredBookEmbedding
	deleteAlls int
	created    []*entity.BookEmbedding
}

func (r *fakeRepository) Count(context.Context) (int64, error) { return r.count, nil }

func (r *fakeRepository) DeleteAll(context.Context) error {
	r.deleteAlls++
	return nil
}

func (r *fakeRepository) CreateBulk(_ context.Context, embeddings []*entity.BookEmbedding) error {
	r.created = append(r.created, embeddings...)
	return nil
}

func (r *fakeRepository) SearchSimilar(context.Context, []float32, int) ([]*contract.ScoredBookEmbedding, error) {
	return r.scored, nil
}

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (t *fakeTranscriber) Transcribe(context.Context, string) (string, error) {
	t.calls++
	return t.text, t.err
}

type fakeTranscriptStore struct {
	entries map[string]string
	putErr  error
}

func newFakeTranscriptStore() *fakeTranscriptStore {
	return &fakeTranscriptStore{entries: map[string]string{}}
}

func (s *fakeTranscriptStore) Get(key string) (string, bool) {
	v, ok := s.entries[key]
	return v, ok
}

func (s *fakeTranscriptStore) Put(key, transcript string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.entries[key] = transcript
	return nil
}

var errBoom = errors.New("boom")
