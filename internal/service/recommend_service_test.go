package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-librarian-be/internal/constant"
	"smart-librarian-be/internal/dto"
	"smart-librarian-be/pkg/catalog"
	"smart-librarian-be/pkg/media"
	"smart-librarian-be/pkg/recommend"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Book{
		{Title: "The Hobbit", Short: "A reluctant hobbit on an adventure.", Full: "Bilbo Baggins leaves home.", Tags: []string{"adventure", "friendship"}},
		{Title: "1984", Short: "Surveillance state dystopia.", Full: "Winston Smith rebels.", Tags: []string{"dystopia", "surveillance"}},
	})
}

func newTestRecommendService(
	gate *fakeGate,
	retrieval *fakeRetrieval,
	recommender *fakeRecommender,
	publisher *fakePublisher,
) IRecommendService {
	return NewRecommendService(gate, retrieval, recommender, testCatalog(), publisher, nopLogger{}, 3, "alloy")
}

func TestRecommendEmptyQuery(t *testing.T) {
	gate := &fakeGate{}
	retrieval := &fakeRetrieval{}
	svc := newTestRecommendService(gate, retrieval, &fakeRecommender{}, &fakePublisher{})

	resp, err := svc.Recommend(context.Background(), "   \t  ")

	require.NoError(t, err)
	assert.Equal(t, constant.ReplyEmptyQuery, resp.Answer)
	assert.Empty(t, resp.Candidates)
	assert.Zero(t, gate.calls, "empty query must not reach the gate")
	assert.Zero(t, retrieval.calls)
}

func TestRecommendProfaneQueryShortCircuits(t *testing.T) {
	retrieval := &fakeRetrieval{}
	recommender := &fakeRecommender{}
	svc := newTestRecommendService(&fakeGate{profane: true}, retrieval, recommender, &fakePublisher{})

	resp, err := svc.Recommend(context.Background(), "something rude")

	require.NoError(t, err)
	assert.Equal(t, constant.ReplyProfanity, resp.Answer)
	assert.Zero(t, retrieval.calls, "no retrieval behind the gate")
	assert.Zero(t, recommender.calls, "no chat behind the gate")
}

func TestRecommendNoCandidatesSkipsChat(t *testing.T) {
	recommender := &fakeRecommender{}
	svc := newTestRecommendService(&fakeGate{}, &fakeRetrieval{}, recommender, &fakePublisher{})

	resp, err := svc.Recommend(context.Background(), "books about underwater basket weaving")

	require.NoError(t, err)
	assert.Equal(t, constant.ReplyNoMatches, resp.Answer)
	assert.Zero(t, recommender.calls)
}

func TestRecommendRetrievalFailureBecomesApology(t *testing.T) {
	svc := newTestRecommendService(&fakeGate{}, &fakeRetrieval{err: errBoom}, &fakeRecommender{}, &fakePublisher{})

	resp, err := svc.Recommend(context.Background(), "adventure books")

	require.NoError(t, err)
	assert.Equal(t, constant.ReplyServiceFailure, resp.Answer)
}

func TestRecommendChatFailureKeepsCandidates(t *testing.T) {
	retrieval := &fakeRetrieval{candidates: []recommend.Candidate{{Title: "The Hobbit", Distance: 0.12}}}
	svc := newTestRecommendService(&fakeGate{}, retrieval, &fakeRecommender{err: errBoom}, &fakePublisher{})

	resp, err := svc.Recommend(context.Background(), "adventure books")

	require.NoError(t, err)
	assert.Equal(t, constant.ReplyServiceFailure, resp.Answer)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "The Hobbit", resp.Candidates[0].Title)
}

func TestRecommendSuccessPrecomputesURLsAndQueuesMedia(t *testing.T) {
	retrieval := &fakeRetrieval{candidates: []recommend.Candidate{
		{Title: "The Hobbit", Distance: 0.12},
		{Title: "1984", Distance: 0.31},
	}}
	recommender := &fakeRecommender{rec: &recommend.Recommendation{
		Answer:  "Read The Hobbit, it is about friendship and adventure.",
		Title:   "The Hobbit",
		Summary: "Bilbo Baggins leaves home.",
		State:   recommend.StateDone,
	}}
	publisher := &fakePublisher{}
	svc := newTestRecommendService(&fakeGate{}, retrieval, recommender, publisher)

	resp, err := svc.Recommend(context.Background(), "friendship and magic")

	require.NoError(t, err)
	assert.Equal(t, "The Hobbit", resp.Title)
	assert.Equal(t, "/static/audio/"+media.HashText(resp.Answer)+".mp3", resp.AudioURL)
	assert.Equal(t, "/static/img/"+media.HashText("cover:The Hobbit")+".png", resp.ImageURL)
	require.Len(t, resp.Candidates, 2)

	require.Len(t, publisher.payloads, 1)
	var msg dto.SynthesizeMediaMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &msg))
	assert.Equal(t, resp.Answer, msg.Answer)
	assert.Equal(t, "The Hobbit", msg.Title)
	assert.Equal(t, "A reluctant hobbit on an adventure.", msg.Short)
	assert.Equal(t, []string{"adventure", "friendship"}, msg.Tags)
	assert.Equal(t, "alloy", msg.Voice)
}

func TestRecommendNoTitleOmitsImageURL(t *testing.T) {
	retrieval := &fakeRetrieval{candidates: []recommend.Candidate{{Title: "1984", Distance: 0.2}}}
	recommender := &fakeRecommender{rec: &recommend.Recommendation{
		Answer: "Could you tell me more about what you like?",
		State:  recommend.StateDone,
	}}
	publisher := &fakePublisher{}
	svc := newTestRecommendService(&fakeGate{}, retrieval, recommender, publisher)

	resp, err := svc.Recommend(context.Background(), "hmm")

	require.NoError(t, err)
	assert.Empty(t, resp.Title)
	assert.Empty(t, resp.ImageURL)
	assert.NotEmpty(t, resp.AudioURL, "the answer itself still gets audio")
}

func TestRecommendPublishFailureDoesNotFailRequest(t *testing.T) {
	retrieval := &fakeRetrieval{candidates: []recommend.Candidate{{Title: "The Hobbit", Distance: 0.1}}}
	recommender := &fakeRecommender{rec: &recommend.Recommendation{Answer: "Read it.", Title: "The Hobbit"}}
	svc := newTestRecommendService(&fakeGate{}, retrieval, recommender, &fakePublisher{err: errBoom})

	resp, err := svc.Recommend(context.Background(), "adventure")

	require.NoError(t, err)
	assert.Equal(t, "Read it.", resp.Answer)
}
