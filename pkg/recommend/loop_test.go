package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-librarian-be/pkg/llm"
)

// scriptedProvider replays a fixed sequence of completions. When the script
// runs out, the last step repeats.
type scriptedProvider struct {
	steps []llm.Completion
	err   error
	calls int
	// history seen on the last call, for asserting the transcript shape
	lastHistory []llm.Message
}

func (p *scriptedProvider) Chat(_ context.Context, history []llm.Message, _ []llm.Tool, _ ...llm.Option) (*llm.Completion, error) {
	p.calls++
	p.lastHistory = history
	if p.err != nil {
		return nil, p.err
	}
	i := p.calls - 1
	if i >= len(p.steps) {
		i = len(p.steps) - 1
	}
	step := p.steps[i]
	return &step, nil
}

type fakeLookup struct {
	summaries map[string]string
}

func (f *fakeLookup) SummaryByTitle(title string) string {
	if s, ok := f.summaries[title]; ok {
		return s
	}
	return "Sorry, I couldn't find that title in the dataset. Please check the catalog."
}

func hobbitLookup() *fakeLookup {
	return &fakeLookup{summaries: map[string]string{
		"The Hobbit": "Bilbo Baggins joins a company of dwarves.",
	}}
}

func toolStep(title string) llm.Completion {
	return llm.Completion{ToolCalls: []llm.ToolCall{{
		ID:        "call-1",
		Name:      ToolName,
		Arguments: `{"title":"` + title + `"}`,
	}}}
}

func TestRunToolCallThenAnswer(t *testing.T) {
	provider := &scriptedProvider{steps: []llm.Completion{
		toolStep("The Hobbit"),
		{Content: "Read The Hobbit! Bilbo Baggins joins a company of dwarves."},
	}}

	rec, err := NewLoop(provider, hobbitLookup()).Run(context.Background(), "friendship and magic", []Candidate{
		{Title: "The Hobbit", Distance: 0.12},
		{Title: "1984", Distance: 0.55},
	})
	require.NoError(t, err)

	assert.Equal(t, StateDone, rec.State)
	assert.Equal(t, "Read The Hobbit! Bilbo Baggins joins a company of dwarves.", rec.Answer)
	assert.Equal(t, "The Hobbit", rec.Title)
	assert.Equal(t, "Bilbo Baggins joins a company of dwarves.", rec.Summary)
	assert.Equal(t, 2, provider.calls)

	// The second call must carry system, user, assistant-with-tool-calls and
	// the tool result.
	require.Len(t, provider.lastHistory, 4)
	assert.Equal(t, llm.RoleTool, provider.lastHistory[3].Role)
	assert.Equal(t, "call-1", provider.lastHistory[3].ToolCallID)
}

func TestRunImmediateAnswer(t *testing.T) {
	provider := &scriptedProvider{steps: []llm.Completion{{Content: "Tell me more about what you like."}}}

	rec, err := NewLoop(provider, hobbitLookup()).Run(context.Background(), "anything", nil)
	require.NoError(t, err)

	assert.Equal(t, StateDone, rec.State)
	assert.Equal(t, "Tell me more about what you like.", rec.Answer)
	assert.Empty(t, rec.Title)
	assert.Empty(t, rec.Summary)
	assert.Equal(t, 1, provider.calls)
}

func TestRunExhaustsRoundBound(t *testing.T) {
	// The model never stops asking for the tool.
	provider := &scriptedProvider{steps: []llm.Completion{toolStep("The Hobbit")}}

	rec, err := NewLoop(provider, hobbitLookup()).Run(context.Background(), "loop forever", nil)
	require.NoError(t, err)

	assert.Equal(t, StateExhausted, rec.State)
	assert.Equal(t, apologyExhausted, rec.Answer)
	assert.Equal(t, MaxRounds, provider.calls)
	// Partial capture survives exhaustion.
	assert.Equal(t, "The Hobbit", rec.Title)
	assert.Equal(t, "Bilbo Baggins joins a company of dwarves.", rec.Summary)
}

func TestRunEmptyFinalContent(t *testing.T) {
	provider := &scriptedProvider{steps: []llm.Completion{{Content: ""}}}

	rec, err := NewLoop(provider, hobbitLookup()).Run(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Equal(t, apologyNoResponse, rec.Answer)
}

func TestRunPropagatesTransportError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("connection reset")}

	_, err := NewLoop(provider, hobbitLookup()).Run(context.Background(), "q", nil)
	assert.Error(t, err)
	assert.Equal(t, 1, provider.calls)
}

func TestRunUnknownToolName(t *testing.T) {
	provider := &scriptedProvider{steps: []llm.Completion{
		{ToolCalls: []llm.ToolCall{{ID: "x", Name: "delete_everything", Arguments: `{}`}}},
		{Content: "done"},
	}}

	rec, err := NewLoop(provider, hobbitLookup()).Run(context.Background(), "q", nil)
	require.NoError(t, err)

	assert.Equal(t, "done", rec.Answer)
	assert.Empty(t, rec.Title)
	// The model still received a usable tool result.
	assert.Equal(t, unknownToolResult, provider.lastHistory[3].Content)
}

func TestRunUnknownTitleCapturesNotFound(t *testing.T) {
	provider := &scriptedProvider{steps: []llm.Completion{
		toolStep("Moby Dick"),
		{Content: "answer"},
	}}

	rec, err := NewLoop(provider, hobbitLookup()).Run(context.Background(), "whales", nil)
	require.NoError(t, err)

	assert.Equal(t, "Moby Dick", rec.Title)
	assert.Contains(t, rec.Summary, "couldn't find that title")
}
