// Package recommend runs the tool-calling recommendation loop: hand the model
// a query plus retrieved candidates, let it invoke the summary lookup tool,
// and collect its final answer.
package recommend

import (
	"context"
	"encoding/json"

	"smart-librarian-be/pkg/llm"
)

// MaxRounds bounds the number of model turns per recommendation.
const MaxRounds = 6

// ToolName is the single tool declared to the model.
const ToolName = "get_summary_by_title"

const (
	chatTemperature = 0.4

	apologyNoResponse = "Sorry, I couldn't generate a response."
	apologyExhausted  = "Sorry, I couldn't complete the tool interaction."
	unknownToolResult = "Unknown tool."
)

const systemPrompt = "You are Smart Librarian. You will be given a user query and a small list of candidate titles " +
	"with similarity scores from a vector search.\n" +
	"1) Pick EXACTLY ONE title that best matches the user's themes.\n" +
	"2) Call the tool `get_summary_by_title` with that exact title.\n" +
	"3) Compose a helpful final answer that includes: a one-sentence recommendation, why it matches, " +
	"and the full summary returned by the tool.\n" +
	"Be concise but friendly. If candidates are empty, ask the user to rephrase."

// State is the loop's position in its lifecycle. The round bound and its
// fallback are first-class transitions, not an implicit counter.
type State int

const (
	StateAwaitingModel State = iota
	StateExecutingTool
	StateDone
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateAwaitingModel:
		return "awaiting-model"
	case StateExecutingTool:
		return "executing-tool"
	case StateDone:
		return "done"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Candidate is one nearest-neighbor hit, closer = smaller distance.
type Candidate struct {
	Title    string  `json:"title"`
	Distance float64 `json:"distance"`
}

// SummaryLookup resolves a title to its full summary. It never errors; an
// unknown title yields a fixed not-found string.
type SummaryLookup interface {
	SummaryByTitle(title string) string
}

// Recommendation is the loop's outcome. Title and Summary hold whatever was
// last captured from tool execution, possibly empty when the model never
// called the tool.
type Recommendation struct {
	Answer  string
	Title   string
	Summary string
	State   State
}

type Loop struct {
	provider  llm.ChatProvider
	lookup    SummaryLookup
	maxRounds int
}

func NewLoop(provider llm.ChatProvider, lookup SummaryLookup) *Loop {
	return &Loop{
		provider:  provider,
		lookup:    lookup,
		maxRounds: MaxRounds,
	}
}

// toolDefinition declares get_summary_by_title to the model.
func toolDefinition() llm.Tool {
	return llm.Tool{
		Name:        ToolName,
		Description: "Return the full summary of an exact book title.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "Exact book title",
				},
			},
			"required":             []string{"title"},
			"additionalProperties": false,
		},
	}
}

type toolArguments struct {
	Title string `json:"title"`
}

type userPayload struct {
	UserQuery  string      `json:"user_query"`
	Candidates []Candidate `json:"candidates"`
}

// Run drives the loop until the model produces a final text answer or the
// round bound is exhausted. Transport errors propagate to the caller; there
// is no retry.
func (l *Loop) Run(ctx context.Context, query string, candidates []Candidate) (*Recommendation, error) {
	payload, err := json.Marshal(userPayload{UserQuery: query, Candidates: candidates})
	if err != nil {
		return nil, err
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: string(payload)},
	}
	tools := []llm.Tool{toolDefinition()}

	rec := &Recommendation{State: StateAwaitingModel}

	for round := 0; round < l.maxRounds; round++ {
		completion, err := l.provider.Chat(ctx, history, tools, llm.WithTemperature(chatTemperature))
		if err != nil {
			return nil, err
		}

		if len(completion.ToolCalls) == 0 {
			rec.State = StateDone
			rec.Answer = completion.Content
			if rec.Answer == "" {
				rec.Answer = apologyNoResponse
			}
			return rec, nil
		}

		rec.State = StateExecutingTool
		history = append(history, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   completion.Content,
			ToolCalls: completion.ToolCalls,
		})

		for _, tc := range completion.ToolCalls {
			history = append(history, llm.Message{
				Role:       llm.RoleTool,
				Name:       tc.Name,
				ToolCallID: tc.ID,
				Content:    l.executeTool(rec, tc),
			})
		}

		rec.State = StateAwaitingModel
	}

	rec.State = StateExhausted
	rec.Answer = apologyExhausted
	return rec, nil
}

// executeTool runs one requested invocation and captures the chosen title and
// summary along the way.
func (l *Loop) executeTool(rec *Recommendation, tc llm.ToolCall) string {
	if tc.Name != ToolName {
		return unknownToolResult
	}

	var args toolArguments
	// Malformed arguments degrade to an empty title, which the lookup answers
	// with its not-found string.
	_ = json.Unmarshal([]byte(tc.Arguments), &args)

	title := args.Title
	summary := l.lookup.SummaryByTitle(title)

	if title != "" {
		rec.Title = title
	}
	if summary != "" {
		rec.Summary = summary
	}
	return summary
}
