package llm

import (
	"context"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a chat message in a provider-agnostic format.
// Assistant messages may carry tool calls; tool messages carry the result of
// one call, identified by ToolCallID.
type Message struct {
	Role       string
	Content    string
	Name       string
	ToolCallID string
	ToolCalls  []ToolCall
}

// ToolCall is a model-requested invocation of a declared tool. Arguments is
// the raw JSON object produced by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Tool declares a callable function to the model. Parameters is a JSON
// Schema object.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Completion is one model turn: either final text or a batch of tool calls.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// Option allows for optional parameters like Temperature, Model, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	HasTemp     bool
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
		o.HasTemp = true
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ChatProvider defines the contract for any tool-calling chat backend.
type ChatProvider interface {
	// Chat sends the full message history plus the declared tools to the
	// model and returns its next turn.
	Chat(ctx context.Context, history []Message, tools []Tool, options ...Option) (*Completion, error)
}
