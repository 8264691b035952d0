// Package openai implements llm.ChatProvider on top of the official OpenAI
// SDK, including function/tool calling.
package openai

import (
	"context"
	"fmt"

	openaiclient "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/shared"

	"smart-librarian-be/pkg/llm"
)

type Provider struct {
	client openaiclient.Client
	model  string
}

func NewProvider(client openaiclient.Client, model string) llm.ChatProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Provider{
		client: client,
		model:  model,
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, tools []llm.Tool, options ...llm.Option) (*llm.Completion, error) {
	opts := llm.Options{}
	for _, opt := range options {
		opt(&opts)
	}

	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}

	params := openaiclient.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: toMessageParams(history),
	}
	if opts.HasTemp {
		params.Temperature = openaiclient.Float(opts.Temperature)
	}
	if len(tools) > 0 {
		params.Tools = toToolParams(tools)
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai chat completion: no choices returned")
	}

	msg := completion.Choices[0].Message
	out := &llm.Completion{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

func toMessageParams(history []llm.Message) []openaiclient.ChatCompletionMessageParamUnion {
	msgs := make([]openaiclient.ChatCompletionMessageParamUnion, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case llm.RoleSystem:
			msgs = append(msgs, openaiclient.SystemMessage(m.Content))
		case llm.RoleTool:
			msgs = append(msgs, openaiclient.ToolMessage(m.Content, m.ToolCallID))
		case llm.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				msgs = append(msgs, openaiclient.AssistantMessage(m.Content))
				continue
			}
			asst := openaiclient.ChatCompletionAssistantMessageParam{}
			if m.Content != "" {
				asst.Content = openaiclient.ChatCompletionAssistantMessageParamContentUnion{
					OfString: openaiclient.String(m.Content),
				}
			}
			for _, tc := range m.ToolCalls {
				asst.ToolCalls = append(asst.ToolCalls, openaiclient.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openaiclient.ChatCompletionMessageFunctionToolCallParam{
						ID: tc.ID,
						Function: openaiclient.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      tc.Name,
							Arguments: tc.Arguments,
						},
					},
				})
			}
			msgs = append(msgs, openaiclient.ChatCompletionMessageParamUnion{OfAssistant: &asst})
		default:
			msgs = append(msgs, openaiclient.UserMessage(m.Content))
		}
	}
	return msgs
}

func toToolParams(tools []llm.Tool) []openaiclient.ChatCompletionToolUnionParam {
	params := make([]openaiclient.ChatCompletionToolUnionParam, 0, len(tools))
	for _, t := range tools {
		params = append(params, openaiclient.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        t.Name,
			Description: openaiclient.String(t.Description),
			Parameters:  shared.FunctionParameters(t.Parameters),
		}))
	}
	return params
}
