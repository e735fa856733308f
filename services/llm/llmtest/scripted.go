// Package llmtest provides deterministic llms.Model implementations for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

var ErrScriptExhausted = errors.New("scripted model has no more responses")

// Step is one scripted reply: either a response or an error.
type Step struct {
	Content   string
	ToolCalls []llms.ToolCall
	Err       error
}

// ScriptedModel replays Steps in order and records every request.
type ScriptedModel struct {
	mu       sync.Mutex
	steps    []Step
	Requests [][]llms.MessageContent
	Options  []llms.CallOptions
}

var _ llms.Model = (*ScriptedModel)(nil)

func NewScriptedModel(steps ...Step) *ScriptedModel {
	return &ScriptedModel{steps: steps}
}

func (m *ScriptedModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	m.Requests = append(m.Requests, append([]llms.MessageContent(nil), messages...))
	m.Options = append(m.Options, opts)

	if len(m.steps) == 0 {
		return nil, ErrScriptExhausted
	}
	step := m.steps[0]
	m.steps = m.steps[1:]

	if step.Err != nil {
		return nil, step.Err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			Content:   step.Content,
			ToolCalls: step.ToolCalls,
		}},
	}, nil
}

func (m *ScriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func (m *ScriptedModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// ToolCall builds a function tool call as a provider would return it.
func ToolCall(id, name, arguments string) llms.ToolCall {
	return llms.ToolCall{
		ID:   id,
		Type: "function",
		FunctionCall: &llms.FunctionCall{
			Name:      name,
			Arguments: arguments,
		},
	}
}

// EchoModel answers every request with the same text; useful for the
// generation step inside tools.
type EchoModel struct {
	Reply string
	mu    sync.Mutex
	calls int
}

func (m *EchoModel) GenerateContent(context.Context, []llms.MessageContent, ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.Reply}}}, nil
}

func (m *EchoModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func (m *EchoModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
