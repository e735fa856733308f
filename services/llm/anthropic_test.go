package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tmc/langchaingo/llms"
)

type recordingCreator struct {
	params   anthropic.MessageNewParams
	response string
}

func (r *recordingCreator) New(_ context.Context, body anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	r.params = body
	var msg anthropic.Message
	if err := json.Unmarshal([]byte(r.response), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func TestAnthropicModelGenerateContent(t *testing.T) {
	creator := &recordingCreator{response: `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "claude-sonnet-4-20250514",
		"stop_reason": "tool_use",
		"content": [
			{"type": "text", "text": "Let me check."},
			{"type": "tool_use", "id": "toolu_1", "name": "explain_concept", "input": {"concept": "fracciones"}}
		]
	}`}
	model := &AnthropicModel{messages: creator, model: anthropic.ModelClaudeSonnet4_20250514}

	tool := llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        "explain_concept",
			Description: "Explains a concept",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{"concept": map[string]any{"type": "string"}},
				"required":   []any{"concept"},
			},
		},
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, "You are a math tutor."),
		llms.TextParts(llms.ChatMessageTypeHuman, "¿Qué es una fracción?"),
		{
			Role: llms.ChatMessageTypeAI,
			Parts: []llms.ContentPart{llms.ToolCall{
				ID:           "toolu_0",
				Type:         "function",
				FunctionCall: &llms.FunctionCall{Name: "solve_problem", Arguments: ""},
			}},
		},
		{
			Role:  llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{llms.ToolCallResponse{ToolCallID: "toolu_0", Name: "solve_problem", Content: "1/2"}},
		},
	}

	resp, err := model.GenerateContent(context.Background(), messages, llms.WithTools([]llms.Tool{tool}), llms.WithTemperature(0.4))
	if err != nil {
		t.Fatalf("GenerateContent() unexpected error: %v", err)
	}

	if len(creator.params.System) != 1 || creator.params.System[0].Text != "You are a math tutor." {
		t.Errorf("system prompt not forwarded: %+v", creator.params.System)
	}
	if len(creator.params.Messages) != 3 {
		t.Errorf("expected 3 non-system messages, got %d", len(creator.params.Messages))
	}
	if len(creator.params.Tools) != 1 || creator.params.Tools[0].OfTool.Name != "explain_concept" {
		t.Fatalf("tools not forwarded: %+v", creator.params.Tools)
	}
	if required := creator.params.Tools[0].OfTool.InputSchema.Required; len(required) != 1 || required[0] != "concept" {
		t.Errorf("required fields = %v", required)
	}
	if creator.params.Temperature.Value != 0.4 {
		t.Errorf("temperature = %v, expected 0.4", creator.params.Temperature.Value)
	}

	choice := resp.Choices[0]
	if choice.Content != "Let me check." {
		t.Errorf("content = %q", choice.Content)
	}
	if choice.StopReason != "tool_use" {
		t.Errorf("stop reason = %q", choice.StopReason)
	}
	if len(choice.ToolCalls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(choice.ToolCalls))
	}
	call := choice.ToolCalls[0]
	if call.ID != "toolu_1" || call.FunctionCall.Name != "explain_concept" {
		t.Errorf("tool call = %+v", call)
	}
	var args map[string]string
	if err := json.Unmarshal([]byte(call.FunctionCall.Arguments), &args); err != nil || args["concept"] != "fracciones" {
		t.Errorf("tool arguments = %q (%v)", call.FunctionCall.Arguments, err)
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	if _, err := New(Options{Provider: "gemini", APIKey: "k"}); err == nil {
		t.Errorf("New() expected error for unknown provider")
	}
	if m, err := New(Options{Provider: "anthropic", APIKey: "k"}); err != nil || m == nil {
		t.Errorf("New() anthropic = %v, %v", m, err)
	}
}
