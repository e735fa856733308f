package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tmc/langchaingo/llms"
)

const defaultMaxTokens = 4096

type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicModel adapts the Anthropic Messages API to llms.Model so the
// agents can run on either provider.
type AnthropicModel struct {
	messages messageCreator
	model    anthropic.Model
}

var _ llms.Model = (*AnthropicModel)(nil)

func NewAnthropicModel(apiKey, model string) *AnthropicModel {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}
	return &AnthropicModel{
		messages: &client.Messages,
		model:    anthropic.Model(model),
	}
}

func (m *AnthropicModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func (m *AnthropicModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	params := anthropic.MessageNewParams{
		Model:     m.model,
		MaxTokens: defaultMaxTokens,
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = int64(opts.MaxTokens)
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	params.System, params.Messages = convertToAnthropicMessages(messages)
	params.Tools = buildAnthropicToolSpecs(opts.Tools)

	logAnthropicRequest(params.Messages, params.Tools)

	response, err := m.messages.New(ctx, params)
	if err != nil {
		log.Printf("[ERROR] Failed to call Anthropic API: %v", err)
		return nil, fmt.Errorf("failed to call Anthropic API: %w", err)
	}

	logAnthropicResponse(response)
	return convertFromAnthropicMessage(response), nil
}

func convertToAnthropicMessages(messages []llms.MessageContent) ([]anthropic.TextBlockParam, []anthropic.MessageParam) {
	var system []anthropic.TextBlockParam
	var out []anthropic.MessageParam

	for _, msg := range messages {
		switch msg.Role {
		case llms.ChatMessageTypeSystem:
			for _, part := range msg.Parts {
				if text, ok := part.(llms.TextContent); ok {
					system = append(system, anthropic.TextBlockParam{Text: text.Text})
				}
			}
		case llms.ChatMessageTypeHuman, llms.ChatMessageTypeGeneric:
			var blocks []anthropic.ContentBlockParamUnion
			for _, part := range msg.Parts {
				if text, ok := part.(llms.TextContent); ok {
					blocks = append(blocks, anthropic.NewTextBlock(text.Text))
				}
			}
			out = append(out, anthropic.NewUserMessage(blocks...))
		case llms.ChatMessageTypeAI:
			var blocks []anthropic.ContentBlockParamUnion
			for _, part := range msg.Parts {
				switch p := part.(type) {
				case llms.TextContent:
					if p.Text != "" {
						blocks = append(blocks, anthropic.NewTextBlock(p.Text))
					}
				case llms.ToolCall:
					if p.FunctionCall == nil {
						continue
					}
					args := p.FunctionCall.Arguments
					if strings.TrimSpace(args) == "" {
						args = "{}"
					}
					blocks = append(blocks, anthropic.NewToolUseBlock(p.ID, json.RawMessage(args), p.FunctionCall.Name))
				}
			}
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		case llms.ChatMessageTypeTool:
			var blocks []anthropic.ContentBlockParamUnion
			for _, part := range msg.Parts {
				if result, ok := part.(llms.ToolCallResponse); ok {
					blocks = append(blocks, anthropic.NewToolResultBlock(result.ToolCallID, result.Content, false))
				}
			}
			out = append(out, anthropic.NewUserMessage(blocks...))
		}
	}

	return system, out
}

func buildAnthropicToolSpecs(tools []llms.Tool) []anthropic.ToolUnionParam {
	var toolSpecs []anthropic.ToolUnionParam

	for _, tool := range tools {
		if tool.Function == nil {
			continue
		}
		toolSpecs = append(toolSpecs, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Function.Name,
				Description: anthropic.String(tool.Function.Description),
				InputSchema: inputSchema(tool.Function.Parameters),
			},
		})
	}

	return toolSpecs
}

func inputSchema(parameters any) anthropic.ToolInputSchemaParam {
	schema, ok := parameters.(map[string]any)
	if !ok {
		return anthropic.ToolInputSchemaParam{}
	}

	result := anthropic.ToolInputSchemaParam{Properties: schema["properties"]}
	switch required := schema["required"].(type) {
	case []string:
		result.Required = required
	case []any:
		for _, r := range required {
			if name, ok := r.(string); ok {
				result.Required = append(result.Required, name)
			}
		}
	}
	return result
}

func convertFromAnthropicMessage(response *anthropic.Message) *llms.ContentResponse {
	choice := &llms.ContentChoice{StopReason: string(response.StopReason)}

	var text strings.Builder
	for _, block := range response.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(block.Text)
		case anthropic.ToolUseBlock:
			call := llms.ToolCall{
				ID:   block.ID,
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      block.Name,
					Arguments: string(block.Input),
				},
			}
			choice.ToolCalls = append(choice.ToolCalls, call)
			if choice.FuncCall == nil {
				choice.FuncCall = call.FunctionCall
			}
		}
	}
	choice.Content = text.String()

	return &llms.ContentResponse{Choices: []*llms.ContentChoice{choice}}
}

func logAnthropicRequest(messages []anthropic.MessageParam, tools []anthropic.ToolUnionParam) {
	log.Printf("[INFO] Anthropic request: %d messages, %d tools", len(messages), len(tools))
	for i, tool := range tools {
		if tool.OfTool != nil {
			log.Printf("[INFO]   tool [%d] %s", i, tool.OfTool.Name)
		}
	}
}

func logAnthropicResponse(response *anthropic.Message) {
	toolCallCount := 0
	for _, block := range response.Content {
		if _, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			toolCallCount++
		}
	}
	log.Printf("[INFO] Anthropic response: model=%s stop_reason=%s blocks=%d tool_calls=%d",
		response.Model, response.StopReason, len(response.Content), toolCallCount)
}
