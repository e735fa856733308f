package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/junova144/Eva/models"
	"github.com/junova144/Eva/tracing"

	"github.com/tmc/langchaingo/llms"
)

const DefaultMaxIterations = 10

var (
	ErrMaxIterations = errors.New("agent exceeded maximum iterations")
	ErrEmptyResponse = errors.New("model returned no choices")
)

// Turn is the input of one agent invocation.
type Turn struct {
	SessionID   string
	History     []models.AgentMessage
	Instruction string
}

// Trace records what the agent did while answering.
type Trace struct {
	ToolCalls   []ToolID
	ToolResults []models.ToolResult
	Iterations  int
}

type Agent struct {
	course        models.CourseLabel
	name          string
	systemPrompt  string
	temperature   float64
	tools         map[ToolID]*Tool
	llmTools      []llms.Tool
	llm           llms.Model
	maxIterations int
}

func (a *Agent) Course() models.CourseLabel {
	return a.course
}

func (a *Agent) Name() string {
	return a.name
}

// Tools returns the tool identifiers in the order they are offered to the model.
func (a *Agent) Tools() []ToolID {
	ids := make([]ToolID, 0, len(a.llmTools))
	for _, t := range a.llmTools {
		if id, ok := ParseToolID(t.Function.Name); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Run lets the model pick tools until it produces a final answer. A tool
// name outside this agent's set ends the run with an "Unknown tool" answer.
func (a *Agent) Run(ctx context.Context, turn Turn) (resp models.AgentResponse, trace Trace, err error) {
	ctx, span := tracing.Start(ctx, "agent.run", tracing.AgentAttrs(a.name, turn.SessionID, a.temperature)...)
	defer func() { tracing.End(span, err) }()

	log.Printf("[INFO] Agent %s handling instruction for session %s", a.name, turn.SessionID)

	messages := a.buildMessages(turn)

	for trace.Iterations < a.maxIterations {
		trace.Iterations++

		out, err := a.llm.GenerateContent(ctx, messages,
			llms.WithTools(a.llmTools),
			llms.WithTemperature(a.temperature),
		)
		if err != nil {
			log.Printf("[ERROR] Agent %s generation failed: %v", a.name, err)
			return models.AgentResponse{}, trace, fmt.Errorf("agent %s generation failed: %w", a.name, err)
		}
		if len(out.Choices) == 0 {
			return models.AgentResponse{}, trace, fmt.Errorf("agent %s: %w", a.name, ErrEmptyResponse)
		}

		choice := out.Choices[0]
		if len(choice.ToolCalls) == 0 {
			log.Printf("[INFO] Agent %s answered after %d iterations", a.name, trace.Iterations)
			return ParseResponse(choice.Content), trace, nil
		}

		selected := make([]*Tool, 0, len(choice.ToolCalls))
		for _, call := range choice.ToolCalls {
			name := toolCallName(call)
			tool, ok := a.lookup(name)
			if !ok {
				log.Printf("[WARN] Agent %s requested unknown tool %q", a.name, name)
				return UnknownToolResponse(name), trace, nil
			}
			selected = append(selected, tool)
		}

		messages = append(messages, assistantToolMessage(choice))

		for i, call := range choice.ToolCalls {
			tool := selected[i]
			trace.ToolCalls = append(trace.ToolCalls, tool.ID())

			result, err := tool.Call(ctx, call.FunctionCall.Arguments)
			if err != nil {
				return models.AgentResponse{}, trace, fmt.Errorf("agent %s: %w", a.name, err)
			}
			trace.ToolResults = append(trace.ToolResults, models.ToolResult{Name: tool.ID().Name(), Output: result})

			messages = append(messages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: call.ID,
					Name:       tool.ID().Name(),
					Content:    result,
				}},
			})
		}
	}

	log.Printf("[ERROR] Agent %s stopped after %d iterations", a.name, trace.Iterations)
	return models.AgentResponse{}, trace, fmt.Errorf("agent %s: %w", a.name, ErrMaxIterations)
}

func (a *Agent) lookup(name string) (*Tool, bool) {
	id, ok := ParseToolID(name)
	if !ok {
		return nil, false
	}
	tool, ok := a.tools[id]
	return tool, ok
}

func (a *Agent) buildMessages(turn Turn) []llms.MessageContent {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, a.systemPrompt),
	}
	for _, msg := range turn.History {
		switch msg.Role {
		case "user":
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		case "assistant":
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, msg.Content))
		}
	}
	return append(messages, llms.TextParts(llms.ChatMessageTypeHuman, turn.Instruction))
}

func toolCallName(call llms.ToolCall) string {
	if call.FunctionCall == nil {
		return ""
	}
	return call.FunctionCall.Name
}

func assistantToolMessage(choice *llms.ContentChoice) llms.MessageContent {
	msg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
	if strings.TrimSpace(choice.Content) != "" {
		msg.Parts = append(msg.Parts, llms.TextContent{Text: choice.Content})
	}
	for _, call := range choice.ToolCalls {
		msg.Parts = append(msg.Parts, call)
	}
	return msg
}

func UnknownToolResponse(name string) models.AgentResponse {
	return models.AgentResponse{Example: fmt.Sprintf("Unknown tool: %s", name)}
}

type rawAnswer struct {
	Explanation    *string `json:"explanation"`
	Example        *string `json:"example"`
	ExplicacionAlt *string `json:"explicacion_profunda"`
	EjemploAlt     *string `json:"parrafo_ejemplo"`
}

func (r rawAnswer) known() bool {
	return r.Explanation != nil || r.Example != nil || r.ExplicacionAlt != nil || r.EjemploAlt != nil
}

// ParseResponse reads the model's final message. Replies that are not the
// expected JSON object become the explanation verbatim. An answer object whose
// fields are all empty stays empty.
func ParseResponse(raw string) models.AgentResponse {
	text := stripCodeFence(strings.TrimSpace(raw))

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var parsed rawAnswer
		if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err == nil && parsed.known() {
			return models.AgentResponse{
				Explanation: firstNonEmpty(parsed.Explanation, parsed.ExplicacionAlt),
				Example:     firstNonEmpty(parsed.Example, parsed.EjemploAlt),
			}
		}
	}

	return models.AgentResponse{Explanation: strings.TrimSpace(raw)}
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.Index(text, "\n"); nl >= 0 {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v == nil {
			continue
		}
		if s := strings.TrimSpace(*v); s != "" {
			return s
		}
	}
	return ""
}

func answerSchema() string {
	raw, err := json.MarshalIndent(generateSchema[models.AgentResponse](), "", "  ")
	if err != nil {
		return `{"explanation": "string", "example": "string"}`
	}
	return string(raw)
}
