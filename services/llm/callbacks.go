package llm

import (
	"context"
	"log"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/llms"
)

// LogHandler logs every model round trip in the service's log format.
type LogHandler struct {
	callbacks.SimpleHandler
}

var _ callbacks.Handler = LogHandler{}

func (LogHandler) HandleLLMGenerateContentStart(_ context.Context, ms []llms.MessageContent) {
	log.Printf("[INFO] LLM request with %d messages", len(ms))
}

func (LogHandler) HandleLLMGenerateContentEnd(_ context.Context, res *llms.ContentResponse) {
	if res == nil || len(res.Choices) == 0 {
		log.Printf("[WARN] LLM response without choices")
		return
	}
	choice := res.Choices[0]
	log.Printf("[INFO] LLM response: stop_reason=%s tool_calls=%d content_length=%d",
		choice.StopReason, len(choice.ToolCalls), len(choice.Content))
}

func (LogHandler) HandleLLMError(_ context.Context, err error) {
	log.Printf("[ERROR] LLM call failed: %v", err)
}
