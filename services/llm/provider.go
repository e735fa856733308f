package llm

import (
	"fmt"
	"log"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const DefaultOpenAIModel = "gpt-4o-mini"

type Options struct {
	Provider string
	Model    string
	APIKey   string
	Callback callbacks.Handler
}

// New builds the chat model shared by the classifier and every agent.
func New(opts Options) (llms.Model, error) {
	log.Printf("[INFO] Initializing %s chat model", opts.Provider)

	switch opts.Provider {
	case "openai", "":
		model := opts.Model
		if model == "" {
			model = DefaultOpenAIModel
		}
		clientOpts := []openai.Option{
			openai.WithModel(model),
			openai.WithToken(opts.APIKey),
		}
		if opts.Callback != nil {
			clientOpts = append(clientOpts, openai.WithCallback(opts.Callback))
		}
		llm, err := openai.New(clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return llm, nil
	case "anthropic":
		return NewAnthropicModel(opts.APIKey, opts.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", opts.Provider)
	}
}
