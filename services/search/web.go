package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/tools"
	"github.com/tmc/langchaingo/tools/duckduckgo"
	"github.com/tmc/langchaingo/tools/serpapi"
)

const noGoodResultPrefix = "No good "

// WebSearcher runs a query through a langchaingo search tool and splits the
// answer into snippets.
type WebSearcher struct {
	tool tools.Tool
}

func NewWebSearcher(apiKey string) (*WebSearcher, error) {
	tool, err := serpapi.New(serpapi.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create web search tool: %w", err)
	}
	return &WebSearcher{tool: tool}, nil
}

// NewDuckDuckGoSearcher needs no credential and is used as a fallback.
func NewDuckDuckGoSearcher(maxResults int) (*WebSearcher, error) {
	tool, err := duckduckgo.New(maxResults, duckduckgo.DefaultUserAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to create duckduckgo search tool: %w", err)
	}
	return &WebSearcher{tool: tool}, nil
}

func NewWebSearcherWithTool(tool tools.Tool) *WebSearcher {
	return &WebSearcher{tool: tool}
}

func (w *WebSearcher) Search(ctx context.Context, query string, limit int) Result {
	log.Printf("[INFO] Web search (%s) for %q with limit %d", w.tool.Name(), query, limit)

	raw, err := w.tool.Call(ctx, query)
	if err != nil {
		log.Printf("[ERROR] Web search failed: %v", err)
		return Result{Err: fmt.Errorf("web search failed: %w", err)}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, noGoodResultPrefix) {
		return Result{Err: ErrNoResults}
	}

	snippets := splitSnippets(raw)
	if limit > 0 && len(snippets) > limit {
		snippets = snippets[:limit]
	}

	log.Printf("[INFO] Web search returned %d snippets", len(snippets))
	return Result{Snippets: snippets}
}

func splitSnippets(raw string) []string {
	var snippets []string
	for _, part := range strings.Split(raw, "\n\n") {
		part = strings.TrimSpace(part)
		if part != "" {
			snippets = append(snippets, part)
		}
	}
	return snippets
}
