package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/junova144/Eva/tracing"

	"github.com/samber/lo"
)

// NoContextMarker replaces external context whenever a lookup fails or
// returns nothing.
const NoContextMarker = "(no external context available)"

var ErrNoResults = errors.New("search returned no results")

// Result is the outcome of a best-effort lookup. Err is never shown to the
// model; Context substitutes NoContextMarker instead.
type Result struct {
	Snippets []string
	Err      error
}

func (r Result) OK() bool {
	return r.Err == nil && len(r.Snippets) > 0
}

func (r Result) Context() string {
	if !r.OK() {
		return NoContextMarker
	}
	return strings.Join(r.Snippets, "\n\n")
}

type Searcher interface {
	Search(ctx context.Context, query string, limit int) Result
}

// Traced wraps a searcher with a span per lookup.
func Traced(name string, s Searcher) Searcher {
	return tracedSearcher{name: name, next: s}
}

type tracedSearcher struct {
	name string
	next Searcher
}

func (t tracedSearcher) Search(ctx context.Context, query string, limit int) Result {
	ctx, span := tracing.Start(ctx, "search."+t.name)
	result := t.next.Search(ctx, query, limit)
	tracing.End(span, result.Err)
	return result
}

// MultiSearcher queries every backend in order and concatenates snippets up
// to the limit. It fails only when every backend fails.
type MultiSearcher struct {
	searchers []Searcher
}

func NewMultiSearcher(searchers ...Searcher) *MultiSearcher {
	return &MultiSearcher{searchers: lo.Filter(searchers, func(s Searcher, _ int) bool {
		return s != nil
	})}
}

func (m *MultiSearcher) Search(ctx context.Context, query string, limit int) Result {
	var snippets []string
	var errs []error

	for _, s := range m.searchers {
		if limit > 0 && len(snippets) >= limit {
			break
		}
		result := s.Search(ctx, query, limit-len(snippets))
		if result.Err != nil {
			errs = append(errs, result.Err)
			continue
		}
		snippets = append(snippets, result.Snippets...)
	}

	snippets = lo.Uniq(snippets)
	if limit > 0 && len(snippets) > limit {
		snippets = snippets[:limit]
	}

	if len(snippets) == 0 {
		if len(errs) > 0 {
			log.Printf("[WARN] All searchers failed for query %q", query)
			return Result{Err: fmt.Errorf("all searchers failed: %w", errors.Join(errs...))}
		}
		return Result{Err: ErrNoResults}
	}
	return Result{Snippets: snippets}
}

// NoopSearcher always reports that no context is available.
type NoopSearcher struct{}

func (NoopSearcher) Search(context.Context, string, int) Result {
	return Result{Err: ErrNoResults}
}
