package search

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubTool struct {
	output string
	err    error
}

func (s stubTool) Name() string        { return "stub" }
func (s stubTool) Description() string { return "stub search" }
func (s stubTool) Call(context.Context, string) (string, error) {
	return s.output, s.err
}

type stubSearcher struct {
	result Result
	calls  int
}

func (s *stubSearcher) Search(context.Context, string, int) Result {
	s.calls++
	return s.result
}

type stubQuerier struct {
	chunks []string
	err    error
}

func (s stubQuerier) QueryCourseChunks(context.Context, string, int) ([]string, error) {
	return s.chunks, s.err
}

func TestResultContext(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		expected string
	}{
		{name: "snippets", result: Result{Snippets: []string{"a", "b"}}, expected: "a\n\nb"},
		{name: "error", result: Result{Err: errors.New("rate limited: key sk-123")}, expected: NoContextMarker},
		{name: "empty", result: Result{}, expected: NoContextMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Context(); got != tt.expected {
				t.Errorf("Context() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestWebSearcher(t *testing.T) {
	tests := []struct {
		name     string
		tool     stubTool
		limit    int
		snippets int
		wantErr  bool
	}{
		{name: "split and limit", tool: stubTool{output: "one\n\ntwo\n\nthree"}, limit: 2, snippets: 2},
		{name: "single block", tool: stubTool{output: "photosynthesis converts light"}, limit: 3, snippets: 1},
		{name: "no good result", tool: stubTool{output: "No good Google Search Results was found"}, limit: 3, wantErr: true},
		{name: "tool error", tool: stubTool{err: errors.New("network down")}, limit: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewWebSearcherWithTool(tt.tool).Search(context.Background(), "fotosíntesis", tt.limit)
			if tt.wantErr {
				if result.Err == nil {
					t.Fatalf("Search() expected error, got %+v", result)
				}
				if result.Context() != NoContextMarker {
					t.Errorf("Context() leaked %q", result.Context())
				}
				return
			}
			if result.Err != nil {
				t.Fatalf("Search() unexpected error: %v", result.Err)
			}
			if len(result.Snippets) != tt.snippets {
				t.Errorf("Search() returned %d snippets, expected %d", len(result.Snippets), tt.snippets)
			}
		})
	}
}

func TestMultiSearcher(t *testing.T) {
	failing := &stubSearcher{result: Result{Err: errors.New("boom")}}
	web := &stubSearcher{result: Result{Snippets: []string{"web 1", "shared"}}}
	curriculum := NewCurriculumSearcher(stubQuerier{chunks: []string{"shared", "syllabus"}})

	result := NewMultiSearcher(failing, web, nil, curriculum).Search(context.Background(), "q", 3)
	if result.Err != nil {
		t.Fatalf("Search() unexpected error: %v", result.Err)
	}
	if got := strings.Join(result.Snippets, "|"); got != "web 1|shared|syllabus" {
		t.Errorf("Search() snippets = %q", got)
	}

	allFailing := NewMultiSearcher(failing, NewCurriculumSearcher(stubQuerier{err: errors.New("index missing")}))
	if result := allFailing.Search(context.Background(), "q", 3); result.Err == nil {
		t.Errorf("Search() expected error when every searcher fails")
	}

	stopped := &stubSearcher{result: Result{Snippets: []string{"late"}}}
	NewMultiSearcher(web, stopped).Search(context.Background(), "q", 2)
	if stopped.calls != 0 {
		t.Errorf("searcher called after limit was reached")
	}
}

func TestNoopSearcher(t *testing.T) {
	if got := (NoopSearcher{}).Search(context.Background(), "q", 1).Context(); got != NoContextMarker {
		t.Errorf("Context() = %q, expected marker", got)
	}
}
