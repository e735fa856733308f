package search

import (
	"context"
	"fmt"
	"log"
)

type ChunkQuerier interface {
	QueryCourseChunks(ctx context.Context, query string, limit int) ([]string, error)
}

// CurriculumSearcher looks up syllabus entries in the vector index.
type CurriculumSearcher struct {
	querier ChunkQuerier
}

func NewCurriculumSearcher(querier ChunkQuerier) *CurriculumSearcher {
	return &CurriculumSearcher{querier: querier}
}

func (c *CurriculumSearcher) Search(ctx context.Context, query string, limit int) Result {
	chunks, err := c.querier.QueryCourseChunks(ctx, query, limit)
	if err != nil {
		log.Printf("[ERROR] Curriculum search failed: %v", err)
		return Result{Err: fmt.Errorf("curriculum search failed: %w", err)}
	}
	if len(chunks) == 0 {
		return Result{Err: ErrNoResults}
	}
	return Result{Snippets: chunks}
}
