package pinecone

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/junova144/Eva/models"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	Namespace    = "eva-curriculum"
	vectorPrefix = "course_"
	queryTopK    = 10
	upsertBatch  = 10
)

type Service struct {
	client    *pinecone.Client
	embedder  embeddings.Embedder
	indexName string
}

func NewService(apiKey, openaiAPIKey, indexName string) (*Service, error) {
	log.Printf("[INFO] Initializing Pinecone service")

	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}

	llm, err := openai.New(
		openai.WithModel("gpt-4o-mini"),
		openai.WithToken(openaiAPIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	log.Printf("[INFO] Pinecone service initialized successfully")
	return &Service{
		client:    pc,
		embedder:  embedder,
		indexName: indexName,
	}, nil
}

func (s *Service) indexConnection(ctx context.Context) (*pinecone.IndexConnection, error) {
	idxDesc, err := s.client.DescribeIndex(ctx, s.indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index: %w", err)
	}

	idxConn, err := s.client.Index(pinecone.NewIndexConnParams{
		Host:      idxDesc.Host,
		Namespace: Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create index connection: %w", err)
	}
	return idxConn, nil
}

// QueryCourseChunks returns catalog entries closest to the query, formatted
// for inclusion in a prompt.
func (s *Service) QueryCourseChunks(ctx context.Context, query string, limit int) ([]string, error) {
	log.Printf("[INFO] Starting Pinecone query for %q with limit: %d", query, limit)

	idxConn, err := s.indexConnection(ctx)
	if err != nil {
		return nil, err
	}

	queryEmbeddings, err := s.embedder.EmbedDocuments(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	result, err := idxConn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          queryEmbeddings[0],
		TopK:            queryTopK,
		IncludeValues:   false,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query vectors: %w", err)
	}

	var chunks []string
	for _, match := range result.Matches {
		if match.Vector.Metadata == nil {
			continue
		}
		if chunk := formatChunk(match.Vector.Metadata.AsMap()); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	if limit > 0 && len(chunks) > limit {
		chunks = chunks[:limit]
	}

	log.Printf("[INFO] Pinecone query returned %d chunks", len(chunks))
	return chunks, nil
}

func formatChunk(metadata map[string]any) string {
	var parts []string
	if course, ok := metadata["course"].(string); ok && course != "" {
		header := "Course: " + course
		if grade, ok := metadata["grade"].(string); ok && grade != "" {
			header += " (" + grade + ")"
		}
		parts = append(parts, header)
	}
	if desc, ok := metadata["description"].(string); ok && desc != "" {
		parts = append(parts, "Syllabus: "+desc)
	}
	return strings.Join(parts, "\n")
}

func (s *Service) EnsureIndex(ctx context.Context) error {
	indexes, err := s.client.ListIndexes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}

	for _, idx := range indexes {
		if idx.Name == s.indexName {
			log.Printf("[INFO] Index %s already exists", s.indexName)
			return nil
		}
	}

	log.Printf("[INFO] Creating Pinecone index: %s", s.indexName)
	dimension := int32(1536)
	deletionProtection := pinecone.DeletionProtectionDisabled
	metric := pinecone.Cosine

	_, err = s.client.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:               s.indexName,
		Dimension:          &dimension,
		Metric:             &metric,
		Cloud:              pinecone.Aws,
		Region:             "us-east-1",
		DeletionProtection: &deletionProtection,
		Tags:               &pinecone.IndexTags{"project": "eva-curriculum"},
	})
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	for {
		idx, err := s.client.DescribeIndex(ctx, s.indexName)
		if err != nil {
			return fmt.Errorf("failed to describe index: %w", err)
		}
		if idx.Status.Ready {
			log.Printf("[INFO] Index %s is ready", s.indexName)
			return nil
		}
		log.Printf("[INFO] Waiting for index %s to be ready...", s.indexName)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Second):
		}
	}
}

// IndexCatalog replaces every catalog vector with fresh embeddings.
func (s *Service) IndexCatalog(ctx context.Context, entries []models.CourseInfo) (int, error) {
	if err := s.deleteCatalogVectors(ctx); err != nil {
		return 0, err
	}

	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, CatalogText(e))
	}

	vectorsValues, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	var vectors []*pinecone.Vector
	for i, e := range entries {
		metadata, err := structpb.NewStruct(map[string]any{
			"grade":       string(e.Grade),
			"course":      e.Course.String(),
			"description": e.Description,
			"indexed_at":  time.Now().Format(time.RFC3339),
		})
		if err != nil {
			return 0, fmt.Errorf("failed to create metadata struct for %s: %w", VectorID(e), err)
		}
		vectors = append(vectors, &pinecone.Vector{
			Id:       VectorID(e),
			Values:   &vectorsValues[i],
			Metadata: metadata,
		})
	}

	idxConn, err := s.indexConnection(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for i := 0; i < len(vectors); i += upsertBatch {
		end := min(i+upsertBatch, len(vectors))
		count, err := idxConn.UpsertVectors(ctx, vectors[i:end])
		if err != nil {
			return total, fmt.Errorf("failed to upsert vector batch: %w", err)
		}
		total += int(count)
		log.Printf("[INFO] Successfully upserted %d vectors (batch %d)", count, i/upsertBatch+1)
	}
	return total, nil
}

func (s *Service) deleteCatalogVectors(ctx context.Context) error {
	idxConn, err := s.indexConnection(ctx)
	if err != nil {
		return err
	}

	prefix := vectorPrefix
	limit := uint32(100)
	listResp, err := idxConn.ListVectors(ctx, &pinecone.ListVectorsRequest{
		Prefix: &prefix,
		Limit:  &limit,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Namespace not found") {
			log.Printf("[INFO] Namespace does not exist yet - no vectors to delete")
			return nil
		}
		return fmt.Errorf("failed to list vectors: %w", err)
	}

	for {
		var ids []string
		for _, id := range listResp.VectorIds {
			if id != nil {
				ids = append(ids, *id)
			}
		}
		if len(ids) > 0 {
			if err := idxConn.DeleteVectorsById(ctx, ids); err != nil {
				return fmt.Errorf("failed to delete vector batch: %w", err)
			}
			log.Printf("[INFO] Deleted %d catalog vectors", len(ids))
		}

		if listResp.NextPaginationToken == nil {
			return nil
		}
		listResp, err = idxConn.ListVectors(ctx, &pinecone.ListVectorsRequest{
			Prefix:          &prefix,
			Limit:           &limit,
			PaginationToken: listResp.NextPaginationToken,
		})
		if err != nil {
			return fmt.Errorf("failed to list next batch of vectors: %w", err)
		}
	}
}

func VectorID(e models.CourseInfo) string {
	grade := strings.NewReplacer("°", "", " ", "_").Replace(string(e.Grade))
	course := strings.ReplaceAll(models.NormalizeCourse(e.Course.String()), " ", "_")
	return vectorPrefix + strings.ToLower(grade) + "_" + course
}

func CatalogText(e models.CourseInfo) string {
	return fmt.Sprintf("Course: %s\nGrade: %s\nSyllabus: %s", e.Course, e.Grade, e.Description)
}
