package main

import (
	"context"
	"log"

	"github.com/junova144/Eva/config"
	"github.com/junova144/Eva/models"
	"github.com/junova144/Eva/services/pinecone"
)

func main() {
	log.Printf("[INFO] Starting curriculum indexing process")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ERROR] Failed to load configuration: %v", err)
	}

	if cfg.PineconeAPIKey == "" {
		log.Fatal("[ERROR] PINECONE_API_KEY environment variable is required")
	}

	if cfg.EmbeddingAPIKey == "" {
		log.Fatal("[ERROR] OPENAI_API_KEY environment variable is required for embeddings")
	}

	ctx := context.Background()

	service, err := pinecone.NewService(cfg.PineconeAPIKey, cfg.EmbeddingAPIKey, cfg.PineconeIndexName)
	if err != nil {
		log.Fatalf("[ERROR] Failed to initialize Pinecone service: %v", err)
	}

	if err := service.EnsureIndex(ctx); err != nil {
		log.Fatalf("[ERROR] Failed to prepare index %s: %v", cfg.PineconeIndexName, err)
	}

	entries := models.Catalog()
	log.Printf("[INFO] Indexing %d catalog entries", len(entries))

	count, err := service.IndexCatalog(ctx, entries)
	if err != nil {
		log.Fatalf("[ERROR] Failed to index catalog: %v", err)
	}

	log.Printf("[INFO] Curriculum indexing completed: %d vectors upserted", count)
}
