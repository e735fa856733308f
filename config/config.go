package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingCredential = errors.New("missing credential")

// Credential file names under KeysDir. The search key is a SerpAPI key; a
// Tavily key will not work there. SEARCH_KEY_FILE overrides SearchKeyFile.
const (
	ModelKeyFile   = "clave_api.txt"
	TracingKeyFile = "langgraphapi.txt"
	SearchKeyFile  = "serpapi_api.txt"
)

type Config struct {
	Port        string
	DatabaseURL string
	KeysDir     string

	SearchKeyFile string

	LLMProvider string
	LLMModel    string

	ModelAPIKey   string
	TracingAPIKey string
	SearchAPIKey  string

	TracingEndpoint string
	TracingProject  string

	PineconeAPIKey    string
	PineconeIndexName string
	EmbeddingAPIKey   string

	SearchFallback bool

	AgentMaxIterations int
}

// Load reads .env (if present), the environment and the three credential
// files. A missing or empty credential file is an error wrapping
// ErrMissingCredential.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] No .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DB_URL", ""),
		KeysDir:            getEnv("EVA_KEYS_DIR", "logs"),
		SearchKeyFile:      getEnv("SEARCH_KEY_FILE", SearchKeyFile),
		LLMProvider:        strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:           getEnv("LLM_MODEL", ""),
		TracingEndpoint:    getEnv("TRACING_ENDPOINT", ""),
		TracingProject:     getEnv("TRACING_PROJECT", "eva"),
		PineconeAPIKey:     getEnv("PINECONE_API_KEY", ""),
		PineconeIndexName:  getEnv("PINECONE_INDEX_NAME", "eva-curriculum-index"),
		EmbeddingAPIKey:    getEnv("OPENAI_API_KEY", ""),
		SearchFallback:     getEnvBool("SEARCH_FALLBACK", false),
		AgentMaxIterations: getEnvInt("AGENT_MAX_ITERATIONS", 10),
	}

	var err error
	if cfg.ModelAPIKey, err = ReadCredential(cfg.KeysDir, ModelKeyFile); err != nil {
		return nil, err
	}
	if cfg.TracingAPIKey, err = ReadCredential(cfg.KeysDir, TracingKeyFile); err != nil {
		return nil, err
	}
	if cfg.SearchAPIKey, err = ReadCredential(cfg.KeysDir, cfg.SearchKeyFile); err != nil {
		return nil, err
	}

	// Embeddings always go through OpenAI.
	if cfg.EmbeddingAPIKey == "" && cfg.LLMProvider == "openai" {
		cfg.EmbeddingAPIKey = cfg.ModelAPIKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch c.LLMProvider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.AgentMaxIterations <= 0 {
		return fmt.Errorf("AGENT_MAX_ITERATIONS must be > 0")
	}
	return nil
}

// CurriculumSearchEnabled reports whether Pinecone and embedding settings are
// present.
func (c *Config) CurriculumSearchEnabled() bool {
	return c.PineconeAPIKey != "" && c.PineconeIndexName != "" && c.EmbeddingAPIKey != ""
}

func ReadCredential(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: cannot read %s: %v", ErrMissingCredential, path, err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrMissingCredential, path)
	}
	return key, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return b
}
