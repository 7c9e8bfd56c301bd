package config

import (
	"os"
	"strconv"
	"time"
)

// RuntimeConfig carries process-level settings. Defaults are overridable from
// the environment; cmd loads .env first via godotenv.
type RuntimeConfig struct {
	// DatabasePath is the sqlite file backing every durable store.
	DatabasePath string `json:"databasePath,omitempty"`

	// BindAddr is the webhook server listen address.
	BindAddr string `json:"bindAddr,omitempty"`

	// OutboundURL receives agent messages as POST {agent_id, agent_message}.
	OutboundURL string `json:"outboundUrl,omitempty"`

	// VectorEnabled selects the sqlite-vec semantic index. When disabled the
	// in-memory index is used instead (no embeddings persisted).
	VectorEnabled bool `json:"vectorEnabled,omitempty"`

	// EmbeddingDimension must match the embedding model output size.
	EmbeddingDimension int `json:"embeddingDimension,omitempty"`

	// ShortTermWindow bounds the recent-dialogue buffer per agent.
	ShortTermWindow int `json:"shortTermWindow,omitempty"`

	LogLevel   string `json:"logLevel,omitempty"`
	LogHandler string `json:"logHandler,omitempty"`
}

func NewRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		DatabasePath:       "curio.db",
		BindAddr:           "0.0.0.0:8087",
		OutboundURL:        "http://localhost:8086/route_agent_message",
		VectorEnabled:      true,
		EmbeddingDimension: 1536,
		ShortTermWindow:    20,
		LogLevel:           "info",
		LogHandler:         "default",
	}
}

func (c *RuntimeConfig) ApplyEnv() {
	if v := os.Getenv("CURIO_DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("CURIO_BIND_ADDR"); v != "" {
		c.BindAddr = v
	}
	if v := os.Getenv("CURIO_OUTBOUND_URL"); v != "" {
		c.OutboundURL = v
	}
	if v := os.Getenv("CURIO_VECTOR_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.VectorEnabled = b
		}
	}
	if v := os.Getenv("CURIO_EMBEDDING_DIMENSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.EmbeddingDimension = n
		}
	}
	if v := os.Getenv("CURIO_SHORT_TERM_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.ShortTermWindow = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_HANDLER"); v != "" {
		c.LogHandler = v
	}
}

// ModelConfig configures the language-model providers. The decision and
// summary calls share one client; the provider is swappable.
type ModelConfig struct {
	Provider        string        `json:"provider,omitempty"` // "anthropic" or "openai"
	Model           string        `json:"model,omitempty"`
	EmbeddingModel  string        `json:"embeddingModel,omitempty"`
	MaxTokens       int           `json:"maxTokens,omitempty"`
	Temperature     float64       `json:"temperature,omitempty"`
	RequestTimeout  time.Duration `json:"requestTimeout,omitempty"`
	AnthropicAPIKey string        `json:"-"`
	OpenAIAPIKey    string        `json:"-"`
}

func NewModelConfig() *ModelConfig {
	return &ModelConfig{
		Provider:       "anthropic",
		Model:          "claude-3-5-sonnet-latest",
		EmbeddingModel: "text-embedding-3-small",
		MaxTokens:      500,
		Temperature:    0.7,
		RequestTimeout: 60 * time.Second,
	}
}

func (c *ModelConfig) ApplyEnv() {
	if v := os.Getenv("CURIO_MODEL_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("CURIO_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("CURIO_EMBEDDING_MODEL"); v != "" {
		c.EmbeddingModel = v
	}
	if v := os.Getenv("CURIO_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	c.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	c.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
}
