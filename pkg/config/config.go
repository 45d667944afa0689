// Package config loads the service configuration from a YAML file.
// Secrets never live in the file; *_env fields name the environment
// variables to read them from.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// AgentConfig holds orchestration toggles.
type AgentConfig struct {
	// RAGEnabled toggles retrieval for the product flow. Defaults to true.
	RAGEnabled *bool `yaml:"rag_enabled"`
}

// HTTPEmbedderConfig configures the embedding sidecar client.
type HTTPEmbedderConfig struct {
	URL         string `yaml:"url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// OllamaEmbedderConfig configures the Ollama-backed embedder.
type OllamaEmbedderConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// EmbeddingConfig selects and configures the embedder implementation.
type EmbeddingConfig struct {
	Provider string               `yaml:"provider"` // "http" or "ollama"
	HTTP     HTTPEmbedderConfig   `yaml:"http"`
	Ollama   OllamaEmbedderConfig `yaml:"ollama"`
}

// QdrantConfig contains connection details for the search backend.
type QdrantConfig struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	APIKeyEnv         string `yaml:"api_key_env"`
	ProductCollection string `yaml:"product_collection"`
	GuideCollection   string `yaml:"guide_collection"`
}

// AnthropicConfig configures the direct Anthropic API provider.
type AnthropicConfig struct {
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// GatewayConfig configures the managed-gateway provider.
type GatewayConfig struct {
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// LLMConfig selects the generation provider, fixed for the process
// lifetime.
type LLMConfig struct {
	Provider  string          `yaml:"provider"` // "mock", "anthropic", or "gateway"
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Gateway   GatewayConfig   `yaml:"gateway"`
}

// OrdersConfig configures the optional order-database lookup. Empty DSN
// disables order enrichment.
type OrdersConfig struct {
	DSNEnv string `yaml:"dsn_env"`
}

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Agent     AgentConfig     `yaml:"agent"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
	LLM       LLMConfig       `yaml:"llm"`
	Orders    OrdersConfig    `yaml:"orders"`
}

// RAGEnabled reports the retrieval toggle with its default applied.
func (c *Config) RAGEnabled() bool {
	return c.Agent.RAGEnabled == nil || *c.Agent.RAGEnabled
}

// Load reads the config from path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "http"
	}
	if cfg.Embedding.HTTP.TimeoutSecs == 0 {
		cfg.Embedding.HTTP.TimeoutSecs = 30
	}
	if cfg.Qdrant.Host == "" {
		cfg.Qdrant.Host = "localhost"
	}
	if cfg.Qdrant.Port == 0 {
		cfg.Qdrant.Port = 6334
	}
	if cfg.Qdrant.ProductCollection == "" {
		cfg.Qdrant.ProductCollection = "products"
	}
	if cfg.Qdrant.GuideCollection == "" {
		cfg.Qdrant.GuideCollection = "support_guides"
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "mock"
	}
	if cfg.LLM.Anthropic.APIKeyEnv == "" {
		cfg.LLM.Anthropic.APIKeyEnv = "ANTHROPIC_API_KEY"
	}
	if cfg.LLM.Anthropic.TimeoutSecs == 0 {
		cfg.LLM.Anthropic.TimeoutSecs = 60
	}
	if cfg.LLM.Gateway.APIKeyEnv == "" {
		cfg.LLM.Gateway.APIKeyEnv = "LLM_GATEWAY_API_KEY"
	}
	if cfg.Orders.DSNEnv == "" {
		cfg.Orders.DSNEnv = "ORDERS_DSN"
	}
}
