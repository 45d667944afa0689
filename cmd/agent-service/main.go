package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/megasoby/shop-agent/pkg/agent"
	"github.com/megasoby/shop-agent/pkg/config"
	"github.com/megasoby/shop-agent/pkg/embedding"
	"github.com/megasoby/shop-agent/pkg/history"
	"github.com/megasoby/shop-agent/pkg/llm"
	"github.com/megasoby/shop-agent/pkg/order"
	"github.com/megasoby/shop-agent/pkg/search"
	"github.com/megasoby/shop-agent/pkg/server"
)

var configPath = flag.String("config", "config.yaml", "Path to the YAML config file")

func main() {
	flag.Parse()

	// .env is a dev convenience; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	embedder, err := newEmbedder(cfg.Embedding)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create embedder")
	}

	qdrantClient, err := search.NewQdrantClient(search.Config{
		Host:              cfg.Qdrant.Host,
		Port:              cfg.Qdrant.Port,
		APIKey:            os.Getenv(cfg.Qdrant.APIKeyEnv),
		ProductCollection: cfg.Qdrant.ProductCollection,
		GuideCollection:   cfg.Qdrant.GuideCollection,
	}, embedder, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create search client")
	}

	provider, err := newProvider(cfg.LLM, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create generation provider")
	}
	log.Info().Str("provider", cfg.LLM.Provider).Bool("rag_enabled", cfg.RAGEnabled()).Msg("generation provider ready")

	var orders order.Store
	if dsn := os.Getenv(cfg.Orders.DSNEnv); dsn != "" {
		store, err := order.NewPostgresStore(ctx, dsn, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to orders database")
		}
		defer store.Close()
		orders = store
	} else {
		log.Info().Msg("no orders DSN configured, order enrichment disabled")
	}

	hist := history.NewStore()
	products := agent.NewProductAgent(qdrantClient.Products(), provider, hist, cfg.RAGEnabled(), log)
	guides := agent.NewGuideAgent(qdrantClient.Guides(), provider, orders, hist, log)

	srv := server.New(products, guides, hist, log)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	if err := srv.Run(ctx, addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("shutdown complete")
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.Pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	} else {
		log = zerolog.New(os.Stdout)
	}
	return log.Level(level).With().Timestamp().Logger()
}

func newEmbedder(cfg config.EmbeddingConfig) (embedding.Embedder, error) {
	switch cfg.Provider {
	case "http":
		return embedding.NewHTTPClient(cfg.HTTP.URL, time.Duration(cfg.HTTP.TimeoutSecs)*time.Second), nil
	case "ollama":
		return embedding.NewOllamaClient(cfg.Ollama.Host, cfg.Ollama.Model)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

func newProvider(cfg config.LLMConfig, log zerolog.Logger) (llm.Provider, error) {
	switch cfg.Provider {
	case "mock":
		return llm.NewMockProvider(), nil
	case "anthropic":
		return llm.NewAnthropicProvider(llm.AnthropicOptions{
			APIKey:      os.Getenv(cfg.Anthropic.APIKeyEnv),
			Model:       cfg.Anthropic.Model,
			MaxTokens:   cfg.Anthropic.MaxTokens,
			Temperature: cfg.Anthropic.Temperature,
			Timeout:     time.Duration(cfg.Anthropic.TimeoutSecs) * time.Second,
		}, log), nil
	case "gateway":
		return llm.NewGatewayProvider(llm.GatewayOptions{
			APIKey:      os.Getenv(cfg.Gateway.APIKeyEnv),
			BaseURL:     cfg.Gateway.BaseURL,
			Model:       cfg.Gateway.Model,
			MaxTokens:   cfg.Gateway.MaxTokens,
			Temperature: cfg.Gateway.Temperature,
		}, log)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
