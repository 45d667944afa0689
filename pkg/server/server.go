// Package server exposes the agent flows over HTTP. Transport only: all
// behavior lives in the agent package.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/megasoby/shop-agent/pkg/agent"
	"github.com/megasoby/shop-agent/pkg/history"
)

// Server routes HTTP requests to the two orchestration flows and the
// history store.
type Server struct {
	products *agent.ProductAgent
	guides   *agent.GuideAgent
	history  *history.Store
	log      zerolog.Logger
	engine   *gin.Engine
}

// New builds the router with recovery, request logging, and CORS.
func New(products *agent.ProductAgent, guides *agent.GuideAgent, hist *history.Store, log zerolog.Logger) *Server {
	s := &Server{
		products: products,
		guides:   guides,
		history:  hist,
		log:      log.With().Str("component", "server").Logger(),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())
	engine.Use(corsMiddleware())

	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	agentGroup := engine.Group("/api/agent")
	agentGroup.POST("/chat", s.handleChat)
	agentGroup.GET("/history", s.handleGetHistory)
	agentGroup.DELETE("/history", s.handleClearHistory)
	agentGroup.GET("/stats", s.handleStats)

	guideGroup := engine.Group("/api/guide")
	guideGroup.POST("/search", s.handleGuideSearch)
	guideGroup.GET("/search", s.handleGuideSearchGet)
	guideGroup.GET("/search/text", s.handleGuideTextSearch)

	s.engine = engine
	return s
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.log.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
