// Package gateway is the inbound HTTP surface: the webhook endpoint the
// platform posts updates to and a liveness probe.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot/models"
)

// WebhookPath is the route updates are posted to.
const WebhookPath = "/webhook"

// Enqueuer accepts decoded updates without blocking.
type Enqueuer interface {
	Enqueue(upd *models.Update) error
}

// Server wraps the gin engine in an http.Server with graceful shutdown.
type Server struct {
	srv             *http.Server
	queue           Enqueuer
	liveness        string
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// NewServer builds the gateway listening on addr.
func NewServer(addr string, queue Enqueuer, liveness string, shutdownTimeout time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		queue:           queue,
		liveness:        liveness,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With("component", "gateway"),
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// releaseMode keeps gin's debug route dump off stdout. An explicitly chosen
// mode (tests use TestMode) is left alone.
func releaseMode() {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func (s *Server) routes() *gin.Engine {
	releaseMode()
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/", s.handleLiveness)
	r.POST(WebhookPath, s.handleWebhook)
	return r
}

// Handler exposes the routing table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is done, then shuts down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP gateway listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http gateway failed: %w", err)
		}
		return errors.New("http gateway stopped unexpectedly")
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP gateway...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http gateway shutdown: %w", err)
	}
	s.logger.Info("HTTP gateway stopped.")
	return nil
}

func (s *Server) handleLiveness(c *gin.Context) {
	c.String(http.StatusOK, s.liveness)
}

// handleWebhook always acknowledges with 200 so the platform does not
// redeliver; undecodable or dropped updates are only logged.
func (s *Server) handleWebhook(c *gin.Context) {
	var upd models.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		s.logger.WarnContext(c.Request.Context(), "Discarding undecodable update", "error", err)
		c.String(http.StatusOK, "ok")
		return
	}

	if err := s.queue.Enqueue(&upd); err != nil {
		s.logger.WarnContext(c.Request.Context(), "Dropping update", "update_id", upd.ID, "error", err)
	}
	c.String(http.StatusOK, "ok")
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
