package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/boozedog/contextcrafter/internal/catalog"
	"github.com/boozedog/contextcrafter/internal/config"
	"github.com/boozedog/contextcrafter/internal/logger"
	"github.com/boozedog/contextcrafter/internal/persist"
	"github.com/boozedog/contextcrafter/internal/web/handler"
	"github.com/boozedog/contextcrafter/internal/web/middleware"
	"github.com/boozedog/contextcrafter/internal/web/sse"
)

// Server is the local web UI for contextcrafter.
type Server struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	records *persist.Records
	log     *logger.Logger
	port    int
	broker  *sse.Broker
	srv     *http.Server
}

// NewServer creates a new web server listening on the configured port.
func NewServer(cfg *config.Config, cat *catalog.Catalog, records *persist.Records, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		cfg:     cfg,
		catalog: cat,
		records: records,
		log:     log,
		port:    cfg.Web.Port,
		broker:  sse.NewBroker(log),
	}
}

// Routes returns the server's handler with middleware applied.
func (s *Server) Routes(ctx context.Context) http.Handler {
	h := handler.New(s.catalog, s.records, s.broker, s.log)

	mux := http.NewServeMux()

	// Pages.
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /questionnaire/{id}", h.Questionnaire)
	mux.HandleFunc("POST /questionnaire/{id}", h.SubmitAnswer)
	mux.HandleFunc("GET /result", h.Result)
	mux.HandleFunc("POST /reset", h.Reset)
	mux.HandleFunc("GET /history", h.History)
	mux.HandleFunc("GET /history/{id}", h.Prompt)

	// SSE endpoint.
	mux.HandleFunc("GET /events", h.Events)

	return middleware.Chain(mux,
		middleware.Logging(s.log),
		middleware.CORS(),
		middleware.RateLimit(ctx, middleware.DefaultRateLimitConfig(), s.log),
	)
}

// ListenAndServe starts the server and blocks until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	// Only file-backed stores can be watched for changes made by the CLI.
	switch persist.Backend(s.cfg.Store.Backend) {
	case persist.BackendFile, persist.BackendSQLite:
		dataDir, err := s.cfg.DataDir()
		if err != nil {
			return fmt.Errorf("get data dir: %w", err)
		}
		watcher, err := sse.NewWatcher(dataDir, s.broker, sse.DefaultDebounce, s.log)
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer func() { _ = watcher.Close() }()
	}

	s.srv = &http.Server{
		Addr:        fmt.Sprintf(":%d", s.port),
		Handler:     s.Routes(ctx),
		ReadTimeout: 5 * time.Second,
		// No WriteTimeout: /events streams stay open.
		IdleTimeout: 120 * time.Second,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		s.log.Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("listening", "addr", fmt.Sprintf("http://localhost:%d", s.port))
	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
