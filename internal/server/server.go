package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ecogenius/internal/analytics"
	"ecogenius/internal/billboard"
	"ecogenius/internal/capture"
	"ecogenius/internal/classify"
	"ecogenius/internal/config"
	"ecogenius/internal/logging"
	"ecogenius/internal/search"
)

const shutdownTimeout = 5 * time.Second

// Classifier runs the classification pipeline.
type Classifier interface {
	ClassifyImage(ctx context.Context, img capture.Image) (classify.Result, error)
	ClassifyURL(ctx context.Context, req classify.Request) (classify.Result, error)
}

// HealthCheck reports on one collaborator.
type HealthCheck struct {
	Name        string
	Description string
	Optional    bool
	Check       func(ctx context.Context) error
}

// Deps are the collaborators behind the routes. A nil field disables the
// routes that need it; they answer 503.
type Deps struct {
	Upload     http.Handler
	Classifier Classifier
	Guide      *search.Guide
	Board      *billboard.Board
	Aliases    *billboard.AliasGenerator
	Analytics  *analytics.Source
	Checks     []HealthCheck
	Version    string
}

// Server is the HTTP API.
type Server struct {
	bind     string
	deps     Deps
	logger   *slog.Logger
	token    string
	origins  []string
	maxBody  int64
	lockPath string

	server *http.Server
}

// New builds a server from cfg.
func New(cfg *config.Config, deps Deps, logger *slog.Logger) *Server {
	s := &Server{
		bind:     strings.TrimSpace(cfg.Server.Bind),
		deps:     deps,
		logger:   logging.NewComponentLogger(logger, "server"),
		token:    strings.TrimSpace(cfg.Server.APIToken),
		origins:  cfg.Server.AllowedOrigins,
		maxBody:  cfg.MaxUploadBytes(),
		lockPath: cfg.LockPath(),
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSecond) * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed, middleware-wrapped API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	protect := func(h http.HandlerFunc) http.HandlerFunc { return authMiddleware(s.token, h) }

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("POST /api/upload", protect(s.handleUpload))
	mux.HandleFunc("POST /api/classify", protect(s.handleClassify))

	mux.HandleFunc("GET /api/search", protect(s.handleSearch))
	mux.HandleFunc("GET /api/search/popular", protect(s.handlePopular))

	mux.HandleFunc("GET /api/councils", protect(s.handleCouncils))
	mux.HandleFunc("GET /api/councils/lookup", protect(s.handleCouncilLookup))
	mux.HandleFunc("GET /api/councils/{id}", protect(s.handleCouncil))
	mux.HandleFunc("GET /api/special-waste", protect(s.handleSpecialWaste))

	mux.HandleFunc("GET /api/posts", protect(s.handleListPosts))
	mux.HandleFunc("POST /api/posts", protect(s.handleCreatePost))
	mux.HandleFunc("GET /api/posts/{id}", protect(s.handleGetPost))
	mux.HandleFunc("GET /api/posts/{id}/responses", protect(s.handleListResponses))
	mux.HandleFunc("POST /api/responses", protect(s.handleCreateResponse))
	mux.HandleFunc("GET /api/nickname", protect(s.handleNickname))

	mux.HandleFunc("GET /api/analytics/trends", protect(s.handleTrends))
	mux.HandleFunc("GET /api/analytics/materials", protect(s.handleMaterials))

	return requestIDMiddleware(accessLogMiddleware(s.logger, corsMiddleware(s.origins, mux)))
}

// Run acquires the instance lock, serves until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	lock, err := acquireLock(s.lockPath)
	if err != nil {
		return err
	}
	defer lock.release(s.logger)

	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.Bool("auth", s.token != ""),
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api serve: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		s.logger.Info("api server stopped")
		return nil
	})
	return group.Wait()
}
