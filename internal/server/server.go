package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"metroexit/internal/config"
	"metroexit/internal/handler"
	"metroexit/internal/metro"
	"metroexit/internal/plancache"
	"metroexit/internal/realtime"
	"metroexit/internal/storage"
	"metroexit/web"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP server for metroexit.
type Server struct {
	router  chi.Router
	plans   *plancache.Cache
	cfg     *config.Config
	logger  zerolog.Logger
	db      *storage.DB
	network *metro.Network
}

// New creates a new Server with all routes registered. The network must be
// fully built; it is shared read-only by every request.
func New(cfg *config.Config, db *storage.DB, network *metro.Network, rt *realtime.Store, logger zerolog.Logger) (*Server, error) {
	staticFS, err := fs.Sub(web.StaticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	plans, err := plancache.New(cfg.PlanCacheTTL)
	if err != nil {
		return nil, err
	}
	h, err := handler.New(network, plans, rt, staticFS, logger)
	if err != nil {
		plans.Close()
		return nil, err
	}

	s := &Server{plans: plans, cfg: cfg, logger: logger, db: db, network: network}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(securityHeaders)
	r.Use(middleware.Recoverer)

	// Static files, served from the embedded FS; versioned URLs get immutable caching
	fileServer := http.FileServer(http.FS(staticFS))
	r.Handle("/static/*", http.StripPrefix("/static/", staticCacheHandler(fileServer)))

	// Pages
	r.Get("/", h.Home)
	r.Post("/", h.PlanForm)
	r.Get("/health", s.health)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
			MaxAge:         300,
		}))
		r.Get("/stations", h.Stations)
		r.Get("/lines", h.Lines)
		r.Get("/plan", h.Plan)
	})

	s.router = r
	return s, nil
}

// Close releases the plan cache. ListenAndServe calls it on return.
func (s *Server) Close() {
	s.plans.Close()
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves HTTP until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	defer s.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type healthResponse struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	Stations   int    `json:"stations"`
	ImportedAt string `json:"imported_at,omitempty"`
	Error      string `json:"error,omitempty"`
}

// health reports whether the reference tables are present in the database.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Database: "connected", Stations: len(s.network.StationNames())}
	status := http.StatusOK

	ok, err := s.db.HasData(ctx)
	switch {
	case err != nil:
		resp.Status, resp.Database, resp.Error = "error", "disconnected", err.Error()
		status = http.StatusServiceUnavailable
	case !ok:
		resp.Status, resp.Database = "error", "empty"
		status = http.StatusServiceUnavailable
	default:
		resp.ImportedAt, _ = s.db.GetMetadata(ctx, storage.MetaImportedAt)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
