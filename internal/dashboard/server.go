// Package dashboard serves the single-page sentiment dashboard: one input
// form, three metrics, a bar chart and a table, plus a JSON twin of the
// analysis under /api.
package dashboard

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spacesedan/tubemood/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type Analyzer interface {
	FetchAndScore(ctx context.Context, videoID string) (*models.AnalysisResult, error)
}

// RecentSource lists recently analyzed video IDs. Optional.
type RecentSource interface {
	RecentVideos(ctx context.Context) ([]string, error)
}

type Server struct {
	router         chi.Router
	analyzer       Analyzer
	recent         RecentSource
	defaultVideoID string
}

func NewServer(analyzer Analyzer, defaultVideoID string, recent RecentSource) *Server {
	s := &Server{
		analyzer:       analyzer,
		recent:         recent,
		defaultVideoID: defaultVideoID,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/analyze", s.handleAnalyze)
	r.Get("/api/analyze", s.handleAPIAnalyze)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Dashboard] Listening", slog.String("addr", addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("[Dashboard] Shutting down dashboard gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
