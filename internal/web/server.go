// Package web serves the CodeLens browser UI and JSON API.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"codelens.dev/pkg/codelens/internal/adapter"
	"codelens.dev/pkg/codelens/internal/domain"
	m "codelens.dev/pkg/codelens/internal/model"
)

// defaultMaxUpload bounds the multipart form size kept in memory.
const defaultMaxUpload = 64 << 20

// Config holds the settings the handlers need.
type Config struct {
	Reports   m.Path
	LogFile   m.Path
	Formats   []m.ReportFormat
	Algorithm string
	Threshold int
	Limit     int
	MaxUpload int64
}

// Server wires the web handlers and dependencies.
type Server struct {
	Analyzer domain.Analyzer
	FS       adapter.SourceFSAdapter
	Config   Config
	Router   chi.Router

	now func() time.Time
}

// NewServer constructs the router and registers routes.
func NewServer(analyzer domain.Analyzer, fs adapter.SourceFSAdapter, cfg Config) *Server {
	if cfg.MaxUpload <= 0 {
		cfg.MaxUpload = defaultMaxUpload
	}

	server := &Server{Analyzer: analyzer, FS: fs, Config: cfg, now: time.Now}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logRequests)

	r.Get("/", server.handleHome)
	r.Get("/scan", server.handleScanForm)
	r.Post("/scan", server.handleScan)
	r.Get("/match", server.handleMatchForm)
	r.Post("/match", server.handleMatch)
	r.Get("/columns", server.handleColumnsForm)
	r.Post("/columns", server.handleColumns)
	r.Get("/reports", server.handleReportsList)
	r.Get("/reports/{name}", server.handleReportDownload)
	r.Get("/logs", server.handleLogs)

	r.Get("/api/reports", server.apiListReports)
	r.Post("/api/scan", server.apiScan)

	server.Router = r

	return server
}

// Handler exposes the configured router.
func (s *Server) Handler() http.Handler {
	return s.Router
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
