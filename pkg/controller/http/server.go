package http

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/RogoLabs/CNAPulse/frontend"
)

// Server serves the dashboard and the report document produced by the
// analyze job. It is a read-only presentation layer; all computation
// happens in the batch run.
type Server struct {
	*http.Server
	router     chi.Router
	reportPath string
}

// NewServer creates the HTTP server. reportPath is the JSON artifact
// the analyze command writes.
func NewServer(ctx context.Context, addr, reportPath string) (*Server, error) {
	if reportPath == "" {
		return nil, goerr.New("report path is required")
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(chimw.Recoverer)

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:     router,
		reportPath: reportPath,
	}

	router.Get("/health", handleHealth)
	router.Get("/api/report", server.handleReport)

	// Serve the embedded dashboard; fall back to a plain page when the
	// frontend assets are not built into the binary.
	fs, err := frontend.GetHTTPFS()
	if err != nil {
		ctxlog.From(ctx).Warn("Embedded dashboard unavailable, using fallback page",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	} else {
		router.Handle("/*", http.FileServer(fs))
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "cnapulse",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// handleReport serves the latest report document
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.reportPath)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "report not generated yet", http.StatusNotFound)
			return
		}
		ctxlog.From(r.Context()).Error("Failed to read report file",
			"path", s.reportPath,
			"error", err,
		)
		http.Error(w, "failed to read report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write report response", "error", err)
	}
}

// handleFallbackHome handles the root path when the dashboard is not
// embedded
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>CNAPulse</title></head>
<body>
    <h1>CNAPulse</h1>
    <p>The dashboard is not embedded in this build. The report document is available at <a href="/api/report">/api/report</a>.</p>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback response", "error", err)
	}
}
