package web

import (
	"context"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"weekendly/internal/config"
	"weekendly/internal/jobs"
	appLog "weekendly/internal/log"
	"weekendly/internal/notify"
	"weekendly/internal/planner"
	"weekendly/internal/poster"
	"weekendly/internal/schedule"
)

// PosterRenderer turns a plan into a PNG poster.
type PosterRenderer interface {
	Render(ctx context.Context, snap schedule.Snapshot) ([]byte, error)
	View(snap schedule.Snapshot) poster.View
}

// Server exposes the planner over HTTP: the catalog, the schedule, drops,
// exports and the embedded drag-and-drop page.
type Server struct {
	cfg      *config.Config
	dataDir  string
	planner  *planner.Planner
	queue    *notify.Queue
	renderer PosterRenderer
	loc      *time.Location
	now      func() time.Time
	mux      *http.ServeMux
}

// embeddedStatic holds the single-page UI served at "/".
//
//go:embed all:static
var embeddedStatic embed.FS

// NewServer constructs a new Server. queue receives the planner's
// notifications and is drained by /api/notifications.
func NewServer(cfg *config.Config, dataDir string, p *planner.Planner, q *notify.Queue, r PosterRenderer) *Server {
	s := &Server{
		cfg:      cfg,
		dataDir:  dataDir,
		planner:  p,
		queue:    q,
		renderer: r,
		loc:      resolveLocationOrLocal(cfg),
		now:      time.Now,
		mux:      http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	ba := s.cfg.BasicAuth
	if ba == nil || ba.Username == "" {
		return false
	}
	return ba.Password != "" || ba.PasswordHash != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	ba := *s.cfg.BasicAuth

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, ba.Username) || !checkPassword(ba, p) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Weekendly", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkPassword prefers the bcrypt hash when one is configured.
func checkPassword(ba config.BasicAuthConfig, given string) bool {
	if ba.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(ba.PasswordHash), []byte(given)) == nil
	}
	return secureCompare(given, ba.Password)
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Run serves on cfg.Listen until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	appLog.Info("shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/activities", s.handleActivities)
	s.mux.HandleFunc("GET /api/schedule", s.handleSchedule)
	s.mux.HandleFunc("GET /api/schedule/occupied", s.handleOccupied)
	s.mux.HandleFunc("POST /api/drop", s.handleDrop)
	s.mux.HandleFunc("PUT /api/items/{id}", s.handleMove)
	s.mux.HandleFunc("DELETE /api/items/{id}", s.handleRemove)
	s.mux.HandleFunc("POST /api/clear", s.handleClear)
	s.mux.HandleFunc("POST /api/save", s.handleSave)
	s.mux.HandleFunc("GET /api/summary", s.handleSummary)
	s.mux.HandleFunc("GET /api/notifications", s.handleNotifications)
	s.mux.HandleFunc("DELETE /api/notifications/{id}", s.handleDismiss)
	s.mux.HandleFunc("GET /api/theme", s.handleTheme)

	s.mux.HandleFunc("GET /api/export/json", s.handleExportJSON)
	s.mux.HandleFunc("GET /api/export/ics", s.handleExportICS)
	s.mux.HandleFunc("GET /api/export/poster", s.handleExportPoster)

	s.mux.HandleFunc("GET /poster", s.handlePosterHTML)
	s.mux.HandleFunc("GET /poster.png", s.handlePosterFile)

	// Everything else falls back to the embedded page.
	s.mux.Handle("/", s.staticFileServer())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// staticFileServer serves the embedded UI from internal/web/static.
func (s *Server) staticFileServer() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		appLog.Error("failed to initialize embedded static filesystem", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "static UI not available", http.StatusServiceUnavailable)
		})
	}

	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown /api/* paths are a 404, never the HTML page.
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}

// handlePosterFile serves the poster last written by the refresh job.
func (s *Server) handlePosterFile(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.dataDir, jobs.PosterFile))
}

func resolveLocationOrLocal(cfg *config.Config) *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", cfg.Timezone)
		return time.Local
	}
	return loc
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
