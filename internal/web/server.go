// Package web provides the HTTP server and handlers for the museum booking UI.
package web

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"github.com/evcraddock/museum-visit/internal/app"
	"github.com/evcraddock/museum-visit/internal/config"
	"github.com/evcraddock/museum-visit/internal/content"
	"github.com/evcraddock/museum-visit/internal/logging"
	"github.com/evcraddock/museum-visit/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the web UI HTTP server.
type Server struct {
	cfg       config.Config
	sessions  *session.Store
	apps      *app.Registry
	catalog   *content.Catalog
	templates *template.Template
	mux       *http.ServeMux
	handler   http.Handler
	http      *http.Server
}

// NewServer creates a web server storing its sessions in db.
func NewServer(db *sql.DB, cfg config.Config) (*Server, error) {
	funcMap := template.FuncMap{
		"refreshSeconds": tmplRefreshSeconds,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	catalog := content.NewCatalog()
	s := &Server{
		cfg:      cfg,
		sessions: session.NewStore(db, cfg.SessionTTL, cfg.SecureCookies),
		apps: app.NewRegistry(app.Options{
			Delays:  cfg.Delays,
			Policy:  cfg.Policy,
			Catalog: catalog,
		}),
		catalog:   catalog,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.routes()

	var h http.Handler = s.mux
	key, err := cfg.CSRFKeyBytes()
	if err != nil {
		return nil, err
	}
	if key != nil {
		h = csrfProtect(key, cfg.SecureCookies, h)
	}
	s.handler = logging.RequestLogger(h)
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	slog.Info("starting web UI", "addr", "http://localhost"+addr, "db", s.cfg.DB)
	return s.http.ListenAndServe()
}

// Shutdown stops accepting requests, waits for those in flight and stops
// every session's pending page change.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.apps.Close()
	return err
}

// Cleanup removes expired sessions and drops their state.
func (s *Server) Cleanup() error {
	ids, err := s.sessions.Cleanup()
	if err != nil {
		return err
	}
	s.apps.Drop(ids...)
	if len(ids) > 0 {
		slog.Info("expired sessions removed", "count", len(ids))
	}
	return nil
}

// csrfProtect wraps h with CSRF checks on every unsafe method. Over plain
// HTTP the referer check must be told the request is not TLS.
func csrfProtect(key []byte, secure bool, h http.Handler) http.Handler {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.FieldName("csrf_token"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("csrf check failed", "path", r.URL.Path, "reason", csrf.FailureReason(r))
			http.Error(w, "Forbidden", http.StatusForbidden)
		})),
	)(h)
	if secure {
		return protect
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		protect.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

// appFor returns the state of the caller's session, starting a new session
// when the cookie is missing or stale.
func (s *Server) appFor(w http.ResponseWriter, r *http.Request) (*app.App, error) {
	id, err := s.sessions.Validate(r)
	if errors.Is(err, session.ErrExpired) {
		s.apps.Drop(id)
	}
	if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrExpired) {
		id, err = s.sessions.Create(w)
	}
	if err != nil {
		return nil, err
	}
	return s.apps.Get(id), nil
}

type appHandler func(w http.ResponseWriter, r *http.Request, a *app.App)

// withApp resolves the session for h and records where it ended up.
func (s *Server) withApp(h appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := s.appFor(w, r)
		if err != nil {
			http.Error(w, fmt.Sprintf("Error loading session: %v", err), http.StatusInternalServerError)
			return
		}

		h(w, r, a)

		nav := a.Nav()
		if err := s.sessions.Touch(a.ID(), nav.Username, string(nav.Page)); err != nil {
			slog.Warn("recording session", "session", a.ID(), "error", err)
		}
	}
}

// Template helper functions

func tmplRefreshSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
