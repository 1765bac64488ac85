// Package server serves a legal-document site, enhancing HTML pages per
// request with the preferences carried in the reader's cookies.
package server

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dtnitsch/legaldoc/models"
	"github.com/dtnitsch/legaldoc/pkg/browser"
	"github.com/dtnitsch/legaldoc/pkg/dom"
	"github.com/dtnitsch/legaldoc/pkg/enhancer"
	"github.com/dtnitsch/legaldoc/pkg/langswitch"
	"github.com/dtnitsch/legaldoc/pkg/prefs"
)

// Server is the HTTP rendition of the enhancer.
type Server struct {
	cfg        *models.Config
	fsys       fs.FS
	logger     *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server for the site directory named in cfg.Server.Dir.
func New(cfg *models.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		fsys:   os.DirFS(cfg.Server.Dir),
		logger: logger,
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/preferences/language/{lang}", s.handleLanguage)
	r.Post("/preferences/dark-mode", s.handleDarkMode)
	r.Get("/*", s.handlePage)

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured address. It returns
// http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("legaldoc server listening", "addr", s.cfg.Server.Addr, "dir", s.cfg.Server.Dir)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// returnPath reads the form field naming the page to go back to. Anything
// that is not a local absolute path becomes "/".
func returnPath(r *http.Request) string {
	p := r.FormValue("path")
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return "/"
	}
	return p
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if !slices.Contains(s.cfg.Languages, lang) {
		http.Error(w, "unknown language", http.StatusBadRequest)
		return
	}

	window := browser.NewWindow(returnPath(r))
	manager := prefs.NewManager(prefs.NewCookieStore(w, r), s.logger)
	target, err := langswitch.New(manager, window, s.cfg.Languages, s.logger).Switch(lang)
	if err != nil {
		s.logger.Error("language switch failed", "language", lang, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleDarkMode(w http.ResponseWriter, r *http.Request) {
	manager := prefs.NewManager(prefs.NewCookieStore(w, r), s.logger)
	state, err := manager.Load()
	if err == nil {
		err = manager.SaveDarkMode(!state.DarkMode)
	}
	if err != nil {
		s.logger.Error("dark mode toggle failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		name = path.Join(name, "index.html")
		if _, err := fs.Stat(s.fsys, name); err != nil {
			http.NotFound(w, r)
			return
		}
	}
	if path.Ext(name) != ".html" {
		http.ServeFileFS(w, r, s.fsys, name)
		return
	}

	raw, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		s.logger.Error("failed to read page", "path", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	page, err := dom.Parse(bytes.NewReader(raw), s.cfg.Selectors)
	if err != nil {
		s.logger.Error("failed to parse page", "path", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	e := enhancer.New(page, enhancer.Options{
		Config:   s.cfg,
		Store:    prefs.NewCookieStore(w, r),
		Logger:   s.logger,
		Location: browser.NewWindow(r.URL.Path),
	})
	if err := e.Init(); err != nil {
		s.logger.Error("failed to enhance page", "path", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if q := r.URL.Query().Get("q"); q != "" {
		e.HighlightSearchTerm(q)
	}

	var buf bytes.Buffer
	if err := e.Render(&buf); err != nil {
		s.logger.Error("failed to render page", "path", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
