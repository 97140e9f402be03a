package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/google/uuid"

	"github.com/umputun/pixelsocial/pkg/config"
	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/feed"
	"github.com/umputun/pixelsocial/pkg/metrics"
	"github.com/umputun/pixelsocial/pkg/session"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/content.go -pkg mocks -skip-ensure -fmt goimports . Content
//go:generate moq -out mocks/ticker.go -pkg mocks -skip-ensure -fmt goimports . TickerStore

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const viewerCookie = "pixelsocial_viewer"

type ctxKey string

const viewerKey ctxKey = "viewer"

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	sessions Sessions
	content  Content
	ticker   TickerStore
	preview  feed.Source
	metrics  *metrics.Metrics
	version  string
	debug    bool

	templates     *template.Template
	pageTemplates map[string]*template.Template

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Deps holds server dependencies
type Deps struct {
	Sessions Sessions
	Content  Content
	Ticker   TickerStore
	Preview  feed.Source // serves the json page preview
	Metrics  *metrics.Metrics
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetFullConfig() *config.Config
}

// Sessions gives access to viewer sessions
type Sessions interface {
	Get(ctx context.Context, viewer string) *session.Session
	Len() int
}

// Content provides explore, profile and comment data
type Content interface {
	Explore(query string) []domain.Tile
	TrendingTags() []string
	Profile(handle string) domain.Profile
	ProfileTiles(handle, tab string) []domain.Tile
	Comments(p domain.Post) []domain.Comment
}

// TickerStore is the process-wide ticker, viewers see their own copies through sessions
type TickerStore interface {
	Len() int
}

// New initializes a new server instance
func New(cfg ConfigProvider, deps Deps, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		sessions: deps.Sessions,
		content:  deps.Content,
		ticker:   deps.Ticker,
		preview:  deps.Preview,
		metrics:  deps.Metrics,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	var err error
	if s.templates, s.pageTemplates, err = loadTemplates(); err != nil {
		lgr.Printf("[ERROR] failed to load templates: %v", err)
		s.templates, s.pageTemplates = template.New("empty"), map[string]*template.Template{}
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("pixelsocial", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(s.bodyLimit()))
}

// bodyLimit allows a full album upload plus form overhead
func (s *Server) bodyLimit() int64 {
	cc := s.config.GetFullConfig().Create
	return cc.MaxImageSize*int64(cc.MaxImages) + 1024*1024
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		lgr.Printf("[ERROR] failed to open static files: %v", err)
	} else {
		s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))
	}

	// API routes
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /feed", s.feedPreviewHandler)
	})
	s.router.Handle("GET /metrics", s.metrics.Handler())

	// pages and fragments, every viewer gets a session cookie
	web := s.router.Group()
	web.Use(s.viewerMiddleware)

	web.HandleFunc("GET /auth", s.authPageHandler)
	web.HandleFunc("POST /auth/login", s.loginHandler)
	web.HandleFunc("POST /auth/register", s.registerHandler)
	web.HandleFunc("POST /theme", s.themeHandler)
	web.HandleFunc("GET /ticker", s.tickerHandler)
	web.HandleFunc("DELETE /ticker/{id}", s.tickerRemoveHandler)

	web.Group().Route(func(r *routegroup.Bundle) {
		r.Use(s.authGuard)

		r.HandleFunc("GET /{$}", s.feedPageHandler)
		r.HandleFunc("GET /feed/init", s.feedInitHandler)
		r.HandleFunc("GET /feed/more", s.feedMoreHandler)

		r.HandleFunc("POST /post/{id}/like", s.likeHandler)
		r.HandleFunc("POST /post/{id}/react/{reaction}", s.reactHandler)
		r.HandleFunc("GET /post/{id}", s.postExpandHandler)
		r.HandleFunc("DELETE /post/{id}/expanded", s.postCollapseHandler)

		r.HandleFunc("GET /explore", s.exploreHandler)
		r.HandleFunc("GET /profile", s.profileHandler)
		r.HandleFunc("GET /profile/{handle}", s.profileHandler)
		r.HandleFunc("POST /profile/{handle}/follow", s.followHandler)

		r.HandleFunc("GET /notifications", s.notificationsHandler)
		r.HandleFunc("POST /notifications/read", s.markAllReadHandler)
		r.HandleFunc("POST /notifications/{id}/read", s.markReadHandler)

		r.HandleFunc("GET /create", s.createPageHandler)
		r.HandleFunc("GET /create/{kind}", s.createPageHandler)
		r.HandleFunc("POST /create/{kind}", s.createSubmitHandler)
	})
}

// viewerMiddleware makes sure every request carries a viewer id cookie
func (s *Server) viewerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer := ""
		if c, err := r.Cookie(viewerCookie); err == nil {
			if _, perr := uuid.Parse(c.Value); perr == nil {
				viewer = c.Value
			}
		}
		if viewer == "" {
			viewer = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     viewerCookie,
				Value:    viewer,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   365 * 24 * 3600,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), viewerKey, viewer)))
	})
}

// authGuard sends guests to the auth page
func (s *Server) authGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.GetFullConfig().Auth.Guest {
			redirect(w, r, "/auth")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// session returns the session of the request's viewer
func (s *Server) session(r *http.Request) *session.Session {
	viewer, _ := r.Context().Value(viewerKey).(string)
	return s.sessions.Get(r.Context(), viewer)
}

// isHTMX reports whether request came from htmx and expects a fragment
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirect sends htmx clients a HX-Redirect header and others a regular redirect
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
