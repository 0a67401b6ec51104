package http

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"outreach/internal/cache"
	"outreach/internal/core"
	applog "outreach/internal/log"
	"outreach/internal/middleware/ratelimit"
	"outreach/internal/middleware/security"
	"outreach/internal/middleware/trace"
	"outreach/internal/tally"
	appweb "outreach/web"
)

const scriptsCacheKey = "scripts"

// Outreach is the application surface the handlers drive.
type Outreach interface {
	ListProspects(ctx context.Context) ([]core.Prospect, error)
	GetProspect(ctx context.Context, id int64) (core.Prospect, error)
	CreateProspect(ctx context.Context, p core.Prospect) (core.Prospect, error)
	UpdateProspect(ctx context.Context, p core.Prospect) error
	DeleteProspect(ctx context.Context, id int64) error
	CallSuit(ctx context.Context, id int64) (core.Prospect, core.Pitch, []core.Script, error)
	LogCall(ctx context.Context, l core.CallLog) (core.CallLog, error)
	Report(ctx context.Context) (tally.Summary, error)
	ProspectReport(ctx context.Context, id int64) (tally.Summary, error)
	ListScripts(ctx context.Context) ([]core.Script, error)
	CreateScript(ctx context.Context, sc core.Script) (core.Script, error)
	DeleteScript(ctx context.Context, id int64) error
}

type Options struct {
	Addr               string
	RateLimitPerMinute int
	Logger             *applog.Logger
	// Ready reports whether the record store is reachable. Nil means always.
	Ready func(context.Context) error
}

type Server struct {
	http.Server
	app       Outreach
	templates *template.Template
	logger    *applog.Logger
	ready     func(context.Context) error

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	scripts *cache.LRUCache[[]core.Script]
	caches  *cache.Manager

	started     time.Time
	callsLogged int64

	shutdownOnce sync.Once
}

// NewServer wires routes, middleware and templates into a ready http.Server.
func NewServer(app Outreach, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	rlConfig := ratelimit.DefaultConfig()
	if opts.RateLimitPerMinute > 0 {
		rlConfig.RequestsPerMinute = opts.RateLimitPerMinute
	}

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		app:      app,
		logger:   logger,
		ready:    opts.Ready,
		limiter:  ratelimit.NewLimiter(rlConfig),
		detector: security.NewDetector(),
		scripts:  cache.NewLRUCache[[]core.Script](4, 10*time.Minute),
		caches:   cache.NewManager(logger.Logger),
		started:  time.Now(),
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	s.caches.Register(s.scripts)
	s.caches.StartCleanup(10 * time.Minute)

	t, err := parseTemplates()
	if err != nil {
		logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	mux := http.NewServeMux()
	s.routes(mux)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	onLimit := func(w http.ResponseWriter, r *http.Request) {
		applog.FromContext(r.Context()).WithComponent(applog.ComponentRateLimit).WarnContext(r.Context(),
			"Rate limit exceeded", applog.FieldPath, r.URL.Path)
		ErrorResponse(http.StatusTooManyRequests, "Too many requests. Please try again in a minute.").Write(w)
	}

	var h http.Handler = mux
	h = s.limiter.Middleware(s.detector.ExtractClientIP, onLimit)(h)
	h = headers.Middleware(h)
	h = s.detector.Middleware(h)
	h = s.tracer.Middleware(h)
	s.Handler = h

	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)

	mux.HandleFunc("GET /prospects/new", s.handleNewProspect)
	mux.HandleFunc("POST /prospects", s.handleCreateProspect)
	mux.HandleFunc("GET /prospects/{id}/edit", s.handleEditProspect)
	mux.HandleFunc("POST /prospects/{id}", s.handleUpdateProspect)
	mux.HandleFunc("POST /prospects/{id}/delete", s.handleDeleteProspect)

	mux.HandleFunc("GET /prospects/{id}/call", s.handleCallSuit)
	mux.HandleFunc("POST /prospects/{id}/calls", s.handleLogCall)

	mux.HandleFunc("GET /scripts", s.handleScripts)
	mux.HandleFunc("POST /scripts", s.handleCreateScript)
	mux.HandleFunc("POST /scripts/{id}/delete", s.handleDeleteScript)

	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("GET /api/report", s.handleAPIReport)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)
}

// Shutdown stops the background sweepers and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// ListenAndServe runs until Shutdown. http.ErrServerClosed is not an error.
func (s *Server) ListenAndServe() error {
	if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) recordCallLogged() {
	atomic.AddInt64(&s.callsLogged, 1)
}
