package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"planner/internal/log"
	"planner/internal/middleware/ratelimit"
	"planner/internal/middleware/security"
	"planner/internal/middleware/trace"
	"planner/internal/services"
)

// Services are the application services behind the handlers.
type Services struct {
	Auth       *services.AuthService
	Users      *services.UserService
	Accounts   *services.AccountService
	Categories *services.CategoryService
	Ledger     *services.LedgerService
	Summary    *services.SummaryService
}

type Options struct {
	Addr               string
	CookieName         string
	SecureCookie       bool
	AllowedOrigins     []string
	RateLimitPerMinute int
	Logger             *log.Logger
	// Ready reports whether dependencies can serve traffic; nil means always ready.
	Ready func(context.Context) error
}

type Server struct {
	http.Server
	svc      Services
	opts     Options
	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware
	now      func() time.Time

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(opts Options, svc Services) *Server {
	if opts.CookieName == "" {
		opts.CookieName = "planner_session"
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}

	detector := security.NewDetector()
	s := &Server{
		svc:      svc,
		opts:     opts,
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector: detector,
		tracer:   trace.NewMiddleware(detector.ExtractClientIP),
		now:      time.Now,
	}
	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(log.Middleware(s.opts.Logger))
	r.Use(s.tracer.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(security.Headers(security.DefaultHeadersConfig()))
	r.Use(s.detector.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", trace.HeaderRequestID},
		ExposedHeaders:   []string{trace.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fail(w, http.StatusNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		fail(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	limited := s.limiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldClientIP, s.detector.ExtractClientIP(r),
			log.FieldPath, r.URL.Path)
		fail(w, http.StatusTooManyRequests, "Too many requests", nil)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Use(log.ComponentMiddleware(log.ComponentAuth))
		r.With(limited).Post("/", s.handleLogin)
		r.With(limited).Post("/login", s.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/logout", s.handleLogout)
			r.Get("/status", s.handleStatus)
		})
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(log.ComponentMiddleware(log.ComponentAuth))
		r.With(limited).Post("/", s.handleCreateUser)
		r.Get("/{id}", s.handleGetUser)
		r.With(s.requireSession).Delete("/{id}", s.handleDeleteUser)
	})

	r.Route("/bank-account", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleListAccounts)
		r.Post("/", s.handleCreateAccount)
		r.Get("/{id}", s.handleGetAccount)
		r.Put("/{id}", s.handleUpdateAccount)
		r.Delete("/{id}", s.handleDeleteAccount)
	})

	r.Route("/category", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleListCategories)
		r.Post("/", s.handleCreateCategory)
		r.Get("/{id}", s.handleGetCategory)
		r.Put("/{id}", s.handleUpdateCategory)
		r.Delete("/{id}", s.handleDeleteCategory)
	})

	r.Route("/transaction", func(r chi.Router) {
		r.Use(log.ComponentMiddleware(log.ComponentLedger))
		r.Use(s.requireSession)
		r.Get("/", s.handleListTransactions)
		r.Get("/summary", s.handleSummary)
		r.Post("/", s.handleCreateTransaction)
		r.Get("/{id}", s.handleGetTransaction)
		r.Put("/{id}", s.handleUpdateTransaction)
		r.Delete("/{id}", s.handleDeleteTransaction)
	})

	return r
}

// Shutdown stops background helpers and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

type healthStatus struct {
	Status             string          `json:"status"`
	Requests           trace.Metrics   `json:"requests"`
	RateLimit          rateLimitStatus `json:"rateLimit"`
	SuspiciousRequests int64           `json:"suspiciousRequests"`
}

type rateLimitStatus struct {
	ActiveClients int   `json:"activeClients"`
	Rejected      int64 `json:"rejected"`
}

// handleHealth reports liveness together with the in-process request counters.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, healthStatus{
		Status:   "ok",
		Requests: s.tracer.GetMetrics(),
		RateLimit: rateLimitStatus{
			ActiveClients: s.limiter.ActiveClients(),
			Rejected:      s.limiter.Rejected(),
		},
		SuspiciousRequests: s.detector.SuspiciousRequests(),
	}, "")
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.opts.Ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.opts.Ready(ctx); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			fail(w, http.StatusServiceUnavailable, "Not ready", nil)
			return
		}
	}
	respond(w, http.StatusOK, map[string]string{"status": "ready"}, "")
}
