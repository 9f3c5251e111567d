package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	custommw "gpark.dev/acs-admin/internal/admin/httpserver/middleware"
	"gpark.dev/acs-admin/internal/admin/httpserver/ui"
	"gpark.dev/acs-admin/internal/admin/observability"
	"gpark.dev/acs-admin/internal/admin/visitors"
	"gpark.dev/acs-admin/public"
)

// Config holds runtime options for the admin HTTP server.
type Config struct {
	Address          string
	BasePath         string
	Environment      string
	CSRFCookieName   string
	CSRFCookiePath   string
	CSRFCookieSecure bool
	CSRFHeaderName   string
	Logger           *zap.Logger
	VisitorsService  visitors.Service
	Now              func() time.Time
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) *http.Server {
	logger := observability.OrNop(cfg.Logger)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLogger(logger))
	router.Use(observability.RequestLogger())
	router.Use(observability.Recoverer())
	router.Use(chimw.Timeout(60 * time.Second))

	staticContent, err := public.StaticFS()
	if err != nil {
		logger.Fatal("embed static", zap.Error(err))
	}
	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))

	basePath := normalizeBasePath(cfg.BasePath)

	csrfCfg := custommw.CSRFConfig{
		CookieName: cfg.CSRFCookieName,
		CookiePath: firstNonEmpty(cfg.CSRFCookiePath, "/"),
		HeaderName: cfg.CSRFHeaderName,
		Secure:     cfg.CSRFCookieSecure,
	}

	handlers := ui.NewHandlers(ui.Dependencies{
		Visitors:       cfg.VisitorsService,
		CSRFHeaderName: cfg.CSRFHeaderName,
		Now:            cfg.Now,
	})

	mountAdminRoutes(router, basePath, routeOptions{
		CSRF:        csrfCfg,
		Environment: cfg.Environment,
		Handlers:    handlers,
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

type routeOptions struct {
	CSRF        custommw.CSRFConfig
	Environment string
	Handlers    *ui.Handlers
}

func mountAdminRoutes(router chi.Router, base string, opts routeOptions) {
	camerasPath := ui.CamerasPath(base)
	redirect := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, camerasPath, http.StatusFound)
	}
	if base != "/" {
		router.Get(base, redirect)
	}

	router.Route(base, func(r chi.Router) {
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())
		r.Use(custommw.RequestInfoMiddleware(base, opts.Environment))
		r.Use(custommw.CSRF(opts.CSRF))

		r.Get("/", redirect)
		r.Route("/visitors/camera", func(r chi.Router) {
			r.Get("/", opts.Handlers.CamerasPage)
			r.Post("/request_gate/{gateID}/", opts.Handlers.RequestGate)
		})
	})
}

func normalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/admin"
	}
	return custommw.NormaliseBase(p)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
