package handlers

import (
	"io/fs"
	"net/http"

	"cardsearch"
	"cardsearch/internal/config"
	localMiddleware "cardsearch/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// RouterOptions allows customization of router setup for tests
type RouterOptions struct {
	DisableRateLimiting  bool
	DisableRequestLogger bool
	CustomMiddleware     []func(http.Handler) http.Handler
	StaticFS             fs.FS // defaults to the embedded static directory
}

// SetupRouter creates the application router with all routes and middleware
func SetupRouter(h *Handler, cfg *config.ServerConfig, opts *RouterOptions) *chi.Mux {
	if opts == nil {
		opts = &RouterOptions{}
	}

	if opts.StaticFS == nil {
		static, err := fs.Sub(cardsearch.StaticFS, "static")
		if err != nil {
			logger.LogErr(serr.Wrap(err, "failed to get static subdirectory"), "router setup")
		}
		opts.StaticFS = static
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if !opts.DisableRequestLogger {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Datastar-Request"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(localMiddleware.RequestSizeLimiter(cfg.Server.MaxRequestSize))
	r.Use(localMiddleware.SecurityHeaders())

	if !opts.DisableRateLimiting {
		h.limiter = localMiddleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)
		r.Use(h.limiter.Middleware())
	}

	for _, mw := range opts.CustomMiddleware {
		r.Use(mw)
	}

	// The widget stream stays open, so only regular routes get a timeout
	r.Get("/sse/widget", ValidateSSERequest(h.StreamWidget))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

		r.Get("/", h.Home)
		r.Post("/search", h.Search)
		r.Get("/share.png", h.ShareQR)

		if opts.StaticFS != nil {
			r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(opts.StaticFS))))
		}

		r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
			if h.store == nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("Store not ready"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
	})

	return r
}
