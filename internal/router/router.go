package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"authgate/internal/config"
	"authgate/internal/handler"
	"authgate/internal/middleware"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	throttleMiddleware *middleware.ThrottleMiddleware,
	authHandler *handler.AuthHandler,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.With(throttleMiddleware.Handler).Post("/login", authHandler.Login)
			auth.With(authMiddleware.RequireBearer).Get("/me", authHandler.Me)
			auth.With(authMiddleware.RequireCookie).Get("/session", authHandler.Session)
		})
	})

	return r
}
