package fondosapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fondosapp/fondos-api/internal/http/handlers/auth/login"
	"github.com/fondosapp/fondos-api/internal/http/handlers/auth/register"
	"github.com/fondosapp/fondos-api/internal/http/handlers/fund/cancel"
	"github.com/fondosapp/fondos-api/internal/http/handlers/fund/health"
	"github.com/fondosapp/fondos-api/internal/http/handlers/fund/history"
	"github.com/fondosapp/fondos-api/internal/http/handlers/fund/list"
	"github.com/fondosapp/fondos-api/internal/http/handlers/fund/subscribe"
	"github.com/fondosapp/fondos-api/internal/http/middlewarectx"
	"github.com/fondosapp/fondos-api/internal/lib/jwt"
	authservice "github.com/fondosapp/fondos-api/internal/services/auth"
	fundservice "github.com/fondosapp/fondos-api/internal/services/fund"
)

// RegisterRoutes registers every route of the funds API.
func RegisterRoutes(r chi.Router, logger *slog.Logger, fundService *fundservice.Service,
	authService *authservice.Service, tokenMaker jwt.Maker) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/fondos/suscribir", subscribe.New(logger, fundService).ServeHTTP)
			r.Post("/fondos/cancelar", cancel.New(logger, fundService).ServeHTTP)
			r.Post("/fondos/historial", history.New(logger, fundService).ServeHTTP)
			r.Get("/fondos", list.New(logger, fundService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
