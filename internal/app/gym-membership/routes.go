// Package gymmembership собирает HTTP-приложение реестра участников.
package gymmembership

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "github.com/magabrotheeeer/gym-membership/docs"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/health"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/list"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/read"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/register"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/remove"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/statistics"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/status"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/plans"
	"github.com/magabrotheeeer/gym-membership/internal/http/middlewarectx"
	memberservice "github.com/magabrotheeeer/gym-membership/internal/services/member"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, memberService *memberservice.MemberService, limiter *rate.Limiter, metricsHandler http.Handler) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.New().ServeHTTP)
		r.Get("/plans", plans.New(memberService).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))
			r.Post("/members", register.New(logger, memberService).ServeHTTP)
			r.Get("/members", list.New(logger, memberService).ServeHTTP)
			r.Get("/members/statistics", statistics.New(logger, memberService).ServeHTTP)
			r.Get("/members/{id}", read.New(logger, memberService).ServeHTTP)
			r.Patch("/members/{id}/status", status.New(logger, memberService).ServeHTTP)
			r.Delete("/members/{id}", remove.New(logger, memberService).ServeHTTP)
		})
	})

	r.Handle("/metrics", metricsHandler)
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
