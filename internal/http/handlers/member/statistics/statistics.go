// Package statistics реализует HTTP-обработчик агрегированной статистики участников.
package statistics

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Handler отдаёт количество участников по категориям.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает расчёт статистики.
type Service interface {
	Statistics() models.Statistics
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика участников
// @Description total, active, inactive и количество по каждому тарифу.
// @Tags Members
// @Produce  json
// @Success 200 {object} response.Response
// @Router /members/statistics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.statistics"

	stats := h.service.Statistics()
	h.log.Debug("statistics computed",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("total", stats[models.StatTotal]),
	)

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"statistics": stats,
	}))
}
