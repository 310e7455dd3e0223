// Package status реализует HTTP-обработчик переключения активности участника.
package status

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Handler переключает признак активности и возвращает обновлённого участника.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает переключение статуса и чтение участника.
type Service interface {
	ToggleStatus(id string) bool
	GetByID(id string) (models.Member, bool)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Переключить активность участника
// @Tags Members
// @Produce  json
// @Param id path string true "ID участника"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Router /members/{id}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if !h.service.ToggleStatus(id) {
		log.Info("member not found", slog.String("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("member not found"))
		return
	}

	member, ok := h.service.GetByID(id)
	if !ok {
		// участник удалён между переключением и чтением
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("member not found"))
		return
	}

	log.Info("member status toggled", slog.String("id", id), slog.Bool("is_active", member.IsActive))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"member": member,
	}))
}
