// Package read реализует HTTP-обработчик получения участника по ID.
package read

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Handler обрабатывает запросы на получение участника по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения участника.
type Service interface {
	GetByID(id string) (models.Member, bool)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить участника
// @Tags Members
// @Produce  json
// @Param id path string true "ID участника"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Router /members/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	member, ok := h.service.GetByID(id)
	if !ok {
		log.Info("member not found", slog.String("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("member not found"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"member": member,
	}))
}
