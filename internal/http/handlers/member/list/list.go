// Package list реализует HTTP-обработчик получения списка участников с поиском.
package list

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Handler отдаёт всех участников или результаты поиска по параметру q.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение списка участников.
type Service interface {
	GetAll() []models.Member
	Search(query string) []models.Member
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список участников
// @Description Возвращает всех участников; при непустом q только совпадения по имени, email или телефону без учёта регистра.
// @Tags Members
// @Produce  json
// @Param q query string false "Строка поиска"
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query().Get("q")

	var members []models.Member
	if strings.TrimSpace(query) == "" {
		members = h.service.GetAll()
	} else {
		members = h.service.Search(query)
	}
	if members == nil {
		members = []models.Member{}
	}

	log.Info("list members", slog.String("query", query), slog.Int("count", len(members)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":   len(members),
		"members": members,
	}))
}
