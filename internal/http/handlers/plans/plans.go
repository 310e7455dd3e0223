// Package plans реализует HTTP-обработчик каталога тарифов.
package plans

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Handler отдаёт статический каталог тарифов.
type Handler struct {
	service Service
}

// Service описывает получение каталога тарифов.
type Service interface {
	Plans() []models.MembershipPlan
}

// New создает новый Handler.
func New(service Service) *Handler {
	return &Handler{service: service}
}

// ServeHTTP godoc
// @Summary Каталог тарифов
// @Tags Plans
// @Produce  json
// @Success 200 {object} response.Response
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	plans := h.service.Plans()
	views := make([]models.PlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, p.View())
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": views,
	}))
}
