package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/resto-pos/internal/application/analytics"
)

// DashboardHandler métricas del panel (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats godoc
// @Summary      Métricas del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context(), GetRestaurantID(c), time.Now())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
