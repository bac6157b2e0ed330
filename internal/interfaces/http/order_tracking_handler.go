package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
	"github.com/tu-usuario/resto-pos/internal/application/orders"
)

// OrderTrackingHandler seguimiento de pedidos para el cliente en mesa (protegido).
type OrderTrackingHandler struct {
	uc *orders.UseCase
}

// NewOrderTrackingHandler construye el handler.
func NewOrderTrackingHandler(uc *orders.UseCase) *OrderTrackingHandler {
	return &OrderTrackingHandler{uc: uc}
}

// Track godoc
// @Summary      Seguimiento de un pedido
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderTrackingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/order-tracking/{id} [get]
func (h *OrderTrackingHandler) Track(c *fiber.Ctx) error {
	out, err := h.uc.Track(c.Context(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// TrackTable godoc
// @Summary      Pedidos activos de una mesa
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        table  path  int  true  "Número de mesa"
// @Success      200    {array}  dto.OrderResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/order-tracking/table/{table} [get]
func (h *OrderTrackingHandler) TrackTable(c *fiber.Ctx) error {
	table, err := c.ParamsInt("table")
	if err != nil || table < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mesa inválida"})
	}
	out, err := h.uc.TrackTable(c.Context(), GetRestaurantID(c), table)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
