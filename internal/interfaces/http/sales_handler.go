package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
	"github.com/tu-usuario/resto-pos/internal/application/sales"
)

// SalesHandler reportes de ventas (protegido).
type SalesHandler struct {
	uc *sales.HistoryUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.HistoryUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// GetSales godoc
// @Summary      Serie de ventas por período
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        period      query  string  false  "daily | weekly | monthly"  default(daily)
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.SalesPointDTO
// @Router       /api/sales [get]
func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	var q dto.SalesQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.GetSales(c.Context(), GetRestaurantID(c), q)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// GetSalesHistory godoc
// @Summary      Historia detallada de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        group_by    query  string  false  "daily | weekly | monthly"  default(daily)
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.SalesHistoryEntryDTO
// @Router       /api/sales/history [get]
func (h *SalesHandler) GetSalesHistory(c *fiber.Ctx) error {
	var q dto.SalesQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.GetSalesHistory(c.Context(), GetRestaurantID(c), q)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// GetPeriodOrders godoc
// @Summary      Pedidos completados de un período (drill-down)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  true  "daily | weekly | monthly"
// @Param        date    query  string  true  "YYYY-MM-DD"
// @Success      200     {object}  dto.PeriodOrdersResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/sales/period-orders [get]
func (h *SalesHandler) GetPeriodOrders(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.GetPeriodOrders(c.Context(), GetRestaurantID(c), c.Query("period"), c.Query("date"), page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
