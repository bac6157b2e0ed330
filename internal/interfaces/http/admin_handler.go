package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
	"github.com/tu-usuario/resto-pos/internal/application/licensing"
)

// AdminHandler operaciones de licenciamiento del superadmin (protegido + owner).
type AdminHandler struct {
	uc *licensing.UseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *licensing.UseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListRestaurants godoc
// @Summary      Listar restaurantes con su estado de licencia
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RestaurantListResponse
// @Router       /api/admin/restaurants [get]
func (h *AdminHandler) ListRestaurants(c *fiber.Ctx) error {
	out, err := h.uc.ListRestaurants(c.Context(), time.Now())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// ConvertToLifetime godoc
// @Summary      Convertir restaurante a licencia vitalicia
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConvertToLifetimeRequest  true  "Restaurante"
// @Success      200   {object}  dto.RestaurantLicenseDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/convert-to-lifetime [post]
func (h *AdminHandler) ConvertToLifetime(c *fiber.Ctx) error {
	var in dto.ConvertToLifetimeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RestaurantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "restaurant_id es requerido"})
	}
	out, err := h.uc.ConvertToLifetime(c.Context(), in.RestaurantID, time.Now())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// ExtendSubscription godoc
// @Summary      Extender la suscripción de un restaurante
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExtendSubscriptionRequest  true  "Restaurante y días"
// @Success      200   {object}  dto.RestaurantLicenseDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/extend-subscription [post]
func (h *AdminHandler) ExtendSubscription(c *fiber.Ctx) error {
	var in dto.ExtendSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RestaurantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "restaurant_id es requerido"})
	}
	out, err := h.uc.ExtendSubscription(c.Context(), in.RestaurantID, in.Days, time.Now())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Activar o desactivar un restaurante
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetActiveRequest  true  "Restaurante y estado"
// @Success      200   {object}  dto.RestaurantLicenseDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/set-active [post]
func (h *AdminHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RestaurantID == "" || in.IsActive == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "restaurant_id e is_active son requeridos"})
	}
	out, err := h.uc.SetActive(c.Context(), in.RestaurantID, *in.IsActive, time.Now())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
