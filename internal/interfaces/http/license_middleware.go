package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
)

// LicenseMiddleware verifica que el restaurante del token tenga una licencia
// vigente antes de dejar pasar la petición. Corre después de AuthMiddleware.
func LicenseMiddleware(restaurantRepo repository.RestaurantRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID := GetRestaurantID(c)
		if restaurantID == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_RESTAURANT", Message: "el token no tiene restaurante asociado"})
		}

		r, err := restaurantRepo.GetByID(c.Context(), restaurantID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo verificar la licencia"})
		}
		if r == nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "RESTAURANT_NOT_FOUND", Message: "restaurante no encontrado"})
		}
		if !r.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "RESTAURANT_DEACTIVATED", Message: "el restaurante está desactivado"})
		}
		if r.LicenseType == entity.LicenseSubscription {
			if r.SubscriptionEndsAt == nil {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_SUBSCRIPTION", Message: "el restaurante no tiene suscripción"})
			}
			if time.Now().After(*r.SubscriptionEndsAt) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SUBSCRIPTION_EXPIRED", Message: "la suscripción está vencida"})
			}
		}
		return c.Next()
	}
}
