package licensing

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
	"github.com/tu-usuario/resto-pos/internal/domain"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
	"github.com/tu-usuario/resto-pos/pkg/logger"
)

// UseCase operaciones administrativas sobre licencias de restaurantes.
// Solo accesible para el superadmin desde el panel interno.
type UseCase struct {
	restaurantRepo repository.RestaurantRepository
	log            *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(restaurantRepo repository.RestaurantRepository, log *logger.Logger) *UseCase {
	return &UseCase{restaurantRepo: restaurantRepo, log: log}
}

// ListRestaurants todos los tenants con su estado de licencia calculado.
func (uc *UseCase) ListRestaurants(ctx context.Context, now time.Time) (*dto.RestaurantListResponse, error) {
	list, err := uc.restaurantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar restaurantes: %w", err)
	}

	resp := &dto.RestaurantListResponse{
		Count:       len(list),
		Restaurants: make([]dto.RestaurantLicenseDTO, len(list)),
	}
	for i, r := range list {
		resp.Restaurants[i] = dto.NewRestaurantLicenseDTO(r, now)
	}
	return resp, nil
}

// ConvertToLifetime pasa un restaurante a licencia vitalicia.
func (uc *UseCase) ConvertToLifetime(ctx context.Context, restaurantID string, now time.Time) (*dto.RestaurantLicenseDTO, error) {
	r, err := uc.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("buscar restaurante: %w", err)
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}

	r.ConvertToLifetime()
	r.UpdatedAt = now

	if err := uc.restaurantRepo.UpdateLicense(ctx, r); err != nil {
		return nil, fmt.Errorf("actualizar licencia: %w", err)
	}

	uc.log.Info().Str("restaurant_id", r.ID).Msg("restaurante convertido a licencia vitalicia")
	out := dto.NewRestaurantLicenseDTO(r, now)
	return &out, nil
}

// ExtendSubscription agrega días de suscripción a partir del máximo entre
// hoy y el vencimiento vigente.
func (uc *UseCase) ExtendSubscription(ctx context.Context, restaurantID string, days int, now time.Time) (*dto.RestaurantLicenseDTO, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidInput
	}

	r, err := uc.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("buscar restaurante: %w", err)
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}

	r.ExtendSubscription(now, days)
	r.UpdatedAt = now

	if err := uc.restaurantRepo.UpdateLicense(ctx, r); err != nil {
		return nil, fmt.Errorf("actualizar licencia: %w", err)
	}

	uc.log.Info().Str("restaurant_id", r.ID).Int("days", days).
		Time("ends_at", *r.SubscriptionEndsAt).Msg("suscripción extendida")
	out := dto.NewRestaurantLicenseDTO(r, now)
	return &out, nil
}

// SetActive activa o desactiva un restaurante sin tocar su licencia.
func (uc *UseCase) SetActive(ctx context.Context, restaurantID string, active bool, now time.Time) (*dto.RestaurantLicenseDTO, error) {
	r, err := uc.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("buscar restaurante: %w", err)
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}

	r.IsActive = active
	r.UpdatedAt = now

	if err := uc.restaurantRepo.UpdateLicense(ctx, r); err != nil {
		return nil, fmt.Errorf("actualizar restaurante: %w", err)
	}

	uc.log.Info().Str("restaurant_id", r.ID).Bool("is_active", active).Msg("estado del restaurante actualizado")
	out := dto.NewRestaurantLicenseDTO(r, now)
	return &out, nil
}
