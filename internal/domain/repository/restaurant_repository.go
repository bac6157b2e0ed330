package repository

import (
	"context"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
)

// RestaurantRepository define el puerto de persistencia para tenants.
// GetByID devuelve (nil, nil) cuando el restaurante no existe.
type RestaurantRepository interface {
	Create(ctx context.Context, r *entity.Restaurant) error
	GetByID(ctx context.Context, id string) (*entity.Restaurant, error)
	List(ctx context.Context) ([]*entity.Restaurant, error)
	// UpdateLicense persiste license_type, plan, subscription_ends_at,
	// is_active y updated_at.
	UpdateLicense(ctx context.Context, r *entity.Restaurant) error
}
