package repository

import (
	"context"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
)

// MenuItemFilter filtros del listado de platos.
type MenuItemFilter struct {
	Search   string // búsqueda por nombre, case-insensitive
	Category string // "" o "all" = todas
	Limit    int
	Offset   int
}

// MenuItemRepository define el puerto de persistencia para el menú.
// GetByID devuelve (nil, nil) cuando el plato no existe.
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, restaurantID, id string) (*entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	// SetAvailable marca disponibilidad (el borrado del menú es lógico).
	SetAvailable(ctx context.Context, restaurantID, id string, available bool) (bool, error)
	// List solo platos disponibles, más recientes primero.
	List(ctx context.Context, restaurantID string, f MenuItemFilter) ([]*entity.MenuItem, int, error)
	// ListAvailableByIDs devuelve los platos disponibles del restaurante
	// entre los IDs dados (validación de pedidos).
	ListAvailableByIDs(ctx context.Context, restaurantID string, ids []string) ([]*entity.MenuItem, error)
	CountAvailable(ctx context.Context, restaurantID string) (int64, error)
}
