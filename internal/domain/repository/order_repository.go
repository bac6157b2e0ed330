package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
)

// OrderFilter filtros del listado de pedidos.
type OrderFilter struct {
	Status string // "", "all" o un estado concreto
	Table  *int
	Limit  int
	Offset int
}

// TopDishResult plato con sus unidades vendidas (solo pedidos completados).
type TopDishResult struct {
	Name  string `json:"name"`
	Sales int64  `json:"sales"`
}

// OrderRepository define el puerto de persistencia para pedidos.
// GetByID devuelve (nil, nil) cuando el pedido no existe.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, restaurantID, id string) (*entity.Order, error)
	// Update persiste items, total, status y updated_at.
	Update(ctx context.Context, order *entity.Order) error
	// Delete elimina el pedido. La historia de ventas no se toca nunca
	// desde aquí. Devuelve false si el pedido no existía.
	Delete(ctx context.Context, restaurantID, id string) (bool, error)
	List(ctx context.Context, restaurantID string, f OrderFilter) ([]*entity.Order, int, error)
	// ListPendingByTable pedidos activos de una mesa, más recientes primero.
	ListPendingByTable(ctx context.Context, restaurantID string, table int) ([]*entity.Order, error)
	CountByStatus(ctx context.Context, restaurantID string, status entity.OrderStatus) (int64, error)
	// ListCompletedBetween pedidos completados creados en [from, to), para
	// el drill-down de un período.
	ListCompletedBetween(ctx context.Context, restaurantID string, from, to time.Time, limit, offset int) ([]*entity.Order, int, error)
	// TopDishes platos más vendidos por cantidad, desde los snapshots de
	// líneas de los pedidos completados.
	TopDishes(ctx context.Context, restaurantID string, limit int) ([]TopDishResult, error)
}
