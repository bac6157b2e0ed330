package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/resto-pos/internal/domain"
	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas del pedido viven en una columna JSONB:
// nombre y precio quedan congelados al momento de ordenar.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido nuevo.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, restaurant_id, table_number, items, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.RestaurantID, order.Table, order.Items,
		order.Total, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido del restaurante por ID.
func (r *OrderRepo) GetByID(ctx context.Context, restaurantID, id string) (*entity.Order, error) {
	query := `
		SELECT id, restaurant_id, table_number, items, total, status, created_at, updated_at
		FROM orders WHERE restaurant_id = $1 AND id = $2`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, restaurantID, id).Scan(
		&o.ID, &o.RestaurantID, &o.Table, &o.Items, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// Update persiste items, total, status y updated_at.
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders SET items = $3, total = $4, status = $5, updated_at = $6
		WHERE restaurant_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		order.RestaurantID, order.ID, order.Items, order.Total, order.Status, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// Delete elimina el pedido. Los agregados de ventas no se tocan desde aquí.
func (r *OrderRepo) Delete(ctx context.Context, restaurantID, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM orders WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id,
	)
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List pedidos filtrables por estado y mesa, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, restaurantID string, f repository.OrderFilter) ([]*entity.Order, int, error) {
	where := `WHERE restaurant_id = $1`
	args := []any{restaurantID}

	if f.Status != "" && f.Status != "all" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Table != nil {
		args = append(args, *f.Table)
		where += fmt.Sprintf(" AND table_number = $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM orders `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT id, restaurant_id, table_number, items, total, status, created_at, updated_at
		FROM orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	list, err := r.scanOrders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListPendingByTable pedidos activos de una mesa, más recientes primero.
func (r *OrderRepo) ListPendingByTable(ctx context.Context, restaurantID string, table int) ([]*entity.Order, error) {
	query := `
		SELECT id, restaurant_id, table_number, items, total, status, created_at, updated_at
		FROM orders
		WHERE restaurant_id = $1 AND table_number = $2 AND status = $3
		ORDER BY created_at DESC`
	return r.scanOrders(ctx, query, restaurantID, table, entity.StatusPending)
}

// CountByStatus conteo vivo de pedidos en un estado.
func (r *OrderRepo) CountByStatus(ctx context.Context, restaurantID string, status entity.OrderStatus) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM orders WHERE restaurant_id = $1 AND status = $2`,
		restaurantID, status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders by status: %w", err)
	}
	return n, nil
}

// ListCompletedBetween pedidos completados creados en [from, to), para el
// drill-down de un período.
func (r *OrderRepo) ListCompletedBetween(ctx context.Context, restaurantID string, from, to time.Time, limit, offset int) ([]*entity.Order, int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM orders
		 WHERE restaurant_id = $1 AND status = 'completed' AND created_at >= $2 AND created_at < $3`,
		restaurantID, from, to,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count completed orders: %w", err)
	}

	query := `
		SELECT id, restaurant_id, table_number, items, total, status, created_at, updated_at
		FROM orders
		WHERE restaurant_id = $1 AND status = 'completed' AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	list, err := r.scanOrders(ctx, query, restaurantID, from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *OrderRepo) scanOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.RestaurantID, &o.Table, &o.Items, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// TopDishes platos más vendidos por cantidad, desde las líneas JSONB de los
// pedidos completados.
func (r *OrderRepo) TopDishes(ctx context.Context, restaurantID string, limit int) ([]repository.TopDishResult, error) {
	query := `
		SELECT item->>'name' AS name, sum((item->>'quantity')::bigint) AS sales
		FROM orders o, jsonb_array_elements(o.items) AS item
		WHERE o.restaurant_id = $1 AND o.status = 'completed'
		GROUP BY 1
		ORDER BY sales DESC, name ASC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, restaurantID, limit)
	if err != nil {
		return nil, fmt.Errorf("top dishes: %w", err)
	}
	defer rows.Close()
	var list []repository.TopDishResult
	for rows.Next() {
		var d repository.TopDishResult
		if err := rows.Scan(&d.Name, &d.Sales); err != nil {
			return nil, fmt.Errorf("scan top dish: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
