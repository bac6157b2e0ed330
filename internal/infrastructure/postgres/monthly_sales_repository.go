package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
)

var _ repository.MonthlySalesRepository = (*MonthlySalesRepo)(nil)

// MonthlySalesRepo implementación del acumulado mensual sobre PostgreSQL.
// Todos los incrementos son upserts atómicos en SQL: nada de
// read-modify-write en la aplicación.
type MonthlySalesRepo struct {
	q Querier
}

// NewMonthlySalesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMonthlySalesRepository(q Querier) *MonthlySalesRepo {
	return &MonthlySalesRepo{q: q}
}

// ApplySale suma {total, +1 pedido} al mes, creando la fila si no existe.
func (r *MonthlySalesRepo) ApplySale(ctx context.Context, restaurantID string, year, month int, total decimal.Decimal) error {
	query := `
		INSERT INTO monthly_sales (id, restaurant_id, year, month, total_sales, total_orders, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, 1, now(), now())
		ON CONFLICT (restaurant_id, year, month) DO UPDATE SET
			total_sales  = monthly_sales.total_sales + EXCLUDED.total_sales,
			total_orders = monthly_sales.total_orders + 1,
			updated_at   = now()`
	if _, err := r.q.Exec(ctx, query, restaurantID, year, month, total); err != nil {
		return fmt.Errorf("apply monthly sale: %w", err)
	}
	return nil
}

// ReverseSale resta {total, 1 pedido}. Si la fila del mes ya no existe
// (cerrada por el barrido) es un no-op.
func (r *MonthlySalesRepo) ReverseSale(ctx context.Context, restaurantID string, year, month int, total decimal.Decimal) error {
	query := `
		UPDATE monthly_sales SET
			total_sales  = total_sales - $4,
			total_orders = total_orders - 1,
			updated_at   = now()
		WHERE restaurant_id = $1 AND year = $2 AND month = $3`
	if _, err := r.q.Exec(ctx, query, restaurantID, year, month, total); err != nil {
		return fmt.Errorf("reverse monthly sale: %w", err)
	}
	return nil
}

// GetMonth devuelve (nil, nil) si el mes no tiene fila todavía.
func (r *MonthlySalesRepo) GetMonth(ctx context.Context, restaurantID string, year, month int) (*entity.MonthlySales, error) {
	query := `
		SELECT id, restaurant_id, year, month, total_sales, total_orders, created_at, updated_at
		FROM monthly_sales WHERE restaurant_id = $1 AND year = $2 AND month = $3`
	var m entity.MonthlySales
	err := r.q.QueryRow(ctx, query, restaurantID, year, month).Scan(
		&m.ID, &m.RestaurantID, &m.Year, &m.Month, &m.TotalSales, &m.TotalOrders, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get monthly sales: %w", err)
	}
	return &m, nil
}

// ListBefore filas del restaurante anteriores al (año, mes) dado.
func (r *MonthlySalesRepo) ListBefore(ctx context.Context, restaurantID string, year, month int) ([]*entity.MonthlySales, error) {
	query := `
		SELECT id, restaurant_id, year, month, total_sales, total_orders, created_at, updated_at
		FROM monthly_sales
		WHERE restaurant_id = $1 AND (year < $2 OR (year = $2 AND month < $3))
		ORDER BY year, month`
	return r.scanList(ctx, query, restaurantID, year, month)
}

// ListBeforeAll filas de todos los tenants anteriores al (año, mes) dado.
func (r *MonthlySalesRepo) ListBeforeAll(ctx context.Context, year, month int) ([]*entity.MonthlySales, error) {
	query := `
		SELECT id, restaurant_id, year, month, total_sales, total_orders, created_at, updated_at
		FROM monthly_sales
		WHERE year < $1 OR (year = $1 AND month < $2)
		ORDER BY restaurant_id, year, month`
	return r.scanList(ctx, query, year, month)
}

// SumOrders Σ total_orders de las filas vigentes del restaurante.
func (r *MonthlySalesRepo) SumOrders(ctx context.Context, restaurantID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT coalesce(sum(total_orders), 0) FROM monthly_sales WHERE restaurant_id = $1`,
		restaurantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sum monthly orders: %w", err)
	}
	return n, nil
}

// Delete elimina la fila por ID (último paso del cierre de mes).
func (r *MonthlySalesRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM monthly_sales WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete monthly sales: %w", err)
	}
	return nil
}

func (r *MonthlySalesRepo) scanList(ctx context.Context, query string, args ...any) ([]*entity.MonthlySales, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list monthly sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.MonthlySales
	for rows.Next() {
		var m entity.MonthlySales
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Year, &m.Month, &m.TotalSales, &m.TotalOrders, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan monthly sales: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
