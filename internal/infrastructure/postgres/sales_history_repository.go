package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
)

var _ repository.SalesHistoryRepository = (*SalesHistoryRepo)(nil)

// SalesHistoryRepo implementación del libro mayor de ventas sobre
// PostgreSQL. Los snapshots de pedidos viven en una columna JSONB y cada
// operación ajusta acumulados y detalle en una sola sentencia: un lector
// nunca ve el ingreso sin su snapshot ni al revés.
type SalesHistoryRepo struct {
	q Querier
}

// NewSalesHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesHistoryRepository(q Querier) *SalesHistoryRepo {
	return &SalesHistoryRepo{q: q}
}

// ApplySale upsert de (restaurante, fecha, período): suma {+1, +total} y
// anexa el snapshot al final de la lista.
func (r *SalesHistoryRepo) ApplySale(ctx context.Context, restaurantID string, date time.Time, period entity.Period, snap entity.OrderSnapshot) error {
	query := `
		INSERT INTO sales_history (id, restaurant_id, date, period, orders, revenue, order_details, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, 1, $4, jsonb_build_array($5::jsonb), now(), now())
		ON CONFLICT (restaurant_id, date, period) DO UPDATE SET
			orders        = sales_history.orders + 1,
			revenue       = sales_history.revenue + EXCLUDED.revenue,
			order_details = sales_history.order_details || EXCLUDED.order_details,
			updated_at    = now()`
	if _, err := r.q.Exec(ctx, query, restaurantID, date, period, snap.Total, snap); err != nil {
		return fmt.Errorf("apply sale to history: %w", err)
	}
	return nil
}

// ReverseSale resta {1, total} y retira el snapshot del pedido, todo en una
// sentencia. found=false cuando la fila no existe o no contenía el
// snapshot; el decremento numérico se aplica igual si la fila está.
func (r *SalesHistoryRepo) ReverseSale(ctx context.Context, restaurantID string, date time.Time, period entity.Period, orderID string, total decimal.Decimal) (bool, error) {
	query := `
		WITH target AS (
			SELECT id,
			       order_details @> jsonb_build_array(jsonb_build_object('order_id', $4::text)) AS has_snap
			FROM sales_history
			WHERE restaurant_id = $1 AND date = $2 AND period = $3
		)
		UPDATE sales_history sh SET
			orders        = sh.orders - 1,
			revenue       = sh.revenue - $5,
			order_details = coalesce((
				SELECT jsonb_agg(elem)
				FROM jsonb_array_elements(sh.order_details) AS elem
				WHERE elem->>'order_id' <> $4
			), '[]'::jsonb),
			updated_at    = now()
		FROM target
		WHERE sh.id = target.id
		RETURNING target.has_snap`
	var hasSnap bool
	err := r.q.QueryRow(ctx, query, restaurantID, date, period, orderID, total).Scan(&hasSnap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// La fila del período no existe: nada que revertir.
			return false, nil
		}
		return false, fmt.Errorf("reverse sale in history: %w", err)
	}
	return hasSnap, nil
}

// FinalizeMonth upsert del registro monthly con semántica de reemplazo:
// orders y revenue se sobrescriben con los totales consolidados del mes; la
// lista de snapshots acumulada durante el mes no se toca.
func (r *SalesHistoryRepo) FinalizeMonth(ctx context.Context, restaurantID string, monthDate time.Time, orders int64, revenue decimal.Decimal) error {
	query := `
		INSERT INTO sales_history (id, restaurant_id, date, period, orders, revenue, order_details, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, 'monthly', $3, $4, '[]'::jsonb, now(), now())
		ON CONFLICT (restaurant_id, date, period) DO UPDATE SET
			orders     = EXCLUDED.orders,
			revenue    = EXCLUDED.revenue,
			updated_at = now()`
	if _, err := r.q.Exec(ctx, query, restaurantID, monthDate, orders, revenue); err != nil {
		return fmt.Errorf("finalize month in history: %w", err)
	}
	return nil
}

// GetByDate devuelve (nil, nil) si no hay registro para esa clave.
func (r *SalesHistoryRepo) GetByDate(ctx context.Context, restaurantID string, date time.Time, period entity.Period) (*entity.SalesHistory, error) {
	query := `
		SELECT id, restaurant_id, date, period, orders, revenue, order_details, created_at, updated_at
		FROM sales_history
		WHERE restaurant_id = $1 AND date = $2 AND period = $3`
	var h entity.SalesHistory
	err := r.q.QueryRow(ctx, query, restaurantID, date, period).Scan(
		&h.ID, &h.RestaurantID, &h.Date, &h.Period, &h.Orders, &h.Revenue, &h.OrderDetails, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales history: %w", err)
	}
	return &h, nil
}

// ListByPeriod registros de un período dentro del rango, fecha descendente.
// withDetails=false evita traer las listas JSONB completas.
func (r *SalesHistoryRepo) ListByPeriod(ctx context.Context, restaurantID string, period entity.Period, rng repository.HistoryRange, withDetails bool) ([]*entity.SalesHistory, error) {
	details := `'[]'::jsonb`
	if withDetails {
		details = `order_details`
	}

	where := `WHERE restaurant_id = $1 AND period = $2`
	args := []any{restaurantID, period}
	if rng.From != nil {
		args = append(args, *rng.From)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if rng.To != nil {
		args = append(args, *rng.To)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT id, restaurant_id, date, period, orders, revenue, %s, created_at, updated_at
		FROM sales_history %s ORDER BY date DESC`, details, where)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales history: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesHistory
	for rows.Next() {
		var h entity.SalesHistory
		if err := rows.Scan(&h.ID, &h.RestaurantID, &h.Date, &h.Period, &h.Orders, &h.Revenue, &h.OrderDetails, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sales history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// AggregateWeekly agrupa los registros daily del rango por semana
// (semanas que inician en domingo), más recientes primero.
func (r *SalesHistoryRepo) AggregateWeekly(ctx context.Context, restaurantID string, rng repository.HistoryRange) ([]repository.WeeklySalesResult, error) {
	where := `WHERE restaurant_id = $1 AND period = 'daily'`
	args := []any{restaurantID}
	if rng.From != nil {
		args = append(args, *rng.From)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if rng.To != nil {
		args = append(args, *rng.To)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT (date::date - extract(dow FROM date)::int) AS week_start,
		       sum(orders) AS orders,
		       sum(revenue) AS revenue
		FROM sales_history %s
		GROUP BY 1 ORDER BY 1 DESC`, where)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate weekly sales: %w", err)
	}
	defer rows.Close()
	var list []repository.WeeklySalesResult
	for rows.Next() {
		var w repository.WeeklySalesResult
		if err := rows.Scan(&w.WeekStart, &w.Orders, &w.Revenue); err != nil {
			return nil, fmt.Errorf("scan weekly sales: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}
