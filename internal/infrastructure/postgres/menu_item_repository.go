package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/resto-pos/internal/domain"
	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
)

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

// MenuItemRepo implementación del puerto MenuItemRepository sobre PostgreSQL.
type MenuItemRepo struct {
	q Querier
}

// NewMenuItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

// Create persiste un plato nuevo.
func (r *MenuItemRepo) Create(ctx context.Context, item *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, restaurant_id, name, price, category, image, description, available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.RestaurantID, item.Name, item.Price, item.Category,
		item.Image, item.Description, item.Available, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si el plato no existe.
func (r *MenuItemRepo) GetByID(ctx context.Context, restaurantID, id string) (*entity.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, name, price, category, image, description, available, created_at
		FROM menu_items WHERE restaurant_id = $1 AND id = $2`
	var m entity.MenuItem
	err := r.q.QueryRow(ctx, query, restaurantID, id).Scan(
		&m.ID, &m.RestaurantID, &m.Name, &m.Price, &m.Category,
		&m.Image, &m.Description, &m.Available, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &m, nil
}

// Update edita los campos del plato. No toca pedidos ya creados.
func (r *MenuItemRepo) Update(ctx context.Context, item *entity.MenuItem) error {
	query := `
		UPDATE menu_items SET name = $3, price = $4, category = $5, image = $6, description = $7
		WHERE restaurant_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		item.RestaurantID, item.ID, item.Name, item.Price, item.Category, item.Image, item.Description,
	)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

// SetAvailable marca la disponibilidad del plato (borrado lógico).
func (r *MenuItemRepo) SetAvailable(ctx context.Context, restaurantID, id string, available bool) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE menu_items SET available = $3 WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id, available,
	)
	if err != nil {
		return false, fmt.Errorf("set menu item availability: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List platos disponibles con búsqueda por nombre y filtro de categoría,
// más recientes primero.
func (r *MenuItemRepo) List(ctx context.Context, restaurantID string, f repository.MenuItemFilter) ([]*entity.MenuItem, int, error) {
	where := `WHERE restaurant_id = $1 AND available = true`
	args := []any{restaurantID}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if f.Category != "" && f.Category != "all" {
		args = append(args, f.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM menu_items `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count menu items: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT id, restaurant_id, name, price, category, image, description, available, created_at
		FROM menu_items %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()
	var list []*entity.MenuItem
	for rows.Next() {
		var m entity.MenuItem
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Price, &m.Category,
			&m.Image, &m.Description, &m.Available, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan menu item: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// ListAvailableByIDs platos disponibles del restaurante entre los IDs dados.
func (r *MenuItemRepo) ListAvailableByIDs(ctx context.Context, restaurantID string, ids []string) ([]*entity.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, restaurant_id, name, price, category, image, description, available, created_at
		FROM menu_items
		WHERE restaurant_id = $1 AND available = true AND id = ANY($2)`
	rows, err := r.q.Query(ctx, query, restaurantID, ids)
	if err != nil {
		return nil, fmt.Errorf("list menu items by ids: %w", err)
	}
	defer rows.Close()
	var list []*entity.MenuItem
	for rows.Next() {
		var m entity.MenuItem
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Price, &m.Category,
			&m.Image, &m.Description, &m.Available, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountAvailable platos disponibles del restaurante.
func (r *MenuItemRepo) CountAvailable(ctx context.Context, restaurantID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM menu_items WHERE restaurant_id = $1 AND available = true`,
		restaurantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count menu items: %w", err)
	}
	return n, nil
}
