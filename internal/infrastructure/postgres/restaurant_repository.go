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

var _ repository.RestaurantRepository = (*RestaurantRepo)(nil)

// RestaurantRepo implementación del puerto RestaurantRepository sobre PostgreSQL.
type RestaurantRepo struct {
	q Querier
}

// NewRestaurantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRestaurantRepository(q Querier) *RestaurantRepo {
	return &RestaurantRepo{q: q}
}

// Create persiste un tenant nuevo.
func (r *RestaurantRepo) Create(ctx context.Context, rest *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, license_type, plan, subscription_ends_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rest.ID, rest.Name, rest.LicenseType, rest.Plan,
		rest.SubscriptionEndsAt, rest.IsActive, rest.CreatedAt, rest.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si el restaurante no existe.
func (r *RestaurantRepo) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	query := `
		SELECT id, name, license_type, plan, subscription_ends_at, is_active, created_at, updated_at
		FROM restaurants WHERE id = $1`
	var rest entity.Restaurant
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rest.ID, &rest.Name, &rest.LicenseType, &rest.Plan,
		&rest.SubscriptionEndsAt, &rest.IsActive, &rest.CreatedAt, &rest.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return &rest, nil
}

// List todos los tenants, más recientes primero.
func (r *RestaurantRepo) List(ctx context.Context) ([]*entity.Restaurant, error) {
	query := `
		SELECT id, name, license_type, plan, subscription_ends_at, is_active, created_at, updated_at
		FROM restaurants ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Restaurant
	for rows.Next() {
		var rest entity.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.LicenseType, &rest.Plan,
			&rest.SubscriptionEndsAt, &rest.IsActive, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		list = append(list, &rest)
	}
	return list, rows.Err()
}

// UpdateLicense persiste license_type, plan, subscription_ends_at,
// is_active y updated_at.
func (r *RestaurantRepo) UpdateLicense(ctx context.Context, rest *entity.Restaurant) error {
	query := `
		UPDATE restaurants SET license_type = $2, plan = $3, subscription_ends_at = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		rest.ID, rest.LicenseType, rest.Plan, rest.SubscriptionEndsAt, rest.IsActive, rest.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update restaurant license: %w", err)
	}
	return nil
}
