package dto

import (
	"time"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
)

// RestaurantLicenseDTO restaurante con el estado calculado de su licencia.
type RestaurantLicenseDTO struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	LicenseType        string     `json:"license_type"`
	Plan               string     `json:"plan,omitempty"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
	IsActive           bool       `json:"is_active"`
	HasValidLicense    bool       `json:"has_valid_license"`
	// DaysRemaining "Lifetime" para licencias vitalicias, si no el número de días.
	DaysRemaining interface{} `json:"days_remaining"`
	CreatedAt     time.Time   `json:"created_at"`
}

// RestaurantListResponse respuesta de GET /api/admin/restaurants.
type RestaurantListResponse struct {
	Count       int                    `json:"count"`
	Restaurants []RestaurantLicenseDTO `json:"restaurants"`
}

// ConvertToLifetimeRequest cuerpo de POST /api/admin/convert-to-lifetime.
type ConvertToLifetimeRequest struct {
	RestaurantID string `json:"restaurant_id"`
}

// ExtendSubscriptionRequest cuerpo de POST /api/admin/extend-subscription.
type ExtendSubscriptionRequest struct {
	RestaurantID string `json:"restaurant_id"`
	Days         int    `json:"days"`
}

// SetActiveRequest cuerpo de POST /api/admin/set-active.
type SetActiveRequest struct {
	RestaurantID string `json:"restaurant_id"`
	IsActive     *bool  `json:"is_active"`
}

// NewRestaurantLicenseDTO calcula el estado de licencia a la fecha dada.
func NewRestaurantLicenseDTO(r *entity.Restaurant, now time.Time) RestaurantLicenseDTO {
	var remaining interface{}
	if r.LicenseType == entity.LicenseLifetime {
		remaining = "Lifetime"
	} else {
		remaining = r.DaysRemaining(now)
	}
	return RestaurantLicenseDTO{
		ID:                 r.ID,
		Name:               r.Name,
		LicenseType:        r.LicenseType,
		Plan:               r.Plan,
		SubscriptionEndsAt: r.SubscriptionEndsAt,
		IsActive:           r.IsActive,
		HasValidLicense:    r.HasValidLicense(now),
		DaysRemaining:      remaining,
		CreatedAt:          r.CreatedAt,
	}
}
