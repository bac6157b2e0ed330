package http_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	httpiface "github.com/tu-usuario/resto-pos/internal/interfaces/http"
)

// fakeRestaurantRepo devuelve siempre el mismo restaurante (o error).
type fakeRestaurantRepo struct {
	restaurant *entity.Restaurant
	err        error
}

func (r *fakeRestaurantRepo) Create(_ context.Context, _ *entity.Restaurant) error { return nil }
func (r *fakeRestaurantRepo) GetByID(_ context.Context, _ string) (*entity.Restaurant, error) {
	return r.restaurant, r.err
}
func (r *fakeRestaurantRepo) List(_ context.Context) ([]*entity.Restaurant, error) {
	return nil, nil
}
func (r *fakeRestaurantRepo) UpdateLicense(_ context.Context, _ *entity.Restaurant) error {
	return nil
}

func buildLicenseApp(repo *fakeRestaurantRepo) *fiber.App {
	app := fiber.New()
	app.Get("/pos", httpiface.AuthMiddleware(testSecret), httpiface.LicenseMiddleware(repo), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func futureDate() *time.Time {
	d := time.Now().Add(30 * 24 * time.Hour)
	return &d
}

func pastDate() *time.Time {
	d := time.Now().Add(-24 * time.Hour)
	return &d
}

func TestLicenseMiddleware_LifetimeActivoPasa(t *testing.T) {
	repo := &fakeRestaurantRepo{restaurant: &entity.Restaurant{
		ID: testRestaurantID, LicenseType: entity.LicenseLifetime, IsActive: true,
	}}
	app := buildLicenseApp(repo)

	resp, _ := doRequest(t, app, "/pos", tokenForRole(t, httpiface.RoleStaff))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLicenseMiddleware_SuscripcionVigentePasa(t *testing.T) {
	repo := &fakeRestaurantRepo{restaurant: &entity.Restaurant{
		ID:                 testRestaurantID,
		LicenseType:        entity.LicenseSubscription,
		Plan:               entity.PlanMonthly,
		SubscriptionEndsAt: futureDate(),
		IsActive:           true,
	}}
	app := buildLicenseApp(repo)

	resp, _ := doRequest(t, app, "/pos", tokenForRole(t, httpiface.RoleStaff))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLicenseMiddleware_RestauranteInexistente(t *testing.T) {
	repo := &fakeRestaurantRepo{restaurant: nil}
	app := buildLicenseApp(repo)

	resp, body := doRequest(t, app, "/pos", tokenForRole(t, httpiface.RoleStaff))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "RESTAURANT_NOT_FOUND")
}

func TestLicenseMiddleware_RestauranteDesactivado(t *testing.T) {
	repo := &fakeRestaurantRepo{restaurant: &entity.Restaurant{
		ID: testRestaurantID, LicenseType: entity.LicenseLifetime, IsActive: false,
	}}
	app := buildLicenseApp(repo)

	resp, body := doRequest(t, app, "/pos", tokenForRole(t, httpiface.RoleStaff))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "RESTAURANT_DEACTIVATED",
		"la desactivación bloquea incluso a licencias lifetime")
}

func TestLicenseMiddleware_SinSuscripcion(t *testing.T) {
	repo := &fakeRestaurantRepo{restaurant: &entity.Restaurant{
		ID:          testRestaurantID,
		LicenseType: entity.LicenseSubscription,
		Plan:        entity.PlanMonthly,
		IsActive:    true,
	}}
	app := buildLicenseApp(repo)

	resp, body := doRequest(t, app, "/pos", tokenForRole(t, httpiface.RoleStaff))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "NO_SUBSCRIPTION")
}

func TestLicenseMiddleware_SuscripcionVencida(t *testing.T) {
	repo := &fakeRestaurantRepo{restaurant: &entity.Restaurant{
		ID:                 testRestaurantID,
		LicenseType:        entity.LicenseSubscription,
		Plan:               entity.PlanMonthly,
		SubscriptionEndsAt: pastDate(),
		IsActive:           true,
	}}
	app := buildLicenseApp(repo)

	resp, body := doRequest(t, app, "/pos", tokenForRole(t, httpiface.RoleStaff))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "SUBSCRIPTION_EXPIRED")
}

func TestLicenseMiddleware_ErrorDeRepositorio(t *testing.T) {
	repo := &fakeRestaurantRepo{err: errors.New("conexión perdida")}
	app := buildLicenseApp(repo)

	resp, body := doRequest(t, app, "/pos", tokenForRole(t, httpiface.RoleStaff))

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "INTERNAL")
}
