package licensing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-pos/internal/application/licensing"
	"github.com/tu-usuario/resto-pos/internal/domain"
	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/pkg/logger"
)

type fakeRestaurantRepo struct {
	restaurants map[string]*entity.Restaurant
	updated     []*entity.Restaurant
}

func newFakeRepo(rs ...*entity.Restaurant) *fakeRestaurantRepo {
	repo := &fakeRestaurantRepo{restaurants: make(map[string]*entity.Restaurant)}
	for _, r := range rs {
		repo.restaurants[r.ID] = r
	}
	return repo
}

func (f *fakeRestaurantRepo) Create(_ context.Context, r *entity.Restaurant) error {
	f.restaurants[r.ID] = r
	return nil
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, id string) (*entity.Restaurant, error) {
	r, ok := f.restaurants[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRestaurantRepo) List(_ context.Context) ([]*entity.Restaurant, error) {
	var list []*entity.Restaurant
	for _, r := range f.restaurants {
		list = append(list, r)
	}
	return list, nil
}

func (f *fakeRestaurantRepo) UpdateLicense(_ context.Context, r *entity.Restaurant) error {
	cp := *r
	f.restaurants[r.ID] = &cp
	f.updated = append(f.updated, &cp)
	return nil
}

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func subscriptionRestaurant(id string, endsAt time.Time) *entity.Restaurant {
	return &entity.Restaurant{
		ID:                 id,
		Name:               "La Esquina",
		LicenseType:        entity.LicenseSubscription,
		Plan:               entity.PlanMonthly,
		SubscriptionEndsAt: &endsAt,
		IsActive:           true,
	}
}

func TestConvertToLifetime_LimpiaPlanYVencimiento(t *testing.T) {
	repo := newFakeRepo(subscriptionRestaurant("r1", now.AddDate(0, 0, 10)))
	uc := licensing.NewUseCase(repo, logger.Nop())

	out, err := uc.ConvertToLifetime(context.Background(), "r1", now)
	require.NoError(t, err)

	assert.Equal(t, entity.LicenseLifetime, out.LicenseType)
	assert.Equal(t, "Lifetime", out.DaysRemaining, "lifetime reporta el literal, no un número")

	saved := repo.restaurants["r1"]
	assert.Empty(t, saved.Plan)
	assert.Nil(t, saved.SubscriptionEndsAt)
}

func TestConvertToLifetime_NoExiste(t *testing.T) {
	uc := licensing.NewUseCase(newFakeRepo(), logger.Nop())

	_, err := uc.ConvertToLifetime(context.Background(), "fantasma", now)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtendSubscription_DesdeVencimientoVigente(t *testing.T) {
	endsAt := now.AddDate(0, 0, 10)
	repo := newFakeRepo(subscriptionRestaurant("r1", endsAt))
	uc := licensing.NewUseCase(repo, logger.Nop())

	_, err := uc.ExtendSubscription(context.Background(), "r1", 30, now)
	require.NoError(t, err)

	saved := repo.restaurants["r1"]
	require.NotNil(t, saved.SubscriptionEndsAt)
	assert.Equal(t, endsAt.AddDate(0, 0, 30), *saved.SubscriptionEndsAt,
		"con suscripción vigente se extiende desde el vencimiento, no desde hoy")
}

func TestExtendSubscription_DesdeHoySiYaVencio(t *testing.T) {
	repo := newFakeRepo(subscriptionRestaurant("r1", now.AddDate(0, 0, -5)))
	uc := licensing.NewUseCase(repo, logger.Nop())

	_, err := uc.ExtendSubscription(context.Background(), "r1", 30, now)
	require.NoError(t, err)

	saved := repo.restaurants["r1"]
	require.NotNil(t, saved.SubscriptionEndsAt)
	assert.Equal(t, now.AddDate(0, 0, 30), *saved.SubscriptionEndsAt,
		"vencida: los días corren desde hoy")
}

func TestExtendSubscription_DiasInvalidos(t *testing.T) {
	repo := newFakeRepo(subscriptionRestaurant("r1", now))
	uc := licensing.NewUseCase(repo, logger.Nop())

	_, err := uc.ExtendSubscription(context.Background(), "r1", 0, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ExtendSubscription(context.Background(), "r1", -10, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.updated, "nada debe persistirse con días inválidos")
}

func TestSetActive_Desactiva(t *testing.T) {
	repo := newFakeRepo(subscriptionRestaurant("r1", now.AddDate(0, 0, 10)))
	uc := licensing.NewUseCase(repo, logger.Nop())

	out, err := uc.SetActive(context.Background(), "r1", false, now)
	require.NoError(t, err)

	assert.False(t, out.IsActive)
	assert.False(t, repo.restaurants["r1"].IsActive)
	assert.Equal(t, entity.LicenseSubscription, repo.restaurants["r1"].LicenseType,
		"desactivar no toca la licencia")
}

func TestListRestaurants_CalculaDiasRestantes(t *testing.T) {
	repo := newFakeRepo(
		subscriptionRestaurant("r1", now.AddDate(0, 0, 10)),
		&entity.Restaurant{ID: "r2", Name: "Del Mar", LicenseType: entity.LicenseLifetime, IsActive: true},
	)
	uc := licensing.NewUseCase(repo, logger.Nop())

	out, err := uc.ListRestaurants(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Count)
	byID := make(map[string]interface{}, 2)
	for _, r := range out.Restaurants {
		byID[r.ID] = r.DaysRemaining
	}
	assert.Equal(t, 10, byID["r1"])
	assert.Equal(t, "Lifetime", byID["r2"])
}
