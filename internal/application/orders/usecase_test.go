package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
	"github.com/tu-usuario/resto-pos/internal/application/orders"
	"github.com/tu-usuario/resto-pos/internal/domain"
	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
	"github.com/tu-usuario/resto-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const testRestaurantID = "00000000-0000-0000-0000-0000000000aa"

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, restaurantID, id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.RestaurantID != restaurantID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, restaurantID, id string) (bool, error) {
	o, ok := r.orders[id]
	if !ok || o.RestaurantID != restaurantID {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}

func (r *fakeOrderRepo) List(_ context.Context, restaurantID string, f repository.OrderFilter) ([]*entity.Order, int, error) {
	var list []*entity.Order
	for _, o := range r.orders {
		if o.RestaurantID != restaurantID {
			continue
		}
		if f.Status != "" && f.Status != "all" && string(o.Status) != f.Status {
			continue
		}
		if f.Table != nil && o.Table != *f.Table {
			continue
		}
		cp := *o
		list = append(list, &cp)
	}
	return list, len(list), nil
}

func (r *fakeOrderRepo) ListPendingByTable(_ context.Context, restaurantID string, table int) ([]*entity.Order, error) {
	var list []*entity.Order
	for _, o := range r.orders {
		if o.RestaurantID == restaurantID && o.Table == table && o.Status == entity.StatusPending {
			cp := *o
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeOrderRepo) CountByStatus(_ context.Context, restaurantID string, status entity.OrderStatus) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.RestaurantID == restaurantID && o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) ListCompletedBetween(_ context.Context, restaurantID string, from, to time.Time, _, _ int) ([]*entity.Order, int, error) {
	var list []*entity.Order
	for _, o := range r.orders {
		if o.RestaurantID == restaurantID && o.Status == entity.StatusCompleted &&
			!o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			cp := *o
			list = append(list, &cp)
		}
	}
	return list, len(list), nil
}

func (r *fakeOrderRepo) TopDishes(_ context.Context, _ string, _ int) ([]repository.TopDishResult, error) {
	return nil, nil
}

type fakeMenuRepo struct {
	available map[string]*entity.MenuItem
}

func newFakeMenuRepo(ids ...string) *fakeMenuRepo {
	m := &fakeMenuRepo{available: make(map[string]*entity.MenuItem)}
	for _, id := range ids {
		m.available[id] = &entity.MenuItem{ID: id, RestaurantID: testRestaurantID, Available: true}
	}
	return m
}

func (r *fakeMenuRepo) Create(_ context.Context, _ *entity.MenuItem) error { return nil }
func (r *fakeMenuRepo) GetByID(_ context.Context, _, id string) (*entity.MenuItem, error) {
	return r.available[id], nil
}
func (r *fakeMenuRepo) Update(_ context.Context, _ *entity.MenuItem) error { return nil }
func (r *fakeMenuRepo) SetAvailable(_ context.Context, _, _ string, _ bool) (bool, error) {
	return true, nil
}
func (r *fakeMenuRepo) List(_ context.Context, _ string, _ repository.MenuItemFilter) ([]*entity.MenuItem, int, error) {
	return nil, 0, nil
}
func (r *fakeMenuRepo) ListAvailableByIDs(_ context.Context, _ string, ids []string) ([]*entity.MenuItem, error) {
	var list []*entity.MenuItem
	for _, id := range ids {
		if m, ok := r.available[id]; ok {
			list = append(list, m)
		}
	}
	return list, nil
}
func (r *fakeMenuRepo) CountAvailable(_ context.Context, _ string) (int64, error) {
	return int64(len(r.available)), nil
}

// fakeRollup registra las invocaciones del motor de agregados.
type fakeRollup struct {
	applied  []string
	reversed []string
}

func (f *fakeRollup) Apply(_ context.Context, _ repository.MonthlySalesRepository, _ repository.SalesHistoryRepository, o *entity.Order) error {
	f.applied = append(f.applied, o.ID)
	return nil
}

func (f *fakeRollup) Reverse(_ context.Context, _ repository.MonthlySalesRepository, _ repository.SalesHistoryRepository, o *entity.Order) error {
	f.reversed = append(f.reversed, o.ID)
	return nil
}

// fakeTxRunner ejecuta el callback sin transacción real, contra los fakes.
type fakeTxRunner struct {
	orderRepo *fakeOrderRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	monthlyRepo repository.MonthlySalesRepository,
	historyRepo repository.SalesHistoryRepository,
) error) error {
	return fn(r.orderRepo, nil, nil)
}

func newTestUseCase(menuIDs ...string) (*orders.UseCase, *fakeOrderRepo, *fakeRollup) {
	orderRepo := newFakeOrderRepo()
	rollup := &fakeRollup{}
	uc := orders.NewUseCase(
		&fakeTxRunner{orderRepo: orderRepo},
		orderRepo,
		newFakeMenuRepo(menuIDs...),
		rollup,
		1000,
		logger.Nop(),
	)
	return uc, orderRepo, rollup
}

func placeRequest(table int) dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{
		Table: &table,
		Items: []dto.OrderItemRequest{
			{MenuItemID: "plato-1", Name: "Bandeja paisa", Price: decimal.NewFromInt(25000), Quantity: 2},
			{MenuItemID: "plato-2", Name: "Limonada", Price: decimal.NewFromInt(5000), Quantity: 1},
		},
		Total: decimal.NewFromInt(55000),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Place
// ──────────────────────────────────────────────────────────────────────────────

func TestPlace_CreaPedidoPendiente(t *testing.T) {
	uc, repo, rollup := newTestUseCase("plato-1", "plato-2")

	out, err := uc.Place(context.Background(), testRestaurantID, placeRequest(5))
	require.NoError(t, err)

	assert.Equal(t, "pending", out.Status, "el pedido debe nacer en pending")
	assert.Equal(t, 5, out.Table)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(55000)))
	assert.Len(t, repo.orders, 1)
	assert.Empty(t, rollup.applied, "crear un pedido no debe tocar los agregados")
}

func TestPlace_Mesa0ParaLlevar(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")

	out, err := uc.Place(context.Background(), testRestaurantID, placeRequest(0))
	require.NoError(t, err, "mesa 0 (para llevar) debe aceptarse")
	assert.Equal(t, 0, out.Table)
}

func TestPlace_MesaFueraDeRango(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")

	_, err := uc.Place(context.Background(), testRestaurantID, placeRequest(1001))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Place(context.Background(), testRestaurantID, placeRequest(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlace_TotalNoCuadra(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")

	in := placeRequest(3)
	in.Total = decimal.NewFromInt(60000) // las líneas suman 55000
	_, err := uc.Place(context.Background(), testRestaurantID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"el total declarado debe igualar la suma de las líneas")
}

func TestPlace_PlatoNoDisponible(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1") // plato-2 no existe

	_, err := uc.Place(context.Background(), testRestaurantID, placeRequest(3))
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"todas las líneas deben referenciar platos disponibles")
}

func TestPlace_SinLineas(t *testing.T) {
	uc, _, _ := newTestUseCase()

	table := 3
	_, err := uc.Place(context.Background(), testRestaurantID, dto.PlaceOrderRequest{
		Table: &table, Total: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetStatus — tabla de transiciones y efecto sobre agregados
// ──────────────────────────────────────────────────────────────────────────────

func placeOrder(t *testing.T, uc *orders.UseCase) string {
	t.Helper()
	out, err := uc.Place(context.Background(), testRestaurantID, placeRequest(7))
	require.NoError(t, err)
	return out.ID
}

func TestSetStatus_CompletarAplicaAgregados(t *testing.T) {
	uc, repo, rollup := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	out, err := uc.SetStatus(context.Background(), testRestaurantID, id, "completed")
	require.NoError(t, err)

	assert.Equal(t, "completed", out.Status)
	assert.Equal(t, []string{id}, rollup.applied, "completar debe aplicar la venta una vez")
	assert.Empty(t, rollup.reversed)
	assert.Equal(t, entity.StatusCompleted, repo.orders[id].Status)
}

func TestSetStatus_CancelarPendienteNoTocaAgregados(t *testing.T) {
	uc, _, rollup := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	out, err := uc.SetStatus(context.Background(), testRestaurantID, id, "cancelled")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", out.Status)
	assert.Empty(t, rollup.applied, "cancelar un pending nunca registró venta alguna")
	assert.Empty(t, rollup.reversed)
}

func TestSetStatus_AnularCompletadoRevierte(t *testing.T) {
	uc, _, rollup := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	_, err := uc.SetStatus(context.Background(), testRestaurantID, id, "completed")
	require.NoError(t, err)
	out, err := uc.SetStatus(context.Background(), testRestaurantID, id, "cancelled")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", out.Status)
	assert.Equal(t, []string{id}, rollup.applied)
	assert.Equal(t, []string{id}, rollup.reversed, "anular un completed debe revertir su aporte")
}

func TestSetStatus_RevivirCanceladoSeRechaza(t *testing.T) {
	uc, repo, rollup := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	_, err := uc.SetStatus(context.Background(), testRestaurantID, id, "cancelled")
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), testRestaurantID, id, "completed")
	assert.ErrorIs(t, err, domain.ErrInvalidState,
		"cancelled → completed debe rechazarse")
	assert.Equal(t, entity.StatusCancelled, repo.orders[id].Status,
		"el estado persistido no debe cambiar en una transición rechazada")
	assert.Empty(t, rollup.applied)
}

func TestSetStatus_TransicionIdentidadSeRechaza(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	_, err := uc.SetStatus(context.Background(), testRestaurantID, id, "pending")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSetStatus_EstadoDesconocido(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	_, err := uc.SetStatus(context.Background(), testRestaurantID, id, "delivered")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetStatus_PedidoInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")

	_, err := uc.SetStatus(context.Background(), testRestaurantID, "no-existe", "completed")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutación de líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestAddItems_SoloEnPending(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	_, err := uc.SetStatus(context.Background(), testRestaurantID, id, "completed")
	require.NoError(t, err)

	_, err = uc.AddItems(context.Background(), testRestaurantID, id, dto.AddItemsRequest{
		Items:           []dto.OrderItemRequest{{MenuItemID: "plato-1", Name: "Postre", Price: decimal.NewFromInt(8000), Quantity: 1}},
		AdditionalTotal: decimal.NewFromInt(8000),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState,
		"un pedido completado no admite líneas nuevas")
}

func TestAddItems_IncrementaTotal(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	out, err := uc.AddItems(context.Background(), testRestaurantID, id, dto.AddItemsRequest{
		Items:           []dto.OrderItemRequest{{MenuItemID: "plato-3", Name: "Postre", Price: decimal.NewFromInt(8000), Quantity: 1}},
		AdditionalTotal: decimal.NewFromInt(8000),
	})
	require.NoError(t, err)

	assert.Len(t, out.Items, 3)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(63000)), "total esperado 63000, fue %s", out.Total)
}

func TestDecrementItem_RestaUnaUnidad(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	// plato-1 tiene cantidad 2: debe quedar en 1 y el total bajar 25000.
	out, err := uc.DecrementItem(context.Background(), testRestaurantID, id, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Items[0].Quantity)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(30000)), "total esperado 30000, fue %s", out.Total)
	assert.Equal(t, "pending", out.Status)
}

func TestDecrementItem_PedidoVacioSeAutoCancela(t *testing.T) {
	uc, _, rollup := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	// Vaciar el pedido: 2 unidades de plato-1 y 1 de plato-2.
	_, err := uc.DecrementItem(context.Background(), testRestaurantID, id, 0)
	require.NoError(t, err)
	_, err = uc.DecrementItem(context.Background(), testRestaurantID, id, 0)
	require.NoError(t, err)
	out, err := uc.DecrementItem(context.Background(), testRestaurantID, id, 0)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", out.Status, "sin líneas el pedido se auto-cancela")
	assert.True(t, out.Total.Equal(decimal.Zero))
	assert.Empty(t, rollup.reversed, "un pending auto-cancelado no tiene agregados que revertir")
}

func TestDecrementItem_IndiceInvalido(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	_, err := uc.DecrementItem(context.Background(), testRestaurantID, id, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete y aislamiento entre tenants
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_PedidoInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")

	err := uc.Delete(context.Background(), testRestaurantID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_OtroRestauranteNoVeElPedido(t *testing.T) {
	uc, _, _ := newTestUseCase("plato-1", "plato-2")
	id := placeOrder(t, uc)

	_, err := uc.Get(context.Background(), "otro-restaurante", id)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"los pedidos están aislados por restaurante")
}
