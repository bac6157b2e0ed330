package sales_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-pos/internal/application/sales"
	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
	"github.com/tu-usuario/resto-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los dos almacenes de agregados
// ──────────────────────────────────────────────────────────────────────────────

type monthKey struct {
	rid   string
	year  int
	month int
}

type fakeMonthlyRepo struct {
	rows map[monthKey]*entity.MonthlySales
}

func newFakeMonthlyRepo() *fakeMonthlyRepo {
	return &fakeMonthlyRepo{rows: make(map[monthKey]*entity.MonthlySales)}
}

func (r *fakeMonthlyRepo) ApplySale(_ context.Context, restaurantID string, year, month int, total decimal.Decimal) error {
	k := monthKey{restaurantID, year, month}
	row, ok := r.rows[k]
	if !ok {
		row = &entity.MonthlySales{
			ID:           fmt.Sprintf("%s/%d-%02d", restaurantID, year, month),
			RestaurantID: restaurantID,
			Year:         year,
			Month:        month,
			TotalSales:   decimal.Zero,
		}
		r.rows[k] = row
	}
	row.TotalSales = row.TotalSales.Add(total)
	row.TotalOrders++
	return nil
}

func (r *fakeMonthlyRepo) ReverseSale(_ context.Context, restaurantID string, year, month int, total decimal.Decimal) error {
	row, ok := r.rows[monthKey{restaurantID, year, month}]
	if !ok {
		return nil // no-op, igual que el UPDATE sin filas
	}
	row.TotalSales = row.TotalSales.Sub(total)
	row.TotalOrders--
	return nil
}

func (r *fakeMonthlyRepo) GetMonth(_ context.Context, restaurantID string, year, month int) (*entity.MonthlySales, error) {
	row, ok := r.rows[monthKey{restaurantID, year, month}]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (r *fakeMonthlyRepo) ListBefore(_ context.Context, restaurantID string, year, month int) ([]*entity.MonthlySales, error) {
	var list []*entity.MonthlySales
	for _, row := range r.rows {
		if row.RestaurantID == restaurantID && row.Before(year, month) {
			list = append(list, row)
		}
	}
	return list, nil
}

func (r *fakeMonthlyRepo) ListBeforeAll(_ context.Context, year, month int) ([]*entity.MonthlySales, error) {
	var list []*entity.MonthlySales
	for _, row := range r.rows {
		if row.Before(year, month) {
			list = append(list, row)
		}
	}
	return list, nil
}

func (r *fakeMonthlyRepo) SumOrders(_ context.Context, restaurantID string) (int64, error) {
	var n int64
	for _, row := range r.rows {
		if row.RestaurantID == restaurantID {
			n += row.TotalOrders
		}
	}
	return n, nil
}

func (r *fakeMonthlyRepo) Delete(_ context.Context, id string) error {
	for k, row := range r.rows {
		if row.ID == id {
			delete(r.rows, k)
			return nil
		}
	}
	return nil
}

type histKey struct {
	rid    string
	date   string
	period entity.Period
}

type fakeHistoryRepo struct {
	rows map[histKey]*entity.SalesHistory
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{rows: make(map[histKey]*entity.SalesHistory)}
}

func histK(restaurantID string, date time.Time, period entity.Period) histKey {
	return histKey{restaurantID, date.UTC().Format("2006-01-02"), period}
}

func (r *fakeHistoryRepo) ApplySale(_ context.Context, restaurantID string, date time.Time, period entity.Period, snap entity.OrderSnapshot) error {
	k := histK(restaurantID, date, period)
	row, ok := r.rows[k]
	if !ok {
		row = &entity.SalesHistory{
			ID:           k.date + "/" + string(period),
			RestaurantID: restaurantID,
			Date:         date,
			Period:       period,
			Revenue:      decimal.Zero,
		}
		r.rows[k] = row
	}
	row.Orders++
	row.Revenue = row.Revenue.Add(snap.Total)
	row.OrderDetails = append(row.OrderDetails, snap)
	return nil
}

func (r *fakeHistoryRepo) ReverseSale(_ context.Context, restaurantID string, date time.Time, period entity.Period, orderID string, total decimal.Decimal) (bool, error) {
	row, ok := r.rows[histK(restaurantID, date, period)]
	if !ok {
		return false, nil
	}
	row.Orders--
	row.Revenue = row.Revenue.Sub(total)
	found := false
	kept := row.OrderDetails[:0]
	for _, snap := range row.OrderDetails {
		if snap.OrderID == orderID {
			found = true
			continue
		}
		kept = append(kept, snap)
	}
	row.OrderDetails = kept
	return found, nil
}

func (r *fakeHistoryRepo) FinalizeMonth(_ context.Context, restaurantID string, monthDate time.Time, orders int64, revenue decimal.Decimal) error {
	k := histK(restaurantID, monthDate, entity.PeriodMonthly)
	row, ok := r.rows[k]
	if !ok {
		row = &entity.SalesHistory{
			ID:           k.date + "/monthly",
			RestaurantID: restaurantID,
			Date:         monthDate,
			Period:       entity.PeriodMonthly,
		}
		r.rows[k] = row
	}
	// Reemplazo de acumulados; los snapshots existentes quedan intactos.
	row.Orders = orders
	row.Revenue = revenue
	return nil
}

func (r *fakeHistoryRepo) GetByDate(_ context.Context, restaurantID string, date time.Time, period entity.Period) (*entity.SalesHistory, error) {
	row, ok := r.rows[histK(restaurantID, date, period)]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (r *fakeHistoryRepo) ListByPeriod(_ context.Context, restaurantID string, period entity.Period, rng repository.HistoryRange, _ bool) ([]*entity.SalesHistory, error) {
	var list []*entity.SalesHistory
	for _, row := range r.rows {
		if row.RestaurantID != restaurantID || row.Period != period {
			continue
		}
		if rng.From != nil && row.Date.Before(*rng.From) {
			continue
		}
		if rng.To != nil && row.Date.After(*rng.To) {
			continue
		}
		list = append(list, row)
	}
	return list, nil
}

func (r *fakeHistoryRepo) AggregateWeekly(_ context.Context, restaurantID string, rng repository.HistoryRange) ([]repository.WeeklySalesResult, error) {
	weeks := make(map[string]*repository.WeeklySalesResult)
	for _, row := range r.rows {
		if row.RestaurantID != restaurantID || row.Period != entity.PeriodDaily {
			continue
		}
		if rng.From != nil && row.Date.Before(*rng.From) {
			continue
		}
		day := row.Date.UTC()
		start := day.AddDate(0, 0, -int(day.Weekday()))
		k := start.Format("2006-01-02")
		w, ok := weeks[k]
		if !ok {
			w = &repository.WeeklySalesResult{WeekStart: start, Revenue: decimal.Zero}
			weeks[k] = w
		}
		w.Orders += row.Orders
		w.Revenue = w.Revenue.Add(row.Revenue)
	}
	var out []repository.WeeklySalesResult
	for _, w := range weeks {
		out = append(out, *w)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply / Reverse
// ──────────────────────────────────────────────────────────────────────────────

const rid = "00000000-0000-0000-0000-0000000000aa"

func completedOrder(id string, createdAt time.Time, total int64) *entity.Order {
	return &entity.Order{
		ID:           id,
		RestaurantID: rid,
		Table:        4,
		Items: []entity.OrderItem{
			{MenuItemID: "plato-1", Name: "Ajiaco", Price: decimal.NewFromInt(total), Quantity: 1},
		},
		Total:     decimal.NewFromInt(total),
		Status:    entity.StatusCompleted,
		CreatedAt: createdAt,
	}
}

func TestRollupApply_ActualizaLosTresAgregados(t *testing.T) {
	monthly := newFakeMonthlyRepo()
	history := newFakeHistoryRepo()
	engine := sales.NewRollupEngine(logger.Nop())

	created := time.Date(2026, 3, 15, 20, 30, 0, 0, time.UTC)
	order := completedOrder("pedido-1", created, 42000)

	require.NoError(t, engine.Apply(context.Background(), monthly, history, order))

	m, err := monthly.GetMonth(context.Background(), rid, 2026, 3)
	require.NoError(t, err)
	require.NotNil(t, m, "debe existir la fila del acumulado mensual")
	assert.Equal(t, int64(1), m.TotalOrders)
	assert.True(t, m.TotalSales.Equal(decimal.NewFromInt(42000)))

	daily, err := history.GetByDate(context.Background(), rid, entity.DayBucket(created), entity.PeriodDaily)
	require.NoError(t, err)
	require.NotNil(t, daily)
	assert.Equal(t, int64(1), daily.Orders)
	require.Len(t, daily.OrderDetails, 1, "el snapshot viaja junto con el incremento")
	assert.Equal(t, "pedido-1", daily.OrderDetails[0].OrderID)

	mensual, err := history.GetByDate(context.Background(), rid, entity.MonthBucket(created), entity.PeriodMonthly)
	require.NoError(t, err)
	require.NotNil(t, mensual)
	assert.True(t, mensual.Revenue.Equal(decimal.NewFromInt(42000)))
}

func TestRollupApply_ClavePorFechaDeCreacion(t *testing.T) {
	monthly := newFakeMonthlyRepo()
	history := newFakeHistoryRepo()
	engine := sales.NewRollupEngine(logger.Nop())

	// El pedido se creó en enero; da igual cuándo se completó: el aporte
	// cae en los agregados de enero.
	created := time.Date(2026, 1, 31, 23, 50, 0, 0, time.UTC)
	require.NoError(t, engine.Apply(context.Background(), monthly, history, completedOrder("p", created, 10000)))

	m, _ := monthly.GetMonth(context.Background(), rid, 2026, 1)
	assert.NotNil(t, m, "el acumulado debe quedar en el mes de creación")
	febrero, _ := monthly.GetMonth(context.Background(), rid, 2026, 2)
	assert.Nil(t, febrero)
}

func TestRollupApply_AcumulaVariasVentas(t *testing.T) {
	monthly := newFakeMonthlyRepo()
	history := newFakeHistoryRepo()
	engine := sales.NewRollupEngine(logger.Nop())

	created := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, engine.Apply(context.Background(), monthly, history, completedOrder("p1", created, 10000)))
	require.NoError(t, engine.Apply(context.Background(), monthly, history, completedOrder("p2", created.Add(2*time.Hour), 15000)))

	m, _ := monthly.GetMonth(context.Background(), rid, 2026, 5)
	require.NotNil(t, m)
	assert.Equal(t, int64(2), m.TotalOrders)
	assert.True(t, m.TotalSales.Equal(decimal.NewFromInt(25000)))

	daily, _ := history.GetByDate(context.Background(), rid, entity.DayBucket(created), entity.PeriodDaily)
	require.NotNil(t, daily)
	assert.Len(t, daily.OrderDetails, 2)
}

func TestRollupReverse_DeshaceExactamenteElAporte(t *testing.T) {
	monthly := newFakeMonthlyRepo()
	history := newFakeHistoryRepo()
	engine := sales.NewRollupEngine(logger.Nop())

	created := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	order := completedOrder("p1", created, 10000)
	otro := completedOrder("p2", created, 15000)
	require.NoError(t, engine.Apply(context.Background(), monthly, history, order))
	require.NoError(t, engine.Apply(context.Background(), monthly, history, otro))

	require.NoError(t, engine.Reverse(context.Background(), monthly, history, order))

	m, _ := monthly.GetMonth(context.Background(), rid, 2026, 5)
	require.NotNil(t, m)
	assert.Equal(t, int64(1), m.TotalOrders)
	assert.True(t, m.TotalSales.Equal(decimal.NewFromInt(15000)), "solo debe quedar el aporte de p2")

	daily, _ := history.GetByDate(context.Background(), rid, entity.DayBucket(created), entity.PeriodDaily)
	require.NotNil(t, daily)
	require.Len(t, daily.OrderDetails, 1, "el snapshot de p1 debe retirarse")
	assert.Equal(t, "p2", daily.OrderDetails[0].OrderID)
}

func TestRollupReverse_SnapshotAusenteNoEsError(t *testing.T) {
	monthly := newFakeMonthlyRepo()
	history := newFakeHistoryRepo()
	engine := sales.NewRollupEngine(logger.Nop())

	// Nunca se aplicó nada: la reversa no encuentra fila ni snapshot.
	// Debe terminar sin error (queda como advertencia de consistencia).
	created := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	err := engine.Reverse(context.Background(), monthly, history, completedOrder("fantasma", created, 9000))
	assert.NoError(t, err, "la reversa sin snapshot advierte, no falla")
}
