package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
	"github.com/tu-usuario/resto-pos/internal/domain"
	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
)

const (
	defaultDailyDays   = 7
	defaultWeeklyDays  = 28
	defaultMonthlyBack = 6 // meses
	defaultOrdersLimit = 50
)

// HistoryUseCase consultas de solo lectura sobre la historia de ventas.
// Lee siempre de los agregados (SalesHistory), nunca recalcula desde los
// pedidos crudos; el drill-down de pedidos de un período es la excepción
// documentada (consulta la colección de pedidos).
type HistoryUseCase struct {
	historyRepo repository.SalesHistoryRepository
	orderRepo   repository.OrderRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(
	historyRepo repository.SalesHistoryRepository,
	orderRepo repository.OrderRepository,
) *HistoryUseCase {
	return &HistoryUseCase{historyRepo: historyRepo, orderRepo: orderRepo}
}

// GetSales serie de ventas del período (endpoint clásico).
// daily y monthly leen directo de SalesHistory; weekly se agrega desde los
// registros daily. Sin rango explícito aplica las ventanas por defecto
// (7 días, 4 semanas, 6 meses).
func (uc *HistoryUseCase) GetSales(ctx context.Context, restaurantID string, q dto.SalesQuery) ([]dto.SalesPointDTO, error) {
	period := q.Period
	if period == "" {
		period = "daily"
	}

	r, err := parseRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}

	switch period {
	case "daily", "monthly":
		p := entity.PeriodDaily
		if period == "monthly" {
			p = entity.PeriodMonthly
		}
		if r.From == nil && r.To == nil {
			from := defaultFrom(period)
			r.From = &from
		}
		list, err := uc.historyRepo.ListByPeriod(ctx, restaurantID, p, r, false)
		if err != nil {
			return nil, fmt.Errorf("serie de ventas: %w", err)
		}
		out := make([]dto.SalesPointDTO, len(list))
		for i, h := range list {
			out[i] = dto.SalesPointDTO{Date: h.Date, Orders: h.Orders, Revenue: h.Revenue}
		}
		return out, nil

	case "weekly":
		if r.From == nil && r.To == nil {
			from := defaultFrom(period)
			r.From = &from
		}
		weeks, err := uc.historyRepo.AggregateWeekly(ctx, restaurantID, r)
		if err != nil {
			return nil, fmt.Errorf("serie semanal: %w", err)
		}
		out := make([]dto.SalesPointDTO, len(weeks))
		for i, w := range weeks {
			out[i] = dto.SalesPointDTO{Date: w.WeekStart, Orders: w.Orders, Revenue: w.Revenue}
		}
		return out, nil
	}
	return nil, domain.ErrInvalidInput
}

// GetSalesHistory historia detallada agrupada (daily/weekly/monthly).
// daily trae los snapshots embebidos; monthly y weekly los omiten (se
// cargan bajo demanda vía GetPeriodOrders). Sin rango no hay filtro: se
// devuelven todos los registros.
func (uc *HistoryUseCase) GetSalesHistory(ctx context.Context, restaurantID string, q dto.SalesQuery) ([]dto.SalesHistoryEntryDTO, error) {
	groupBy := q.GroupBy
	if groupBy == "" {
		groupBy = "daily"
	}

	r, err := parseRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}

	switch groupBy {
	case "daily":
		list, err := uc.historyRepo.ListByPeriod(ctx, restaurantID, entity.PeriodDaily, r, true)
		if err != nil {
			return nil, fmt.Errorf("historia diaria: %w", err)
		}
		out := make([]dto.SalesHistoryEntryDTO, len(list))
		for i, h := range list {
			snaps := make([]dto.OrderSnapshotDTO, len(h.OrderDetails))
			for j, s := range h.OrderDetails {
				snaps[j] = dto.NewOrderSnapshotDTO(s)
			}
			out[i] = dto.SalesHistoryEntryDTO{
				Period:       "daily",
				Date:         h.Date,
				DisplayName:  h.Date.UTC().Format("2006-01-02"),
				TotalOrders:  h.Orders,
				TotalRevenue: h.Revenue,
				Orders:       snaps,
			}
		}
		return out, nil

	case "monthly":
		list, err := uc.historyRepo.ListByPeriod(ctx, restaurantID, entity.PeriodMonthly, r, false)
		if err != nil {
			return nil, fmt.Errorf("historia mensual: %w", err)
		}
		out := make([]dto.SalesHistoryEntryDTO, len(list))
		for i, h := range list {
			out[i] = dto.SalesHistoryEntryDTO{
				Period:       "monthly",
				Date:         h.Date,
				DisplayName:  h.Date.UTC().Format("January 2006"),
				TotalOrders:  h.Orders,
				TotalRevenue: h.Revenue,
				Orders:       []dto.OrderSnapshotDTO{},
			}
		}
		return out, nil

	case "weekly":
		weeks, err := uc.historyRepo.AggregateWeekly(ctx, restaurantID, r)
		if err != nil {
			return nil, fmt.Errorf("historia semanal: %w", err)
		}
		out := make([]dto.SalesHistoryEntryDTO, len(weeks))
		for i, w := range weeks {
			weekEnd := w.WeekStart.AddDate(0, 0, 6)
			out[i] = dto.SalesHistoryEntryDTO{
				Period:       "weekly",
				Date:         w.WeekStart,
				DisplayName:  fmt.Sprintf("%s - %s", w.WeekStart.UTC().Format("Jan 2"), weekEnd.UTC().Format("Jan 2, 2006")),
				TotalOrders:  w.Orders,
				TotalRevenue: w.Revenue,
				Orders:       []dto.OrderSnapshotDTO{},
			}
		}
		return out, nil
	}
	return nil, domain.ErrInvalidInput
}

// GetPeriodOrders drill-down: pedidos completados creados dentro del
// día/semana/mes indicado, leídos de la colección de pedidos.
func (uc *HistoryUseCase) GetPeriodOrders(ctx context.Context, restaurantID, period, date string, page dto.PageRequest) (*dto.PeriodOrdersResponse, error) {
	page.DefaultPage(defaultOrdersLimit)

	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		if d, err = time.Parse(time.RFC3339, date); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	u := d.UTC()

	var start, end time.Time
	switch period {
	case "daily":
		start = entity.DayBucket(u)
		end = start.AddDate(0, 0, 1)
	case "monthly":
		start = entity.MonthBucket(u)
		end = start.AddDate(0, 1, 0)
	case "weekly":
		day := entity.DayBucket(u)
		start = day.AddDate(0, 0, -int(day.Weekday()))
		end = start.AddDate(0, 0, 7)
	default:
		return nil, domain.ErrInvalidInput
	}

	list, total, err := uc.orderRepo.ListCompletedBetween(ctx, restaurantID, start, end, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("pedidos del período: %w", err)
	}

	resp := &dto.PeriodOrdersResponse{
		Orders:       make([]dto.OrderResponse, len(list)),
		PageResponse: dto.NewPageResponse(page.Page, page.Limit, total),
	}
	for i, o := range list {
		resp.Orders[i] = dto.NewOrderResponse(o)
	}
	return resp, nil
}

func parseRange(start, end string) (repository.HistoryRange, error) {
	var r repository.HistoryRange
	if start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return r, domain.ErrInvalidInput
		}
		r.From = &t
	}
	if end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return r, domain.ErrInvalidInput
		}
		r.To = &t
	}
	return r, nil
}

func defaultFrom(period string) time.Time {
	now := time.Now().UTC()
	switch period {
	case "weekly":
		return now.AddDate(0, 0, -defaultWeeklyDays)
	case "monthly":
		return now.AddDate(0, -defaultMonthlyBack, 0)
	default:
		return now.AddDate(0, 0, -defaultDailyDays)
	}
}
