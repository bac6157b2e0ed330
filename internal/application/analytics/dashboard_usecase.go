package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
	"github.com/tu-usuario/resto-pos/pkg/logger"
)

const topDishesLimit = 4

// Finalizer cierre perezoso de meses pendientes de un restaurante.
type Finalizer interface {
	FinalizeTenant(ctx context.Context, restaurantID string, now time.Time) error
}

// DashboardUseCase arma las métricas de GET /api/dashboard/stats.
type DashboardUseCase struct {
	monthlyRepo repository.MonthlySalesRepository
	historyRepo repository.SalesHistoryRepository
	orderRepo   repository.OrderRepository
	menuRepo    repository.MenuItemRepository
	finalizer   Finalizer
	totalTables int
	log         *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	monthlyRepo repository.MonthlySalesRepository,
	historyRepo repository.SalesHistoryRepository,
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuItemRepository,
	finalizer Finalizer,
	totalTables int,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		monthlyRepo: monthlyRepo,
		historyRepo: historyRepo,
		orderRepo:   orderRepo,
		menuRepo:    menuRepo,
		finalizer:   finalizer,
		totalTables: totalTables,
		log:         log,
	}
}

// GetStats métricas del dashboard. Antes de leer, cierra los meses vencidos
// del restaurante para que MonthlySales solo refleje el mes en curso. Las
// métricas derivadas de agregados degradan a cero si la consulta falla; las
// de pedidos y menú son duras.
func (uc *DashboardUseCase) GetStats(ctx context.Context, restaurantID string, now time.Time) (*dto.DashboardStatsDTO, error) {
	if err := uc.finalizer.FinalizeTenant(ctx, restaurantID, now); err != nil {
		// El dashboard sigue siendo legible aunque el cierre falle; el
		// barrido periódico lo reintentará.
		uc.log.Error().Err(err).Str("restaurant_id", restaurantID).
			Msg("cierre de meses vencidos falló antes de leer el dashboard")
	}

	stats := &dto.DashboardStatsDTO{
		TotalTables:  uc.totalTables,
		DailySales:   decimal.Zero,
		MonthlySales: decimal.Zero,
	}

	menuCount, err := uc.menuRepo.CountAvailable(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("conteo de platos: %w", err)
	}
	stats.TotalMenuItems = menuCount

	u := now.UTC()
	today, err := uc.historyRepo.GetByDate(ctx, restaurantID, entity.DayBucket(u), entity.PeriodDaily)
	if err != nil {
		uc.log.Warn().Err(err).Msg("ventas del día no disponibles, se reporta cero")
	} else if today != nil {
		stats.DailySales = today.Revenue
	}

	month, err := uc.monthlyRepo.GetMonth(ctx, restaurantID, u.Year(), int(u.Month()))
	if err != nil {
		uc.log.Warn().Err(err).Msg("ventas del mes no disponibles, se reporta cero")
	} else if month != nil {
		stats.MonthlySales = month.TotalSales
	}

	completed, err := uc.monthlyRepo.SumOrders(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("pedidos completados: %w", err)
	}
	stats.CompletedOrders = completed

	pending, err := uc.orderRepo.CountByStatus(ctx, restaurantID, entity.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("pedidos pendientes: %w", err)
	}
	stats.PendingOrders = pending

	top, err := uc.orderRepo.TopDishes(ctx, restaurantID, topDishesLimit)
	if err != nil {
		return nil, fmt.Errorf("platos más vendidos: %w", err)
	}
	if top == nil {
		top = []repository.TopDishResult{}
	}
	stats.TopSellingDishes = top

	return stats, nil
}
