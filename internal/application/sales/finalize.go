package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
	"github.com/tu-usuario/resto-pos/pkg/logger"
)

// FinalizeUseCase consolida los meses vencidos de MonthlySales en
// SalesHistory. Para cada fila con (año, mes) anterior al mes UTC actual:
//
//  1. upsert del registro monthly de SalesHistory sobrescribiendo orders y
//     revenue con los totales del mes (reemplazo, no suma: el registro
//     puede traer parciales de transiciones completadas ese mismo mes; la
//     lista de snapshots no se toca),
//  2. borrado de la fila de MonthlySales.
//
// Idempotente: una segunda pasada no encuentra filas vencidas y no hace
// nada. Se invoca desde dos lados: el barrido programado (todos los
// tenants) y la lectura del dashboard (tenant puntual), para que un lector
// nunca vea un mes vencido sin consolidar.
type FinalizeUseCase struct {
	monthlyRepo repository.MonthlySalesRepository
	historyRepo repository.SalesHistoryRepository
	log         *logger.Logger
}

// NewFinalizeUseCase construye el caso de uso.
func NewFinalizeUseCase(
	monthlyRepo repository.MonthlySalesRepository,
	historyRepo repository.SalesHistoryRepository,
	log *logger.Logger,
) *FinalizeUseCase {
	return &FinalizeUseCase{monthlyRepo: monthlyRepo, historyRepo: historyRepo, log: log}
}

// FinalizeTenant consolida los meses vencidos de un restaurante.
func (uc *FinalizeUseCase) FinalizeTenant(ctx context.Context, restaurantID string, now time.Time) error {
	u := now.UTC()
	stale, err := uc.monthlyRepo.ListBefore(ctx, restaurantID, u.Year(), int(u.Month()))
	if err != nil {
		return fmt.Errorf("cierre de mes: listar vencidos: %w", err)
	}
	return uc.finalize(ctx, stale)
}

// FinalizeAll consolida los meses vencidos de todos los tenants (barrido
// programado).
func (uc *FinalizeUseCase) FinalizeAll(ctx context.Context, now time.Time) error {
	u := now.UTC()
	stale, err := uc.monthlyRepo.ListBeforeAll(ctx, u.Year(), int(u.Month()))
	if err != nil {
		return fmt.Errorf("cierre de mes: listar vencidos: %w", err)
	}
	return uc.finalize(ctx, stale)
}

func (uc *FinalizeUseCase) finalize(ctx context.Context, stale []*entity.MonthlySales) error {
	for _, m := range stale {
		monthDate := time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
		if err := uc.historyRepo.FinalizeMonth(ctx, m.RestaurantID, monthDate, m.TotalOrders, m.TotalSales); err != nil {
			return fmt.Errorf("cierre de mes %d-%02d: %w", m.Year, m.Month, err)
		}
		// Borrar después de consolidar: si el proceso muere entre ambos
		// pasos, la próxima pasada repite el upsert (reemplazo, mismo
		// resultado) y recién entonces borra.
		if err := uc.monthlyRepo.Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("cierre de mes %d-%02d: borrar acumulado: %w", m.Year, m.Month, err)
		}
		uc.log.Info().
			Str("restaurant_id", m.RestaurantID).
			Int("year", m.Year).
			Int("month", m.Month).
			Str("total_sales", m.TotalSales.String()).
			Int64("total_orders", m.TotalOrders).
			Msg("mes consolidado en la historia de ventas")
	}
	return nil
}

// RunSweeper ejecuta FinalizeAll cada `interval` hasta que el contexto se
// cancele. Pensado para correr en una goroutine desde main: separa el costo
// del cierre de mes del camino crítico de las lecturas del dashboard.
func (uc *FinalizeUseCase) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := uc.FinalizeAll(ctx, time.Now()); err != nil {
				uc.log.Error().Err(err).Msg("barrido de cierre de mes")
			}
		}
	}
}
