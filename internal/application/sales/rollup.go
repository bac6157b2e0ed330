// Package sales contiene el motor de agregados de ventas: la aplicación y
// reversa del aporte de un pedido sobre MonthlySales y SalesHistory, el
// cierre de meses vencidos y las consultas de historia.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
	"github.com/tu-usuario/resto-pos/pkg/logger"
)

// RollupEngine mantiene los tres agregados denormalizados al día ante las
// transiciones de estado de un pedido:
//
//	MonthlySales (restaurante, año, mes)     — acumulado grueso del mes
//	SalesHistory (restaurante, día, daily)   — acumulado diario + snapshots
//	SalesHistory (restaurante, mes, monthly) — acumulado mensual + snapshots
//
// Las tres claves se derivan SIEMPRE de la fecha de creación del pedido, no
// del momento de la transición. Los repos se reciben por llamada para poder
// ejecutar dentro de la transacción del caso de uso.
type RollupEngine struct {
	log *logger.Logger
}

// NewRollupEngine construye el motor.
func NewRollupEngine(log *logger.Logger) *RollupEngine {
	return &RollupEngine{log: log}
}

// Apply registra la venta de un pedido recién completado en los tres
// agregados. Cada upsert es un incremento atómico en el datastore; el push
// del snapshot viaja en la misma sentencia que el incremento.
func (e *RollupEngine) Apply(
	ctx context.Context,
	monthly repository.MonthlySalesRepository,
	history repository.SalesHistoryRepository,
	order *entity.Order,
) error {
	created := order.CreatedAt.UTC()
	year, month := created.Year(), int(created.Month())

	if err := monthly.ApplySale(ctx, order.RestaurantID, year, month, order.Total); err != nil {
		return fmt.Errorf("rollup: acumulado mensual: %w", err)
	}

	snap := order.Snapshot()
	if err := history.ApplySale(ctx, order.RestaurantID, entity.DayBucket(created), entity.PeriodDaily, snap); err != nil {
		return fmt.Errorf("rollup: historia diaria: %w", err)
	}
	if err := history.ApplySale(ctx, order.RestaurantID, entity.MonthBucket(created), entity.PeriodMonthly, snap); err != nil {
		return fmt.Errorf("rollup: historia mensual: %w", err)
	}
	return nil
}

// Reverse deshace exactamente lo que Apply sumó: decrementa los tres
// acumulados y retira el snapshot (identificado por el ID del pedido) de
// ambas listas de detalle.
//
// Si el snapshot no aparece (deriva de datos), el decremento numérico se
// aplica de todas formas y el hecho queda registrado como riesgo de
// consistencia — advertencia, no error: enmascararlo con un fallo dejaría
// el pedido anulado pero la venta sumada.
func (e *RollupEngine) Reverse(
	ctx context.Context,
	monthly repository.MonthlySalesRepository,
	history repository.SalesHistoryRepository,
	order *entity.Order,
) error {
	created := order.CreatedAt.UTC()
	year, month := created.Year(), int(created.Month())

	if err := monthly.ReverseSale(ctx, order.RestaurantID, year, month, order.Total); err != nil {
		return fmt.Errorf("rollup: reversa acumulado mensual: %w", err)
	}

	buckets := []struct {
		date   time.Time
		period entity.Period
	}{
		{entity.DayBucket(created), entity.PeriodDaily},
		{entity.MonthBucket(created), entity.PeriodMonthly},
	}
	for _, b := range buckets {
		found, err := history.ReverseSale(ctx, order.RestaurantID, b.date, b.period, order.ID, order.Total)
		if err != nil {
			return fmt.Errorf("rollup: reversa historia %s: %w", b.period, err)
		}
		if !found {
			e.log.Warn().
				Str("restaurant_id", order.RestaurantID).
				Str("order_id", order.ID).
				Time("date", b.date).
				Str("period", string(b.period)).
				Msg("riesgo de consistencia: snapshot no encontrado al revertir la venta")
		}
	}
	return nil
}
