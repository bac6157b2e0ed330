package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
)

// HistoryRange rango de fechas opcional para listados de historia.
type HistoryRange struct {
	From *time.Time
	To   *time.Time
}

// WeeklySalesResult agregado semanal derivado de los registros daily.
type WeeklySalesResult struct {
	WeekStart time.Time
	Orders    int64
	Revenue   decimal.Decimal
}

// SalesHistoryRepository define el puerto del libro mayor de ventas.
//
// ApplySale debe sumar los acumulados Y anexar el snapshot en la misma
// operación del datastore; ReverseSale debe restarlos Y retirar el snapshot
// igual de atómicamente. Un lector nunca debe observar el ingreso sin su
// detalle ni el detalle sin su ingreso.
type SalesHistoryRepository interface {
	// ApplySale upsert de (restaurante, fecha, período) sumando
	// {+1 pedido, +snap.Total} y anexando el snapshot.
	ApplySale(ctx context.Context, restaurantID string, date time.Time, period entity.Period, snap entity.OrderSnapshot) error
	// ReverseSale resta {1, total} y retira el snapshot con ese orderID.
	// found=false cuando el snapshot (o la fila completa) no estaba: el
	// decremento numérico se aplica igual si la fila existe, pero el
	// llamador debe registrar el riesgo de consistencia.
	ReverseSale(ctx context.Context, restaurantID string, date time.Time, period entity.Period, orderID string, total decimal.Decimal) (found bool, err error)
	// FinalizeMonth upsert del registro monthly con semántica de reemplazo:
	// orders y revenue se sobrescriben con los totales del mes cerrado (el
	// registro puede traer datos parciales de transiciones del mismo mes);
	// la lista de snapshots existente no se toca.
	FinalizeMonth(ctx context.Context, restaurantID string, monthDate time.Time, orders int64, revenue decimal.Decimal) error
	// GetByDate devuelve (nil, nil) si no hay registro para esa clave.
	GetByDate(ctx context.Context, restaurantID string, date time.Time, period entity.Period) (*entity.SalesHistory, error)
	// ListByPeriod registros de un período dentro del rango, fecha
	// descendente. withDetails=false omite los snapshots (listados livianos).
	ListByPeriod(ctx context.Context, restaurantID string, period entity.Period, r HistoryRange, withDetails bool) ([]*entity.SalesHistory, error)
	// AggregateWeekly agrupa los registros daily del rango por semana.
	AggregateWeekly(ctx context.Context, restaurantID string, r HistoryRange) ([]WeeklySalesResult, error)
}
