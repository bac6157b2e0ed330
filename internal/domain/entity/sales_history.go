package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period granularidad de un registro de SalesHistory.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
)

// SnapshotItem línea de un pedido dentro de un snapshot embebido.
type SnapshotItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderSnapshot copia embebida de un pedido completado, almacenada dentro
// del registro de historia para el drill-down de reportes. Se identifica
// por OrderID al momento de revertir una venta.
type OrderSnapshot struct {
	OrderID   string          `json:"order_id"`
	Table     int             `json:"table"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Status    string          `json:"status"`
	Items     []SnapshotItem  `json:"items"`
}

// SalesHistory es el libro mayor permanente de ventas: un registro por
// (restaurante, fecha, período), con acumulados y la lista de snapshots.
// Borrar el pedido origen nunca toca la historia; solo la anulación de un
// pedido completado revierte su aporte.
type SalesHistory struct {
	ID           string
	RestaurantID string
	Date         time.Time
	Period       Period
	Orders       int64
	Revenue      decimal.Decimal
	OrderDetails []OrderSnapshot
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DayBucket trunca un instante a la medianoche UTC de su día.
// Es la clave de los registros daily.
func DayBucket(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthBucket trunca un instante al día 1 UTC de su mes.
// Es la clave de los registros monthly.
func MonthBucket(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
