package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySales acumulado transitorio del mes en curso, uno por
// (restaurante, año, mes). Crece de forma incremental con cada pedido
// completado; cuando el mes deja de ser el actual, el barrido de cierre lo
// consolida en SalesHistory y elimina la fila.
type MonthlySales struct {
	ID           string
	RestaurantID string
	Year         int
	Month        int // 1-12
	TotalSales   decimal.Decimal
	TotalOrders  int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Before indica si el mes de la fila precede al (año, mes) dado.
func (m *MonthlySales) Before(year, month int) bool {
	return m.Year < year || (m.Year == year && m.Month < month)
}
