package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
)

// SalesQuery parámetros de GET /api/sales y GET /api/sales/history.
type SalesQuery struct {
	Period    string `query:"period"`   // daily | weekly | monthly (endpoint clásico)
	GroupBy   string `query:"group_by"` // daily | weekly | monthly (historia detallada)
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// SalesPointDTO un punto de la serie de ventas (endpoint clásico).
type SalesPointDTO struct {
	Date    time.Time       `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SnapshotItemDTO línea dentro de un snapshot de pedido.
type SnapshotItemDTO struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderSnapshotDTO detalle embebido de un pedido completado.
type OrderSnapshotDTO struct {
	OrderID   string            `json:"order_id"`
	Table     int               `json:"table"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	Status    string            `json:"status"`
	Items     []SnapshotItemDTO `json:"items"`
}

// SalesHistoryEntryDTO un bucket de la historia detallada.
type SalesHistoryEntryDTO struct {
	Period       string             `json:"period"`
	Date         time.Time          `json:"date"`
	DisplayName  string             `json:"display_name"`
	TotalOrders  int64              `json:"total_orders"`
	TotalRevenue decimal.Decimal    `json:"total_revenue"`
	Orders       []OrderSnapshotDTO `json:"orders"`
}

// PeriodOrdersResponse respuesta del drill-down de pedidos de un período.
type PeriodOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	PageResponse
}

// NewOrderSnapshotDTO mapea el snapshot de dominio al DTO.
func NewOrderSnapshotDTO(s entity.OrderSnapshot) OrderSnapshotDTO {
	items := make([]SnapshotItemDTO, len(s.Items))
	for i, it := range s.Items {
		items[i] = SnapshotItemDTO{Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}
	return OrderSnapshotDTO{
		OrderID:   s.OrderID,
		Table:     s.Table,
		Total:     s.Total,
		CreatedAt: s.CreatedAt,
		Status:    s.Status,
		Items:     items,
	}
}
