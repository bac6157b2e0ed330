package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
)

// OrderItemRequest línea de pedido tal como llega del cliente.
// Name y Price son el snapshot que el cliente vio en el menú; el servidor
// valida que el plato exista y esté disponible antes de aceptarlo.
type OrderItemRequest struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}

// PlaceOrderRequest cuerpo de POST /api/orders.
type PlaceOrderRequest struct {
	Table *int               `json:"table"`
	Items []OrderItemRequest `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// AddItemsRequest cuerpo de PUT /api/orders/:id/add-items.
type AddItemsRequest struct {
	Items           []OrderItemRequest `json:"items"`
	AdditionalTotal decimal.Decimal    `json:"additional_total"`
}

// DecrementItemRequest cuerpo de PUT /api/orders/:id/remove-item-quantity.
type DecrementItemRequest struct {
	ItemIndex int `json:"item_index"`
}

// SetStatusRequest cuerpo de PUT /api/orders/:id/status.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// OrderListRequest filtros de GET /api/orders.
type OrderListRequest struct {
	Status string `query:"status"`
	Table  *int   `query:"table"`
	PageRequest
}

// OrderItemResponse línea del pedido en respuestas.
type OrderItemResponse struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}

// OrderResponse representación JSON de un pedido.
type OrderResponse struct {
	ID        string              `json:"id"`
	Table     int                 `json:"table"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// OrderListResponse respuesta paginada de pedidos.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	PageResponse
}

// TrackingStep paso de la línea de tiempo de seguimiento.
type TrackingStep struct {
	Status    string     `json:"status"`
	Label     string     `json:"label"`
	Completed bool       `json:"completed"`
	Timestamp *time.Time `json:"timestamp"`
}

// OrderTrackingResponse respuesta de GET /api/order-tracking/:id.
type OrderTrackingResponse struct {
	Order    OrderResponse `json:"order"`
	Tracking struct {
		CurrentStatus  string         `json:"current_status"`
		StatusMessage  string         `json:"status_message"`
		EstimatedTime  string         `json:"estimated_time"`
		ElapsedMinutes int            `json:"elapsed_minutes"`
		Timeline       []TrackingStep `json:"timeline"`
	} `json:"tracking"`
}

// NewOrderResponse mapea la entidad al DTO.
func NewOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
		}
	}
	return OrderResponse{
		ID:        o.ID,
		Table:     o.Table,
		Items:     items,
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
