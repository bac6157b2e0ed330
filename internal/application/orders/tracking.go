package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
)

// Track devuelve el estado de un pedido con su línea de tiempo para la
// vista de seguimiento (sistema simple de 3 estados).
func (uc *UseCase) Track(ctx context.Context, restaurantID, orderID string) (*dto.OrderTrackingResponse, error) {
	order, err := uc.loadOrder(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	elapsed := int(now.Sub(order.CreatedAt).Minutes())

	var statusMessage, estimatedTime string
	switch order.Status {
	case "pending":
		estimatedTime = "15-20 minutos"
		statusMessage = "Tu pedido está en preparación"
	case "completed":
		estimatedTime = "Completado"
		statusMessage = "Tu pedido fue completado"
	case "cancelled":
		estimatedTime = "Cancelado"
		statusMessage = "Este pedido fue cancelado"
	}

	terminal := order.Status == "completed" || order.Status == "cancelled"
	secondLabel := "Completado"
	if order.Status == "cancelled" {
		secondLabel = "Cancelado"
	}
	var secondTS *time.Time
	if terminal {
		ts := order.UpdatedAt
		secondTS = &ts
	}

	createdAt := order.CreatedAt
	resp := &dto.OrderTrackingResponse{Order: dto.NewOrderResponse(order)}
	resp.Tracking.CurrentStatus = string(order.Status)
	resp.Tracking.StatusMessage = statusMessage
	resp.Tracking.EstimatedTime = estimatedTime
	resp.Tracking.ElapsedMinutes = elapsed
	resp.Tracking.Timeline = []dto.TrackingStep{
		{Status: "pending", Label: "Pedido recibido", Completed: true, Timestamp: &createdAt},
		{Status: "completed", Label: secondLabel, Completed: terminal, Timestamp: secondTS},
	}
	return resp, nil
}

// TrackTable devuelve los pedidos activos (pending) de una mesa, más
// recientes primero.
func (uc *UseCase) TrackTable(ctx context.Context, restaurantID string, table int) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.ListPendingByTable(ctx, restaurantID, table)
	if err != nil {
		return nil, fmt.Errorf("pedidos de la mesa: %w", err)
	}
	out := make([]dto.OrderResponse, len(list))
	for i, o := range list {
		out[i] = dto.NewOrderResponse(o)
	}
	return out, nil
}
