package orders

import (
	"context"
	"fmt"

	"github.com/tu-usuario/resto-pos/internal/domain"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
)

// ReceiptUseCase genera el ticket imprimible de un pedido.
type ReceiptUseCase struct {
	orderRepo      repository.OrderRepository
	restaurantRepo repository.RestaurantRepository
	generator      ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	orderRepo repository.OrderRepository,
	restaurantRepo repository.RestaurantRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		generator:      generator,
	}
}

// GenerateReceipt devuelve los bytes del PDF del ticket.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, restaurantID, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(ctx, restaurantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("cargar pedido: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	restaurant, err := uc.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("cargar restaurante: %w", err)
	}
	if restaurant == nil {
		return nil, domain.ErrNotFound
	}

	return uc.generator.GenerateReceiptPDF(ctx, order, restaurant)
}
