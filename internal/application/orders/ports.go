package orders

import (
	"context"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
)

// TxRunner ejecuta un callback con repos atados a una misma transacción.
// La actualización del estado del pedido y los upserts de agregados deben
// confirmar o revertir juntos: un crash entre pasos dejaría el estado
// persistido con los agregados desfasados.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		monthlyRepo repository.MonthlySalesRepository,
		historyRepo repository.SalesHistoryRepository,
	) error) error
}

// RollupEngine aplica o revierte el aporte de un pedido en los agregados de
// ventas. Implementado por sales.RollupEngine.
type RollupEngine interface {
	Apply(ctx context.Context, monthly repository.MonthlySalesRepository, history repository.SalesHistoryRepository, order *entity.Order) error
	Reverse(ctx context.Context, monthly repository.MonthlySalesRepository, history repository.SalesHistoryRepository, order *entity.Order) error
}

// ReceiptGenerator genera el PDF imprimible de un pedido.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order, restaurant *entity.Restaurant) ([]byte, error)
}
