package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/domain/entity"
)

// MonthlySalesRepository define el puerto del acumulado mensual transitorio.
//
// ApplySale y ReverseSale deben ejecutarse como incrementos atómicos en el
// datastore (upsert con suma, nunca read-modify-write en la aplicación):
// bajo completados concurrentes un read-modify-write perdería updates.
type MonthlySalesRepository interface {
	// ApplySale upsert de (restaurante, año, mes) sumando {total, +1 pedido}.
	ApplySale(ctx context.Context, restaurantID string, year, month int, total decimal.Decimal) error
	// ReverseSale decrementa {total, -1 pedido}. Si la fila no existe es un
	// no-op (el motor de agregados decide cómo reportarlo).
	ReverseSale(ctx context.Context, restaurantID string, year, month int, total decimal.Decimal) error
	// GetMonth devuelve (nil, nil) si el mes no tiene fila todavía.
	GetMonth(ctx context.Context, restaurantID string, year, month int) (*entity.MonthlySales, error)
	// ListBefore filas del restaurante con (año, mes) anterior al dado:
	// candidatas a cierre de mes.
	ListBefore(ctx context.Context, restaurantID string, year, month int) ([]*entity.MonthlySales, error)
	// ListBeforeAll igual que ListBefore pero para todos los tenants
	// (barrido programado).
	ListBeforeAll(ctx context.Context, year, month int) ([]*entity.MonthlySales, error)
	// SumOrders Σ total_orders de las filas del restaurante. Es la métrica
	// "pedidos completados" del dashboard: inmune a borrados de pedidos.
	SumOrders(ctx context.Context, restaurantID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
