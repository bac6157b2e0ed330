package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-pos/internal/domain/repository"
)

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
//
// CompletedOrders sale de los acumulados de MonthlySales (inmune al borrado
// de pedidos); PendingOrders es un conteo vivo sobre la colección de
// pedidos y sí baja si se borran — asimetría intencional.
type DashboardStatsDTO struct {
	TotalTables      int                        `json:"total_tables"`
	TotalMenuItems   int64                      `json:"total_menu_items"`
	DailySales       decimal.Decimal            `json:"daily_sales"`
	MonthlySales     decimal.Decimal            `json:"monthly_sales"`
	PendingOrders    int64                      `json:"pending_orders"`
	CompletedOrders  int64                      `json:"completed_orders"`
	TopSellingDishes []repository.TopDishResult `json:"top_selling_dishes"`
}
