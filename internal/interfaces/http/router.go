package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/resto-pos/internal/application/analytics"
	"github.com/tu-usuario/resto-pos/internal/application/licensing"
	"github.com/tu-usuario/resto-pos/internal/application/menu"
	"github.com/tu-usuario/resto-pos/internal/application/orders"
	"github.com/tu-usuario/resto-pos/internal/application/sales"
	"github.com/tu-usuario/resto-pos/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC        *orders.UseCase
	ReceiptUC      *orders.ReceiptUseCase
	MenuUC         *menu.UseCase
	SalesUC        *sales.HistoryUseCase
	DashboardUC    *analytics.DashboardUseCase
	LicensingUC    *licensing.UseCase
	RestaurantRepo repository.RestaurantRepository
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas autenticadas (Bearer Token). La administración de licencias vive
	// aquí: no puede exigir licencia vigente o un tenant vencido quedaría sin
	// forma de renovarse.
	authed := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Rutas protegidas (además exigen licencia vigente del restaurante)
	protected := authed.Group("/", LicenseMiddleware(deps.RestaurantRepo))

	// Pedidos
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id/add-items", orderHandler.AddItems)
	ordersGroup.Put("/:id/remove-item-quantity", orderHandler.DecrementItem)
	ordersGroup.Put("/:id/status", orderHandler.SetStatus)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Get("/:id/receipt", orderHandler.Receipt)

	// Seguimiento para el cliente en mesa
	tracking := protected.Group("/order-tracking")
	trackingHandler := NewOrderTrackingHandler(deps.OrderUC)
	tracking.Get("/table/:table", trackingHandler.TrackTable)
	tracking.Get("/:id", trackingHandler.Track)

	// Menú
	menuGroup := protected.Group("/menu-items")
	menuHandler := NewMenuHandler(deps.MenuUC)
	menuGroup.Post("/", menuHandler.Create)
	menuGroup.Get("/", menuHandler.List)
	menuGroup.Get("/:id", menuHandler.GetByID)
	menuGroup.Put("/:id", menuHandler.Update)
	menuGroup.Delete("/:id", menuHandler.Delete)

	// Reportes de ventas
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Get("/", salesHandler.GetSales)
	salesGroup.Get("/history", salesHandler.GetSalesHistory)
	salesGroup.Get("/period-orders", salesHandler.GetPeriodOrders)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)

	// Administración de licencias (solo owner)
	admin := authed.Group("/admin", RequireOwner())
	adminHandler := NewAdminHandler(deps.LicensingUC)
	admin.Get("/restaurants", adminHandler.ListRestaurants)
	admin.Post("/convert-to-lifetime", adminHandler.ConvertToLifetime)
	admin.Post("/extend-subscription", adminHandler.ExtendSubscription)
	admin.Post("/set-active", adminHandler.SetActive)
}
