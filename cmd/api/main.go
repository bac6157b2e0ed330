package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/resto-pos/internal/application/analytics"
	"github.com/tu-usuario/resto-pos/internal/application/licensing"
	"github.com/tu-usuario/resto-pos/internal/application/menu"
	"github.com/tu-usuario/resto-pos/internal/application/orders"
	"github.com/tu-usuario/resto-pos/internal/application/sales"
	infrapdf "github.com/tu-usuario/resto-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/resto-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/resto-pos/internal/interfaces/http"
	"github.com/tu-usuario/resto-pos/pkg/config"
	"github.com/tu-usuario/resto-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	restaurantRepo := postgres.NewRestaurantRepository(pool)
	menuRepo := postgres.NewMenuItemRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	monthlyRepo := postgres.NewMonthlySalesRepository(pool)
	historyRepo := postgres.NewSalesHistoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rollup := sales.NewRollupEngine(log)
	orderUC := orders.NewUseCase(txRunner, orderRepo, menuRepo, rollup, cfg.POS.MaxTables, log)

	receiptGen := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := orders.NewReceiptUseCase(orderRepo, restaurantRepo, receiptGen)

	finalizeUC := sales.NewFinalizeUseCase(monthlyRepo, historyRepo, log)
	salesUC := sales.NewHistoryUseCase(historyRepo, orderRepo)
	dashboardUC := analytics.NewDashboardUseCase(
		monthlyRepo, historyRepo, orderRepo, menuRepo, finalizeUC, cfg.POS.Tables, log,
	)

	menuUC := menu.NewUseCase(menuRepo)
	licensingUC := licensing.NewUseCase(restaurantRepo, log)

	// Barrido periódico: consolida los meses vencidos de todos los tenants
	// para que el cierre no dependa de que alguien abra el dashboard.
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go finalizeUC.RunSweeper(sweepCtx, cfg.POS.FinalizeInterval)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Resto POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:        orderUC,
		ReceiptUC:      receiptUC,
		MenuUC:         menuUC,
		SalesUC:        salesUC,
		DashboardUC:    dashboardUC,
		LicensingUC:    licensingUC,
		RestaurantRepo: restaurantRepo,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
