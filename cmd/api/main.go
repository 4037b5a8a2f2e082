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

	"github.com/jhoicas/stockorder-sync/internal/application/auth"
	"github.com/jhoicas/stockorder-sync/internal/application/orderactivity"
	"github.com/jhoicas/stockorder-sync/internal/application/saleorder"
	"github.com/jhoicas/stockorder-sync/internal/application/stockorder"
	infrapdf "github.com/jhoicas/stockorder-sync/internal/infrastructure/pdf"
	"github.com/jhoicas/stockorder-sync/internal/infrastructure/postgres"
	"github.com/jhoicas/stockorder-sync/internal/infrastructure/pushapi"
	httpRouter "github.com/jhoicas/stockorder-sync/internal/interfaces/http"
	"github.com/jhoicas/stockorder-sync/pkg/config"
	"github.com/jhoicas/stockorder-sync/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("push_api", cfg.PushAPI.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// La API key se relee del archivo en cada llamada: rotarla no requiere reinicio.
	keys := config.NewFileKeyProvider(cfg.PushAPI.KeyFile, cfg.PushAPI.KeyName)
	pushClient := pushapi.NewClient(cfg.PushAPI.BaseURL, cfg.PushAPI.Timeout(), keys, log)

	settings := stockorder.Settings{
		PrincipalCode:       cfg.PushAPI.PrincipalCode,
		CustomerReference:   cfg.PushAPI.CustomerReference,
		Warehouse:           cfg.PushAPI.Warehouse,
		DefaultInstructions: cfg.PushAPI.DefaultInstructions,
		DefaultOrderNotes:   cfg.PushAPI.DefaultOrderNotes,
	}
	purchaseUpdater := stockorder.NewPurchaseOrderUpdater(orderRepo, pushClient, settings, log)
	salePusher := stockorder.NewSaleOrderPusher(orderRepo, txRunner, pushClient, settings, log, time.Now)
	posUC := saleorder.NewCreateFromPOSUseCase(txRunner, log, time.Now)
	activityUC := orderactivity.NewUseCase(orderRepo, infrapdf.NewActivityPDFGenerator())
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.PushAPI.Timeout() * 4, // un lote hace varias llamadas remotas
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockOrder Sync API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PurchaseUpdater: purchaseUpdater,
		SalePusher:      salePusher,
		POSOrders:       posUC,
		Activity:        activityUC,
		Auth:            authUC,
		JWTSecret:       cfg.JWT.Secret,
		JWTIssuer:       cfg.JWT.Issuer,
		Log:             log,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
