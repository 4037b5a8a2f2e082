package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
	"github.com/jhoicas/stockorder-sync/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PurchaseUpdater purchaseStockUpdater
	SalePusher      saleOrderPusher
	POSOrders       posOrderCreator
	Activity        activityReader
	Auth            operatorAuth
	JWTSecret       string
	JWTIssuer       string
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth: login público, alta solo admin
	authHandler := NewAuthHandler(deps.Auth)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	syncHandler := NewOrderSyncHandler(deps.PurchaseUpdater, deps.SalePusher, log.Named("http"))

	// Purchase orders
	purchases := protected.Group("/purchase-orders")
	purchases.Post("/update-stock", RequireRole(entity.RoleAdmin, entity.RolePurchase), syncHandler.UpdatePurchaseStock)

	// Sale orders
	sales := protected.Group("/sale-orders")
	sales.Post("/confirm-and-push", RequireRole(entity.RoleAdmin, entity.RoleSales), syncHandler.ConfirmAndPush)
	saleHandler := NewSaleOrderHandler(deps.POSOrders)
	sales.Post("/from-pos", RequireRole(entity.RoleAdmin, entity.RoleSales, entity.RolePOS), saleHandler.CreateFromPOS)

	// Registro de actividad
	orders := protected.Group("/orders")
	activityHandler := NewOrderActivityHandler(deps.Activity)
	orders.Get("/:id/annotations", activityHandler.ListAnnotations)
	orders.Get("/:id/activity.pdf", activityHandler.DownloadPDF)
}
