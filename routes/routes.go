package routes

import (
	"travel-booking/config"
	approvalController "travel-booking/controllers/approval"
	logController "travel-booking/controllers/log"
	notificationController "travel-booking/controllers/notification"
	tripController "travel-booking/controllers/trip"
	userController "travel-booking/controllers/user"
	"travel-booking/database"
	"travel-booking/middleware"
	"travel-booking/services/approval"
	"travel-booking/services/audit"
	"travel-booking/services/notification"
	"travel-booking/services/removal"
	"travel-booking/services/transaction"
	"travel-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, store *database.Store, cfg *config.Config) {
	exec := transaction.NewExecutor(store, cfg.TxMaxRetries)
	auth := middleware.NewAuth(middleware.NewVerifier(cfg.JWTSecret, cfg.PublicKeyURL))

	approvalCtl := approvalController.NewApprovalController(approval.NewService(exec, audit.Writer{}, notification.Writer{}))
	removalService := removal.NewService(exec, audit.Writer{}, notification.Writer{})
	userCtl := userController.NewUserController(removalService)
	tripCtl := tripController.NewTripController(removalService)
	logCtl := logController.NewLogController(audit.NewService(store.DB))
	notificationCtl := notificationController.NewNotificationController(notification.NewService(store.DB))

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := store.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
				Message: "database unreachable",
				Status:  fiber.StatusServiceUnavailable,
			})
		}
		stats := store.Stats()
		return c.JSON(types.ApiResponse{
			Message: "ok",
			Status:  fiber.StatusOK,
			Data: fiber.Map{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"wait_count":       stats.WaitCount,
			},
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	/*=============================================================================
	| User Routes
	===============================================================================*/
	notifications := api.Group("/notifications", auth.RequireAuthentication())
	notifications.Get("/", notificationCtl.List)
	notifications.Post("/:id/read", notificationCtl.MarkRead)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	admin := api.Group("/admin", auth.RequireAdmin())

	admin.Get("/approvals", approvalCtl.List)
	admin.Get("/approvals/:id", approvalCtl.Show)
	admin.Post("/approvals", approvalCtl.Submit)
	admin.Post("/approvals/:id/decision", approvalCtl.Decide)

	admin.Delete("/users/:id", userCtl.Delete)
	admin.Delete("/trips/:id", tripCtl.Remove)

	admin.Get("/logs", logCtl.Mine)
	admin.Get("/logs/:type/:id", logCtl.ForEntity)
}
