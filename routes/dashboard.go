package routes

import (
	dashboard_handlers "etkinlik.link/handlers/dashboard"
	"etkinlik.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları tanımlar.
// Yalnızca super-admin erişebilir.
func registerDashboardRoutes(app *fiber.App) {
	homeHandler := dashboard_handlers.NewDashboardHomeHandler()
	userHandler := dashboard_handlers.NewDashboardUserHandler()
	eventHandler := dashboard_handlers.NewDashboardEventHandler()
	emailHandler := dashboard_handlers.NewDashboardEmailHandler()

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.StatusMiddleware,
		middlewares.RequireSuperAdmin(),
	)

	dashboardGroup.Get("/home", homeHandler.Home)

	// --- Kullanıcı Yönetimi ---
	dashboardGroup.Get("/users", userHandler.ListUsers)
	dashboardGroup.Post("/users/:id/status", userHandler.SetActive)

	// --- Etkinlik Yönetimi ---
	dashboardGroup.Get("/events", eventHandler.ListEvents)
	dashboardGroup.Post("/events/delete/:id", eventHandler.DeleteEvent)
	dashboardGroup.Delete("/events/delete/:id", eventHandler.DeleteEvent)

	// --- E-posta Denetimi ---
	dashboardGroup.Get("/emails", emailHandler.ListSentEmails)
}
