package routes

import (
	panel_handlers "etkinlik.link/handlers/panel"
	"etkinlik.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları tanımlar.
// Organizatör (event-planner) ve admin erişebilir.
func registerPanelRoutes(app *fiber.App) {
	homeHandler := panel_handlers.NewPanelHomeHandler()
	eventHandler := panel_handlers.NewPanelEventHandler()
	submissionHandler := panel_handlers.NewPanelSubmissionHandler()
	checkInHandler := panel_handlers.NewPanelCheckInHandler()
	reviewHandler := panel_handlers.NewPanelReviewHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(
		middlewares.AuthMiddleware,   // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware, // 2. Hesap aktif mi?
		middlewares.RequirePlanner(), // 3. Organizatör mü?
	)

	panelGroup.Get("/home", homeHandler.Home)

	// --- Organizatörün Kendi Etkinlikleri ---
	panelGroup.Get("/events", eventHandler.ListEvents)
	panelGroup.Get("/events/create", eventHandler.ShowCreateEvent)
	panelGroup.Post("/events/create", eventHandler.CreateEvent)
	panelGroup.Get("/events/update/:id", eventHandler.ShowUpdateEvent)
	panelGroup.Post("/events/update/:id", eventHandler.UpdateEvent)
	panelGroup.Post("/events/delete/:id", eventHandler.DeleteEvent)
	panelGroup.Delete("/events/delete/:id", eventHandler.DeleteEvent)

	// --- Form Yönetimi ---
	panelGroup.Post("/events/:id/forms/:formType/status", eventHandler.SetFormStatus)
	panelGroup.Post("/events/:id/forms/:formType/questions", eventHandler.SetFormQuestions)

	// --- Başvuru Moderasyonu ---
	panelGroup.Get("/events/:id/submissions", submissionHandler.ListSubmissions)
	panelGroup.Post("/events/:id/submissions/:sid/moderate", submissionHandler.Moderate)
	panelGroup.Post("/events/:id/submissions/bulk", submissionHandler.BulkModerate)

	// --- Giriş Kontrol ---
	panelGroup.Get("/events/:id/check-ins", checkInHandler.ShowDashboard)
	panelGroup.Post("/events/:id/check-ins", checkInHandler.CheckIn)

	// --- Değerlendirmeler ---
	panelGroup.Get("/events/:id/reviews", reviewHandler.ListReviews)
	panelGroup.Post("/events/:id/reviews/:rid/moderate", reviewHandler.ModerateReview)
	panelGroup.Post("/events/:id/reviews/:rid/reply", reviewHandler.ReplyToReview)
}
