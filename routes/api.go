package routes

import (
	api_handlers "etkinlik.link/handlers/api"
	"etkinlik.link/middlewares"
	"etkinlik.link/models"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes JSON API uçlarını tanımlar. Form gönderimi herkese
// açıktır; moderasyon ve check-in uçları oturum ister (servis katmanı
// ayrıca etkinlik sahipliğini doğrular).
func registerAPIRoutes(app *fiber.App) {
	registrationHandler := api_handlers.NewRegistrationAPIHandler()
	checkInHandler := api_handlers.NewCheckInAPIHandler()

	app.Post("/events/:id/forms/:formType", registrationHandler.SubmitForm)

	// Prefixsiz bir Group tüm yolları kapsayacağından korumalı uçlar
	// middleware'lerini rota bazında alır.
	auth := middlewares.AuthMiddleware
	status := middlewares.StatusMiddleware

	app.Get("/events/:id/submissions", auth, status, registrationHandler.ListSubmissions)
	app.Patch("/events/:id/submissions/:sid/approve", auth, status, registrationHandler.Moderate(models.SubmissionStatusApproved))
	app.Patch("/events/:id/submissions/:sid/reject", auth, status, registrationHandler.Moderate(models.SubmissionStatusRejected))
	app.Post("/events/:id/submissions/approve", auth, status, registrationHandler.BulkModerate(models.SubmissionStatusApproved))
	app.Post("/events/:id/submissions/reject", auth, status, registrationHandler.BulkModerate(models.SubmissionStatusRejected))

	app.Post("/check-ins", auth, status, checkInHandler.CheckIn)
	app.Get("/events/:id/check-ins/stats", auth, status, checkInHandler.Stats)
}
