package routes

import (
	public_handlers "etkinlik.link/handlers/public"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes /e/:key altındaki herkese açık etkinlik sayfalarını
// tanımlar. Oturum zorunlu değildir; bilet ve değerlendirme uçları oturumu
// servis katmanında arar.
func registerPublicRoutes(app *fiber.App) {
	eventHandler := public_handlers.NewPublicEventHandler()

	publicGroup := app.Group("/e")
	publicGroup.Get("/:key", eventHandler.ShowEvent)
	publicGroup.Post("/:key/forms/:formType", eventHandler.SubmitForm)
	publicGroup.Post("/:key/tickets", eventHandler.IssueTicket)
	publicGroup.Post("/:key/reviews", eventHandler.SubmitReview)
}
