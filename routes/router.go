package routes

import (
	"etkinlik.link/configs/configssession"
	"etkinlik.link/models"
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(initializeSessionAndLocals())

	registerAuthRoutes(app)
	registerDashboardRoutes(app)
	registerPanelRoutes(app)
	registerAPIRoutes(app)

	// Public etkinlik sayfaları özel gruplardan sonra gelir.
	registerPublicRoutes(app)

	app.Get("/", rootRedirector)

	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

// initializeSessionAndLocals session store'u locals'a koyar ve oturumdaki
// kullanıcı bilgilerini her istekte locals'a taşır.
func initializeSessionAndLocals() fiber.Handler {
	sessionStore := configssession.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals("session_store", sessionStore)
		sess, err := utils.SessionStart(c)
		if err != nil {
			return c.Next()
		}
		if userID, err := utils.GetUserIDFromSession(sess); err == nil {
			c.Locals("userID", userID)
		}
		if role, err := utils.GetUserRoleFromSession(sess); err == nil {
			c.Locals("userRole", string(role))
		}
		if name, ok := sess.Get(utils.SessionKeyUserName).(string); ok {
			c.Locals("userName", name)
		}
		if email, ok := sess.Get(utils.SessionKeyUserEmail).(string); ok {
			c.Locals("userEmail", email)
		}
		return c.Next()
	}
}

// rootRedirector oturum durumuna ve role göre ana sayfayı seçer.
func rootRedirector(c *fiber.Ctx) error {
	userIDRaw := c.Locals("userID")
	if userIDRaw == nil {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	role, _ := c.Locals("userRole").(string)
	switch models.Role(role) {
	case models.RoleSuperAdmin:
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	case models.RolePlanner:
		return c.Redirect("/panel/home", fiber.StatusFound)
	default:
		return c.Redirect("/auth/profile", fiber.StatusFound)
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/main_layout")
	}
}
