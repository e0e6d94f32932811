package middlewares

import (
	"etkinlik.link/models"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// CallerFromLocals session middleware'inin doldurduğu locals'tan Caller üretir.
// Oturum yoksa anonim (UserID=0) döner.
func CallerFromLocals(c *fiber.Ctx) services.Caller {
	caller := services.Caller{}
	if id, ok := c.Locals("userID").(uint); ok {
		caller.UserID = id
	}
	if role, ok := c.Locals("userRole").(string); ok {
		caller.Role = models.Role(role)
	}
	if email, ok := c.Locals("userEmail").(string); ok {
		caller.Email = email
	}
	return caller
}

func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts("text/html", "application/json") == "application/json" ||
		c.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON
}

// AuthMiddleware oturum zorunluluğu. JSON isteklerinde 401, sayfalarda
// login'e yönlendirme yapar.
func AuthMiddleware(c *fiber.Ctx) error {
	caller := CallerFromLocals(c)
	if caller.IsAnonymous() {
		if wantsJSON(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum açmanız gerekiyor"})
		}
		return c.Redirect("/auth/login", fiber.StatusFound)
	}
	return c.Next()
}

// GuestMiddleware oturum açmış kullanıcıyı misafir sayfalarından uzaklaştırır.
func GuestMiddleware(c *fiber.Ctx) error {
	if !CallerFromLocals(c).IsAnonymous() {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Next()
}

// StatusMiddleware hesabın hâlâ aktif olduğunu doğrular.
func StatusMiddleware(c *fiber.Ctx) error {
	caller := CallerFromLocals(c)
	if caller.IsAnonymous() {
		return c.Next() // AuthMiddleware zaten yakalar
	}
	user, err := services.NewUserService().GetUserByID(c.UserContext(), caller.UserID)
	if err != nil || !user.IsActive {
		if wantsJSON(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "hesabınız pasif durumda"})
		}
		return c.Redirect("/auth/logout", fiber.StatusFound)
	}
	return c.Next()
}

// RequireRoles verilen rollerden birini şart koşar.
func RequireRoles(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		caller := CallerFromLocals(c)
		if !allowed[caller.Role] {
			if wantsJSON(c) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "bu işlem için yetkiniz yok"})
			}
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequirePlanner organizatör veya admin şart koşar.
func RequirePlanner() fiber.Handler {
	return RequireRoles(models.RolePlanner, models.RoleSuperAdmin)
}

// RequireSuperAdmin yalnızca sistem yöneticisi.
func RequireSuperAdmin() fiber.Handler {
	return RequireRoles(models.RoleSuperAdmin)
}
