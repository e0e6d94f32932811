package auth

import (
	"errors"
	"net/http"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/services"
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler oturum ve profil işlemleri.
type AuthHandler struct {
	userService services.IUserService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{userService: services.NewUserService()}
}

// ShowLogin giriş formunu gösterir.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{"Title": "Giriş Yap"}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "auth/login", "layouts/auth_layout", renderData, http.StatusOK)
}

// Login e-posta/şifre doğrular ve oturum açar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.userService.Authenticate(c.UserContext(), email, password)
	if err != nil {
		errMsg := "Giriş yapılamadı."
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrAccountDisabled) {
			errMsg = err.Error()
		} else {
			configslog.Log.Error("Login: beklenmeyen hata", zap.String("email", email), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Login: oturum başlatılamadı", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oturum başlatılamadı.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	sess.Set(utils.SessionKeyUserID, user.ID)
	sess.Set(utils.SessionKeyUserRole, string(user.Role))
	sess.Set(utils.SessionKeyUserName, user.Name)
	sess.Set(utils.SessionKeyUserEmail, user.Email)
	if err := sess.Save(); err != nil {
		configslog.Log.Error("Login: oturum kaydedilemedi", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oturum kaydedilemedi.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	configslog.SLog.Infof("Giriş başarılı: ID %d, Rol: %s", user.ID, user.Role)
	switch user.Role {
	case models.RoleSuperAdmin:
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	case models.RolePlanner:
		return c.Redirect("/panel/home", fiber.StatusFound)
	default:
		return c.Redirect("/", fiber.StatusFound)
	}
}

// ShowRegister kayıt formunu gösterir.
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Kayıt Ol",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "auth/register", "layouts/auth_layout", renderData, http.StatusOK)
}

// Register yeni hesap açar. "organizer" kutusu işaretliyse event-planner
// rolü verilir; super-admin kaydı bu uçtan açılamaz.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")
	role := models.RoleUser
	if v := c.FormValue("organizer", "false"); v == "true" || v == "on" {
		role = models.RolePlanner
	}

	user, err := h.userService.Register(c.UserContext(), name, email, password, role)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		_ = flashmessages.SetFlashFormData(c, fiber.Map{"name": name, "email": email})
		return c.Redirect("/auth/register", fiber.StatusSeeOther)
	}

	configslog.SLog.Infof("Kayıt tamamlandı: ID %d, E-posta: %s", user.ID, user.Email)
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kayıt tamamlandı, giriş yapabilirsiniz.")
	return c.Redirect("/auth/login", fiber.StatusSeeOther)
}

// Logout oturumu sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			configslog.Log.Warn("Logout: oturum silinemedi", zap.Error(err))
		}
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}

// Profile profil sayfasını gösterir.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	user, err := h.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return c.Redirect("/auth/logout", fiber.StatusFound)
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title": "Profilim",
		"User":  user,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "auth/profile", "layouts/panel_layout", renderData, http.StatusOK)
}

// UpdatePassword mevcut şifreyi doğrulayıp yenisiyle değiştirir.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	current := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")

	if err := h.userService.UpdatePassword(c.UserContext(), userID, current, newPassword); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Şifreniz güncellendi.")
	return c.Redirect("/auth/profile", fiber.StatusSeeOther)
}
