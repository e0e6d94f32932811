package handlers

import (
	"net/http"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/middlewares"
	"etkinlik.link/models"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardUserHandler kullanıcı yönetimi (Admin).
type DashboardUserHandler struct {
	service services.IUserService
}

// NewDashboardUserHandler yeni bir DashboardUserHandler örneği oluşturur.
func NewDashboardUserHandler() *DashboardUserHandler {
	return &DashboardUserHandler{service: services.NewUserService()}
}

// ListUsers GET /dashboard/users
func (h *DashboardUserHandler) ListUsers(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetAllUsersPaginated(c.UserContext(), middlewares.CallerFromLocals(c), params)

	renderData := fiber.Map{
		"Title":  "Kullanıcılar",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kullanıcılar listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.User{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListUsers Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/users/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// SetActive POST /dashboard/users/:id/status
// Hesap aktifleştirme/pasifleştirme.
func (h *DashboardUserHandler) SetActive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/users")
	}
	active := c.FormValue("active", "false")
	isActive := active == "true" || active == "on"

	err = h.service.SetActive(c.UserContext(), uint(id), isActive, middlewares.CallerFromLocals(c))
	if err != nil {
		configslog.Log.Error("Dashboard - SetActive Error", zap.Int("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Durum güncellenemedi: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kullanıcı durumu güncellendi.")
	}
	return c.Redirect("/dashboard/users", fiber.StatusSeeOther)
}
