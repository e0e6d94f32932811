package handlers

import (
	"net/http"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/middlewares"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHomeHandler admin ana sayfası.
type DashboardHomeHandler struct {
	eventService services.IEventService
	userService  services.IUserService
}

// NewDashboardHomeHandler yeni bir DashboardHomeHandler örneği oluşturur.
func NewDashboardHomeHandler() *DashboardHomeHandler {
	return &DashboardHomeHandler{
		eventService: services.NewEventService(),
		userService:  services.NewUserService(),
	}
}

// Home GET /dashboard/home, genel sayılar.
func (h *DashboardHomeHandler) Home(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	caller := middlewares.CallerFromLocals(c)

	params := queryparams.DefaultListParams("created_at")
	params.PerPage = 1

	var totalEvents, totalUsers int64
	if result, err := h.eventService.GetAllEventsPaginated(c.UserContext(), caller, params); err == nil {
		totalEvents = result.Meta.TotalItems
	} else {
		configslog.Log.Error("Dashboard - Home etkinlik sayısı alınamadı", zap.Error(err))
	}
	if result, err := h.userService.GetAllUsersPaginated(c.UserContext(), caller, params); err == nil {
		totalUsers = result.Meta.TotalItems
	} else {
		configslog.Log.Error("Dashboard - Home kullanıcı sayısı alınamadı", zap.Error(err))
	}

	renderData := fiber.Map{
		"Title":       "Yönetim",
		"TotalEvents": totalEvents,
		"TotalUsers":  totalUsers,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/home", "layouts/dashboard_layout", renderData, http.StatusOK)
}
