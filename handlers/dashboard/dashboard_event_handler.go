package handlers

import (
	"errors"
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

// DashboardEventHandler tüm etkinliklerin yönetimi (Admin).
type DashboardEventHandler struct {
	service services.IEventService
}

// NewDashboardEventHandler yeni bir DashboardEventHandler örneği oluşturur.
func NewDashboardEventHandler() *DashboardEventHandler {
	return &DashboardEventHandler{service: services.NewEventService()}
}

// ListEvents GET /dashboard/events
func (h *DashboardEventHandler) ListEvents(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetAllEventsPaginated(c.UserContext(), middlewares.CallerFromLocals(c), params)

	renderData := fiber.Map{
		"Title":  "Tüm Etkinlikler",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Etkinlikler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Event{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListEvents Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/events/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// DeleteEvent POST|DELETE /dashboard/events/delete/:id
func (h *DashboardEventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/events")
	}

	err = h.service.DeleteEvent(c.UserContext(), uint(id), middlewares.CallerFromLocals(c))
	if err != nil {
		if !errors.Is(err, services.ErrEventNotFound) {
			configslog.Log.Error("Dashboard - DeleteEvent Error", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Silme hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik silindi.")
	}
	return c.Redirect("/dashboard/events", fiber.StatusSeeOther)
}
