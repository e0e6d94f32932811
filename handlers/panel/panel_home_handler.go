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

// PanelHomeHandler organizatör paneli ana sayfası.
type PanelHomeHandler struct {
	eventService services.IEventService
}

// NewPanelHomeHandler yeni bir PanelHomeHandler örneği oluşturur.
func NewPanelHomeHandler() *PanelHomeHandler {
	return &PanelHomeHandler{eventService: services.NewEventService()}
}

// Home GET /panel/home, yaklaşan etkinliklerin kısa listesi.
func (h *PanelHomeHandler) Home(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)

	params := queryparams.DefaultListParams("starts_at")
	params.PerPage = 5
	result, err := h.eventService.GetEventsForOrganizer(c.UserContext(), middlewares.CallerFromLocals(c), params)
	if err != nil {
		configslog.Log.Error("Panel - Home Error", zap.Error(err))
		result = &queryparams.PaginatedResult{}
	}

	userName, _ := c.Locals("userName").(string)
	renderData := fiber.Map{
		"Title":    "Panel",
		"UserName": userName,
		"Events":   result,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/home", "layouts/panel_layout", renderData, http.StatusOK)
}
