package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/middlewares"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelCheckInHandler organizatörün kapı görevlisi ekranı: özet sayaçlar,
// son girişler ve manuel check-in formu.
type PanelCheckInHandler struct {
	service services.ICheckInService
}

// NewPanelCheckInHandler yeni bir PanelCheckInHandler örneği oluşturur.
func NewPanelCheckInHandler() *PanelCheckInHandler {
	return &PanelCheckInHandler{service: services.NewCheckInService()}
}

// ShowDashboard GET /panel/events/:id/check-ins
func (h *PanelCheckInHandler) ShowDashboard(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}
	caller := middlewares.CallerFromLocals(c)

	stats, err := h.service.GetStats(c.UserContext(), eventID, caller)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) || errors.Is(err, services.ErrEventNotFound) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
			return c.Redirect("/panel/events")
		}
		configslog.Log.Error("Panel - ShowDashboard stats Error", zap.Uint("eventID", eventID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "İstatistikler alınamadı.")
		return c.Redirect("/panel/events")
	}

	recent, err := h.service.RecentActivity(c.UserContext(), eventID, 0, caller)
	if err != nil {
		configslog.Log.Error("Panel - ShowDashboard activity Error", zap.Uint("eventID", eventID), zap.Error(err))
		recent = nil
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":   "Giriş Kontrol",
		"EventID": eventID,
		"Stats":   stats,
		"Recent":  recent,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/checkins/dashboard", "layouts/panel_layout", renderData, http.StatusOK)
}

// CheckIn POST /panel/events/:id/check-ins
// Formdan kaynak türü ve kayıt ID'si gelir; sonuç flash mesajla gösterilir.
func (h *PanelCheckInHandler) CheckIn(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}
	redirectPath := fmt.Sprintf("/panel/events/%d/check-ins", eventID)

	recordID, ok := parseFormID(c, "record_id")
	if !ok {
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}
	target := services.CheckInTarget{
		Origin: services.Origin(c.FormValue("origin", string(services.OriginSubmission))),
		ID:     recordID,
	}

	result, err := h.service.CheckIn(c.UserContext(), target, middlewares.CallerFromLocals(c), "manual")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Check-in hatası: "+err.Error())
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	if result.IsDuplicate {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
			fmt.Sprintf("Dikkat: bu kayıt daha önce giriş yapmış (%d. giriş).", result.CheckInCount))
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Giriş kaydedildi.")
	}
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

func parseFormID(c *fiber.Ctx, field string) (uint, bool) {
	id := c.FormValue(field)
	var parsed uint
	if _, err := fmt.Sscanf(id, "%d", &parsed); err != nil || parsed == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz kayıt kimliği.")
		return 0, false
	}
	return parsed, true
}
