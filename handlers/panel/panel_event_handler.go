package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

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

// PanelEventHandler organizatörün kendi etkinliklerini yönetir.
type PanelEventHandler struct {
	service services.IEventService
}

// NewPanelEventHandler yeni bir PanelEventHandler örneği oluşturur.
func NewPanelEventHandler() *PanelEventHandler {
	return &PanelEventHandler{service: services.NewEventService()}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz kimlik.")
		return 0, false
	}
	return uint(id), true
}

// ListEvents GET /panel/events
func (h *PanelEventHandler) ListEvents(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetEventsForOrganizer(c.UserContext(), middlewares.CallerFromLocals(c), params)

	renderData := fiber.Map{
		"Title":  "Etkinliklerim",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Etkinlikler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Event{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListEvents Error", zap.Error(err))
	}
	return renderer.Render(c, "panel/events/list", "layouts/panel_layout", renderData, http.StatusOK)
}

// ShowCreateEvent GET /panel/events/create
func (h *PanelEventHandler) ShowCreateEvent(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Yeni Etkinlik",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/events/create", "layouts/panel_layout", renderData, http.StatusOK)
}

func parseEventForm(c *fiber.Ctx) (models.Event, error) {
	var event models.Event
	event.Title = c.FormValue("title")
	event.Description = c.FormValue("description")
	event.LocationText = c.FormValue("location")

	if v := c.FormValue("starts_at"); v != "" {
		t, err := time.Parse("2006-01-02T15:04", v)
		if err != nil {
			return event, fmt.Errorf("başlangıç zamanı çözümlenemedi: %w", err)
		}
		event.StartsAt = t
	}
	if v := c.FormValue("ends_at"); v != "" {
		t, err := time.Parse("2006-01-02T15:04", v)
		if err != nil {
			return event, fmt.Errorf("bitiş zamanı çözümlenemedi: %w", err)
		}
		event.EndsAt = &t
	}
	if v := c.FormValue("capacity"); v != "" {
		capacity, err := strconv.Atoi(v)
		if err != nil {
			return event, fmt.Errorf("kapasite çözümlenemedi: %w", err)
		}
		event.Capacity = capacity
	}
	enabled := c.FormValue("is_enabled", "true")
	event.IsEnabled = enabled == "true" || enabled == "on"
	return event, nil
}

// CreateEvent POST /panel/events/create
func (h *PanelEventHandler) CreateEvent(c *fiber.Ctx) error {
	event, err := parseEventForm(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/panel/events/create", fiber.StatusSeeOther)
	}

	created, err := h.service.CreateEvent(c.UserContext(), middlewares.CallerFromLocals(c), event)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		_ = flashmessages.SetFlashFormData(c, fiber.Map{"title": event.Title, "description": event.Description})
		return c.Redirect("/panel/events/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik oluşturuldu.")
	return c.Redirect(fmt.Sprintf("/panel/events/update/%d", created.ID), fiber.StatusFound)
}

// ShowUpdateEvent GET /panel/events/update/:id
func (h *PanelEventHandler) ShowUpdateEvent(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}

	event, err := h.service.GetEventByID(c.UserContext(), eventID)
	if err != nil {
		errMsg := "Etkinlik bulunamadı."
		if !errors.Is(err, services.ErrEventNotFound) {
			errMsg = "Etkinlik bilgileri alınırken hata oluştu."
			configslog.Log.Error("Panel - ShowUpdateEvent Error", zap.Uint("id", eventID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/panel/events")
	}
	if err := services.Authorize(middlewares.CallerFromLocals(c), event, services.ActionManage); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Bu etkinliğe erişiminiz yok.")
		return c.Redirect("/panel/events")
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Etkinliği Düzenle",
		"Event":    event,
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/events/update", "layouts/panel_layout", renderData, http.StatusOK)
}

// UpdateEvent POST /panel/events/update/:id
func (h *PanelEventHandler) UpdateEvent(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}
	redirectPath := fmt.Sprintf("/panel/events/update/%d", eventID)

	updates, err := parseEventForm(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	if err := h.service.UpdateEvent(c.UserContext(), eventID, middlewares.CallerFromLocals(c), updates); err != nil {
		if !errors.Is(err, services.ErrEventNotFound) && !errors.Is(err, services.ErrForbidden) {
			configslog.Log.Error("Panel - UpdateEvent Error", zap.Uint("id", eventID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik güncellendi.")
	return c.Redirect(redirectPath, fiber.StatusFound)
}

// SetFormStatus POST /panel/events/:id/forms/:formType/status
// Formu yayına alır veya taslağa çevirir.
func (h *PanelEventHandler) SetFormStatus(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}
	formType := models.FormType(c.Params("formType"))
	status := models.FormStatus(c.FormValue("status"))
	redirectPath := fmt.Sprintf("/panel/events/update/%d", eventID)

	err := h.service.SetFormStatus(c.UserContext(), eventID, formType, status, middlewares.CallerFromLocals(c))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Form durumu güncellendi.")
	}
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

// SetFormQuestions POST /panel/events/:id/forms/:formType/questions
// Soru listesini formdan gelen dizilerle komple değiştirir.
func (h *PanelEventHandler) SetFormQuestions(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}
	formType := models.FormType(c.Params("formType"))
	redirectPath := fmt.Sprintf("/panel/events/update/%d", eventID)

	var payload struct {
		Questions []models.EventQuestion `json:"questions" form:"questions"`
	}
	if err := c.BodyParser(&payload); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Soru verisi çözümlenemedi.")
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	err := h.service.SetFormQuestions(c.UserContext(), eventID, formType, payload.Questions, middlewares.CallerFromLocals(c))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Sorular kaydedildi.")
	}
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

// DeleteEvent POST|DELETE /panel/events/delete/:id
func (h *PanelEventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}

	err := h.service.DeleteEvent(c.UserContext(), eventID, middlewares.CallerFromLocals(c))
	if err != nil {
		if !errors.Is(err, services.ErrEventNotFound) {
			configslog.Log.Error("Panel - DeleteEvent Error", zap.Uint("id", eventID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Silme hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik silindi.")
	}
	return c.Redirect("/panel/events", fiber.StatusSeeOther)
}
