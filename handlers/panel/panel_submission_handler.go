package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

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

// PanelSubmissionHandler organizatörün başvuru moderasyon ekranları.
type PanelSubmissionHandler struct {
	service services.IRegistrationService
}

// NewPanelSubmissionHandler yeni bir PanelSubmissionHandler örneği oluşturur.
func NewPanelSubmissionHandler() *PanelSubmissionHandler {
	return &PanelSubmissionHandler{service: services.NewRegistrationService()}
}

// ListSubmissions GET /panel/events/:id/submissions
// Tür ve durum filtreleri query paramlarından gelir.
func (h *PanelSubmissionHandler) ListSubmissions(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.ListSubmissions(c.UserContext(), eventID, params, middlewares.CallerFromLocals(c))

	renderData := fiber.Map{
		"Title":   "Başvurular",
		"EventID": eventID,
		"Result":  result,
		"Params":  params,
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) || errors.Is(err, services.ErrEventNotFound) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
			return c.Redirect("/panel/events")
		}
		renderData[renderer.FlashErrorKeyView] = "Başvurular listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.FormSubmission{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListSubmissions Error", zap.Uint("eventID", eventID), zap.Error(err))
	}
	return renderer.Render(c, "panel/submissions/list", "layouts/panel_layout", renderData, http.StatusOK)
}

func moderationDecision(c *fiber.Ctx) (models.SubmissionStatus, error) {
	decision := models.SubmissionStatus(c.FormValue("decision"))
	if decision != models.SubmissionStatusApproved && decision != models.SubmissionStatusRejected {
		return "", errors.New("geçersiz karar")
	}
	return decision, nil
}

// Moderate POST /panel/events/:id/submissions/:sid/moderate
func (h *PanelSubmissionHandler) Moderate(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}
	sid, ok := parseIDParam(c, "sid")
	redirectPath := fmt.Sprintf("/panel/events/%d/submissions", eventID)
	if !ok {
		return c.Redirect(redirectPath)
	}

	decision, err := moderationDecision(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	additionalInfo := c.FormValue("additional_info")
	if _, err := h.service.Moderate(c.UserContext(), sid, decision, additionalInfo, middlewares.CallerFromLocals(c)); err != nil {
		if !errors.Is(err, services.ErrSubmissionNotFound) && !errors.Is(err, services.ErrForbidden) {
			configslog.Log.Error("Panel - Moderate Error", zap.Uint("sid", sid), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Moderasyon hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Başvuru güncellendi.")
	}
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

// BulkModerate POST /panel/events/:id/submissions/bulk
// Seçili başvuru ID'leri "ids" alanında virgülle gelir.
func (h *PanelSubmissionHandler) BulkModerate(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}
	redirectPath := fmt.Sprintf("/panel/events/%d/submissions", eventID)

	decision, err := moderationDecision(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}
	formType := models.FormType(c.FormValue("form_type"))

	var ids []uint
	for _, raw := range strings.Split(c.FormValue("ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz başvuru listesi.")
			return c.Redirect(redirectPath, fiber.StatusSeeOther)
		}
		ids = append(ids, uint(id))
	}

	modified, err := h.service.BulkModerate(c.UserContext(), eventID, formType, ids, decision, middlewares.CallerFromLocals(c))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Toplu moderasyon hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
			fmt.Sprintf("%d başvuru güncellendi.", modified))
	}
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}
