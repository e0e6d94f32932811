package handlers

import (
	"errors"
	"fmt"
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

// PanelReviewHandler organizatörün değerlendirme moderasyonu ve yanıtları.
type PanelReviewHandler struct {
	service services.IReviewService
}

// NewPanelReviewHandler yeni bir PanelReviewHandler örneği oluşturur.
func NewPanelReviewHandler() *PanelReviewHandler {
	return &PanelReviewHandler{service: services.NewReviewService()}
}

// ListReviews GET /panel/events/:id/reviews
func (h *PanelReviewHandler) ListReviews(c *fiber.Ctx) error {
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

	result, err := h.service.ListReviews(c.UserContext(), eventID, params, middlewares.CallerFromLocals(c))

	renderData := fiber.Map{
		"Title":   "Değerlendirmeler",
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
		renderData[renderer.FlashErrorKeyView] = "Değerlendirmeler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Review{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListReviews Error", zap.Uint("eventID", eventID), zap.Error(err))
	}
	return renderer.Render(c, "panel/reviews/list", "layouts/panel_layout", renderData, http.StatusOK)
}

// ModerateReview POST /panel/events/:id/reviews/:rid/moderate
func (h *PanelReviewHandler) ModerateReview(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}
	rid, ok := parseIDParam(c, "rid")
	redirectPath := fmt.Sprintf("/panel/events/%d/reviews", eventID)
	if !ok {
		return c.Redirect(redirectPath)
	}

	decision, err := moderationDecision(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	if err := h.service.ModerateReview(c.UserContext(), rid, decision, middlewares.CallerFromLocals(c)); err != nil {
		if !errors.Is(err, services.ErrReviewNotFound) && !errors.Is(err, services.ErrForbidden) {
			configslog.Log.Error("Panel - ModerateReview Error", zap.Uint("rid", rid), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Moderasyon hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Değerlendirme güncellendi.")
	}
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

// ReplyToReview POST /panel/events/:id/reviews/:rid/reply
func (h *PanelReviewHandler) ReplyToReview(c *fiber.Ctx) error {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Redirect("/panel/events")
	}
	rid, ok := parseIDParam(c, "rid")
	redirectPath := fmt.Sprintf("/panel/events/%d/reviews", eventID)
	if !ok {
		return c.Redirect(redirectPath)
	}

	reply := c.FormValue("reply")
	if err := h.service.ReplyToReview(c.UserContext(), rid, reply, middlewares.CallerFromLocals(c)); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yanıt kaydedilemedi: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yanıtınız kaydedildi.")
	}
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}
