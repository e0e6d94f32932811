package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/middlewares"
	"etkinlik.link/models"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PublicEventHandler anahtar üzerinden erişilen herkese açık etkinlik sayfası.
type PublicEventHandler struct {
	eventService        services.IEventService
	registrationService services.IRegistrationService
	ticketService       services.ITicketService
	reviewService       services.IReviewService
}

// NewPublicEventHandler yeni bir PublicEventHandler örneği oluşturur.
func NewPublicEventHandler() *PublicEventHandler {
	return &PublicEventHandler{
		eventService:        services.NewEventService(),
		registrationService: services.NewRegistrationService(),
		ticketService:       services.NewTicketService(),
		reviewService:       services.NewReviewService(),
	}
}

// ShowEvent GET /e/:key, etkinlik sayfası ve yayındaki formlar.
func (h *PublicEventHandler) ShowEvent(c *fiber.Ctx) error {
	key := c.Params("key")

	event, err := h.eventService.GetEventByKey(c.UserContext(), key)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Etkinlik Bulunamadı"})
	}

	published := make([]models.EventForm, 0, len(event.Forms))
	for _, form := range event.Forms {
		if form.Status == models.FormStatusPublished {
			published = append(published, form)
		}
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	return c.Render("public/event", fiber.Map{
		"Title":        event.Title,
		"Event":        event,
		"Forms":        published,
		"FlashSuccess": flashData.Success,
		"FlashError":   flashData.Error,
	})
}

// SubmitForm POST /e/:key/forms/:formType, sayfadan form gönderimi.
// Cevaplar form alanlarından okunur; name/email alanları kimlik olarak ayrılır.
func (h *PublicEventHandler) SubmitForm(c *fiber.Ctx) error {
	key := c.Params("key")
	formType := models.FormType(c.Params("formType"))
	redirectPath := "/e/" + key

	event, err := h.eventService.GetEventByKey(c.UserContext(), key)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Etkinlik Bulunamadı"})
	}

	answers := map[string]interface{}{}
	form := event.FormOfType(formType)
	if form != nil {
		for _, q := range form.Questions {
			if v := c.FormValue(q.FieldKey); v != "" {
				answers[q.FieldKey] = v
			}
		}
	}

	identity := services.SubmitterIdentity{
		Name:  c.FormValue("name"),
		Email: c.FormValue("email"),
	}
	caller := middlewares.CallerFromLocals(c)
	if !caller.IsAnonymous() {
		userID := caller.UserID
		identity.UserID = &userID
		if identity.Email == "" {
			identity.Email = caller.Email
		}
	}

	_, err = h.registrationService.SubmitForm(c.UserContext(), event.ID, formType, answers, identity)
	if err != nil {
		var validationErr *services.ValidationError
		errMsg := "Başvuru gönderilemedi."
		switch {
		case errors.As(err, &validationErr):
			errMsg = validationErr.Error()
		case errors.Is(err, services.ErrFormNotPublished),
			errors.Is(err, services.ErrDuplicateSubmission),
			errors.Is(err, services.ErrInvalidFormType):
			errMsg = err.Error()
		default:
			configslog.Log.Error("Public - SubmitForm Error", zap.String("key", key), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Başvurunuz alındı. Onay sonrası e-posta ile bilgilendirileceksiniz.")
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

// IssueTicket POST /e/:key/tickets, oturum açmış kullanıcıya bilet keser.
func (h *PublicEventHandler) IssueTicket(c *fiber.Ctx) error {
	key := c.Params("key")
	redirectPath := "/e/" + key

	event, err := h.eventService.GetEventByKey(c.UserContext(), key)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Etkinlik Bulunamadı"})
	}

	caller := middlewares.CallerFromLocals(c)
	holder := services.SubmitterIdentity{
		Name:  c.FormValue("name"),
		Email: c.FormValue("email"),
	}
	ticket, err := h.ticketService.IssueTicket(c.UserContext(), event.ID, holder, caller)
	if err != nil {
		errMsg := "Bilet alınamadı."
		if errors.Is(err, services.ErrTicketExists) || errors.Is(err, services.ErrUnauthorized) {
			errMsg = err.Error()
		} else {
			configslog.Log.Error("Public - IssueTicket Error", zap.String("key", key), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Biletiniz hazır. Kodunuz: %s", ticket.Code))
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

// SubmitReview POST /e/:key/reviews, etkinlik değerlendirmesi.
func (h *PublicEventHandler) SubmitReview(c *fiber.Ctx) error {
	key := c.Params("key")
	redirectPath := "/e/" + key

	event, err := h.eventService.GetEventByKey(c.UserContext(), key)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Etkinlik Bulunamadı"})
	}

	rating, err := strconv.Atoi(c.FormValue("rating", "0"))
	if err != nil {
		rating = 0
	}
	comment := c.FormValue("comment")

	_, err = h.reviewService.SubmitReview(c.UserContext(), event.ID, rating, comment, middlewares.CallerFromLocals(c))
	if err != nil {
		errMsg := "Değerlendirme kaydedilemedi."
		if errors.Is(err, services.ErrReviewExists) ||
			errors.Is(err, services.ErrReviewInvalidScore) ||
			errors.Is(err, services.ErrUnauthorized) {
			errMsg = err.Error()
		} else {
			configslog.Log.Error("Public - SubmitReview Error", zap.String("key", key), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Değerlendirmeniz alındı, onay sonrası yayınlanacak.")
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}
