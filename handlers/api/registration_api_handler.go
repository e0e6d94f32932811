package api

import (
	"context"
	"errors"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/middlewares"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const requestTimeout = 5 * time.Second

// RegistrationAPIHandler kayıt akışının JSON uçları.
type RegistrationAPIHandler struct {
	service services.IRegistrationService
}

// NewRegistrationAPIHandler yeni bir RegistrationAPIHandler örneği oluşturur.
func NewRegistrationAPIHandler() *RegistrationAPIHandler {
	return &RegistrationAPIHandler{service: services.NewRegistrationService()}
}

// NewRegistrationAPIHandlerWithService testler için servis enjeksiyonu.
func NewRegistrationAPIHandlerWithService(service services.IRegistrationService) *RegistrationAPIHandler {
	return &RegistrationAPIHandler{service: service}
}

func apiContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// registrationError servis hatasını HTTP durum koduna çevirir.
// Bilinmeyen hatalar iç detay sızdırmadan 500 döner.
func registrationError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":         validationErr.Error(),
			"missingFields": validationErr.Fields,
		})
	case errors.Is(err, services.ErrInvalidFormType), errors.Is(err, services.ErrInvalidDecision):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrFormNotPublished):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrEventNotFound), errors.Is(err, services.ErrSubmissionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateSubmission):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		configslog.Log.Error("API: beklenmeyen kayıt hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "sunucu hatası"})
	}
}

func eventIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errors.New("geçersiz etkinlik kimliği")
	}
	return uint(id), nil
}

type submitFormRequest struct {
	Name    string                 `json:"name"`
	Email   string                 `json:"email"`
	Answers map[string]interface{} `json:"answers"`
}

// SubmitForm POST /events/:id/forms/:formType
func (h *RegistrationAPIHandler) SubmitForm(c *fiber.Ctx) error {
	eventID, err := eventIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	formType := models.FormType(c.Params("formType"))

	var req submitFormRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	identity := services.SubmitterIdentity{Name: req.Name, Email: req.Email}
	caller := middlewares.CallerFromLocals(c)
	if !caller.IsAnonymous() {
		userID := caller.UserID
		identity.UserID = &userID
		if identity.Email == "" {
			identity.Email = caller.Email
		}
	}

	ctx, cancel := apiContext(c)
	defer cancel()

	submission, err := h.service.SubmitForm(ctx, eventID, formType, req.Answers, identity)
	if err != nil {
		return registrationError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"submission": submission})
}

// Moderate PATCH /events/:id/submissions/:sid/approve ve .../reject
func (h *RegistrationAPIHandler) Moderate(decision models.SubmissionStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := eventIDParam(c); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		sid, err := c.ParamsInt("sid")
		if err != nil || sid <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz başvuru kimliği"})
		}

		var req struct {
			AdditionalInfo string `json:"additionalInfo"`
		}
		// Gövde opsiyonel; açıklama yalnızca red e-postasında kullanılır.
		_ = c.BodyParser(&req)

		ctx, cancel := apiContext(c)
		defer cancel()

		submission, err := h.service.Moderate(ctx, uint(sid), decision, req.AdditionalInfo, middlewares.CallerFromLocals(c))
		if err != nil {
			return registrationError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"submission": submission})
	}
}

type bulkModerateRequest struct {
	FormType models.FormType `json:"formType"`
	IDs      []uint          `json:"ids"`
}

// BulkModerate POST /events/:id/submissions/approve ve .../reject
func (h *RegistrationAPIHandler) BulkModerate(decision models.SubmissionStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := eventIDParam(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		var req bulkModerateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
		}

		ctx, cancel := apiContext(c)
		defer cancel()

		modified, err := h.service.BulkModerate(ctx, eventID, req.FormType, req.IDs, decision, middlewares.CallerFromLocals(c))
		if err != nil {
			return registrationError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"modified": modified})
	}
}

// ListSubmissions GET /events/:id/submissions
func (h *RegistrationAPIHandler) ListSubmissions(c *fiber.Ctx) error {
	eventID, err := eventIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	ctx, cancel := apiContext(c)
	defer cancel()

	result, err := h.service.ListSubmissions(ctx, eventID, params, middlewares.CallerFromLocals(c))
	if err != nil {
		return registrationError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
