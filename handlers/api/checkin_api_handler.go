package api

import (
	"errors"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/middlewares"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckInAPIHandler giriş kontrol uçları.
type CheckInAPIHandler struct {
	service services.ICheckInService
}

// NewCheckInAPIHandler yeni bir CheckInAPIHandler örneği oluşturur.
func NewCheckInAPIHandler() *CheckInAPIHandler {
	return &CheckInAPIHandler{service: services.NewCheckInService()}
}

// NewCheckInAPIHandlerWithService testler için servis enjeksiyonu.
func NewCheckInAPIHandlerWithService(service services.ICheckInService) *CheckInAPIHandler {
	return &CheckInAPIHandler{service: service}
}

func checkInError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownAttendanceOrigin):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrSubmissionNotApproved):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAttendanceNotFound), errors.Is(err, services.ErrEventNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		configslog.Log.Error("API: beklenmeyen check-in hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "sunucu hatası"})
	}
}

type checkInRequest struct {
	Origin services.Origin `json:"origin"`
	ID     uint            `json:"id"`
	Method string          `json:"method"`
}

// CheckIn POST /check-ins
func (h *CheckInAPIHandler) CheckIn(c *fiber.Ctx) error {
	var req checkInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	if req.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kayıt kimliği zorunludur"})
	}

	ctx, cancel := apiContext(c)
	defer cancel()

	result, err := h.service.CheckIn(ctx, services.CheckInTarget{Origin: req.Origin, ID: req.ID}, middlewares.CallerFromLocals(c), req.Method)
	if err != nil {
		return checkInError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// Stats GET /events/:id/check-ins/stats
func (h *CheckInAPIHandler) Stats(c *fiber.Ctx) error {
	eventID, err := eventIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := apiContext(c)
	defer cancel()

	caller := middlewares.CallerFromLocals(c)
	stats, err := h.service.GetStats(ctx, eventID, caller)
	if err != nil {
		return checkInError(c, err)
	}
	recent, err := h.service.RecentActivity(ctx, eventID, c.QueryInt("limit", 0), caller)
	if err != nil {
		return checkInError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"stats":          stats,
		"recentCheckIns": recent,
	})
}
