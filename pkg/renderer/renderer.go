package renderer

import (
	"etkinlik.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// View katmanında kullanılan flash anahtarları.
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages flash verilerini render haritasına taşır.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashData) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}

// Render ortak layout ile view render eder. status verilmezse 200 kullanılır.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	code := fiber.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["UserName"]; !ok {
		if name, ok := c.Locals("userName").(string); ok {
			data["UserName"] = name
		}
	}
	return c.Status(code).Render(view, data, layout)
}
