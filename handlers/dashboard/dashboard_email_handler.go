package handlers

import (
	"net/http"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardEmailHandler gönderilen e-posta kayıtlarının izlenmesi (Admin).
// Salt okunur denetim ekranı olduğundan repo'ya doğrudan gider.
type DashboardEmailHandler struct {
	repo repositories.ISentEmailRepository
}

// NewDashboardEmailHandler yeni bir DashboardEmailHandler örneği oluşturur.
func NewDashboardEmailHandler() *DashboardEmailHandler {
	return &DashboardEmailHandler{repo: repositories.NewSentEmailRepository()}
}

// ListSentEmails GET /dashboard/emails
func (h *DashboardEmailHandler) ListSentEmails(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	emails, totalCount, err := h.repo.FindAllPaginated(c.UserContext(), params)

	renderData := fiber.Map{
		"Title":  "E-posta Kayıtları",
		"Params": params,
		"Result": &queryparams.PaginatedResult{
			Data: emails,
			Meta: queryparams.PaginationMeta{
				CurrentPage: params.Page,
				PerPage:     params.PerPage,
				TotalItems:  totalCount,
				TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
			},
		},
	}
	renderer.SetFlashMessages(renderData, flashData)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "E-posta kayıtları listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.SentEmail{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListSentEmails Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/emails/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}
