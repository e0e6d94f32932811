package routes

import (
	"io"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// newTestApp in-memory veritabanı üzerinde tam rota ağacını kurar.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Event{}, &models.EventForm{}, &models.EventQuestion{},
		&models.FormSubmission{}, &models.Ticket{}, &models.Review{}, &models.SentEmail{},
	))
	configsdatabase.SetDB(db)

	engine := html.New("../views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main_layout",
	})
	SetupRoutes(app)
	return app, db
}

func seedPublicEvent(t *testing.T, db *gorm.DB) *models.Event {
	t.Helper()

	organizer := &models.User{
		Name:         "Organizatör",
		Email:        "organizer@etkinlik.link",
		PasswordHash: "hash",
		Role:         models.RolePlanner,
		IsActive:     true,
	}
	require.NoError(t, db.Create(organizer).Error)

	event := &models.Event{
		OrganizerID: organizer.ID,
		Key:         "acik-etkinlik",
		Title:       "Açık Etkinlik",
		StartsAt:    time.Now().Add(24 * time.Hour),
		IsEnabled:   true,
		Forms: []models.EventForm{
			{FormType: models.FormTypeAttendee, Status: models.FormStatusPublished},
		},
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

// Herkese açık etkinlik sayfası oturum olmadan açılabilmelidir;
// korumalı uçların middleware'leri bu rotaya sızmamalıdır.
func TestPublicEventPageWithoutSession(t *testing.T) {
	app, db := newTestApp(t)
	event := seedPublicEvent(t, db)

	req := httptest.NewRequest("GET", "/e/"+event.Key, nil)
	req.Header.Set("Accept", "text/html")
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Açık Etkinlik")
}

// Bilinmeyen sayfa oturum olmadan login'e değil 404'e gitmelidir.
func TestUnknownPageReturns404WithoutSession(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/boyle-bir-sayfa-yok", nil)
	req.Header.Set("Accept", "text/html")
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "404")
}

// JSON istemcileri için 404 gövdesi de JSON olmalıdır.
func TestUnknownRouteReturnsJSON404(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/yok/boyle/bir/uc", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
}

// Misafir sayfaları oturumsuz açılır; profil oturum ister. Oturum açan
// kullanıcı profil sayfasına misafir kuralına takılmadan erişebilmelidir.
func TestAuthRouteMiddlewareScope(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/auth/login", nil)
	req.Header.Set("Accept", "text/html")
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/auth/profile", nil)
	req.Header.Set("Accept", "text/html")
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))

	// Kayıt + giriş + profil akışı.
	form := url.Values{}
	form.Set("name", "Ali Veli")
	form.Set("email", "ali@ornek.com")
	form.Set("password", "cokgizli123")
	req = httptest.NewRequest("POST", "/auth/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	require.Less(t, resp.StatusCode, 400)

	form = url.Values{}
	form.Set("email", "ali@ornek.com")
	form.Set("password", "cokgizli123")
	req = httptest.NewRequest("POST", "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	setCookie := resp.Header.Get("Set-Cookie")
	require.NotEmpty(t, setCookie)
	sessionCookie := strings.SplitN(setCookie, ";", 2)[0]

	req = httptest.NewRequest("GET", "/auth/profile", nil)
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Cookie", sessionCookie)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Moderasyon ve check-in uçları oturumsuz erişimde 401 dönmeye devam etmelidir.
func TestProtectedAPIStillRequiresSession(t *testing.T) {
	app, _ := newTestApp(t)

	protectedPaths := []struct {
		method string
		path   string
	}{
		{"GET", "/events/1/submissions"},
		{"PATCH", "/events/1/submissions/1/approve"},
		{"POST", "/events/1/submissions/reject"},
		{"POST", "/check-ins"},
		{"GET", "/events/1/check-ins/stats"},
	}
	for _, route := range protectedPaths {
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Accept", "application/json")
		resp, err := app.Test(req, 10000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}

	// Form gönderim ucu ise oturumsuz da çalışır (servis katmanı doğrular).
	req := httptest.NewRequest("POST", "/events/999/forms/attendee", nil)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.NotEqual(t, fiber.StatusUnauthorized, resp.StatusCode)
}
