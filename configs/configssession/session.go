package configssession

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

var store *session.Store

// SetupSession cookie tabanlı session store'u hazırlar (tek sefer).
func SetupSession() *session.Store {
	if store != nil {
		return store
	}
	store = session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:etkinlik_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   os.Getenv("APP_ENV") == "production",
	})
	return store
}
