package main

import (
	"os"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// .env yoksa ortam değişkenleriyle devam edilir.
	}

	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		AppName:     "etkinlik.link",
		ViewsLayout: "layouts/main_layout",
	})

	routes.SetupRoutes(app)

	addr := ":" + envOrDefault("APP_PORT", "3000")
	configslog.SLog.Infof("Sunucu dinlemede: %s", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
