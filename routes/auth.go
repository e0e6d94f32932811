package routes

import (
	auth_handlers "etkinlik.link/handlers/auth"
	"etkinlik.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App) {
	authHandler := auth_handlers.NewAuthHandler()
	authGroup := app.Group("/auth")

	// Use ile bağlanan middleware tüm /auth yollarını kapsayacağından
	// misafir ve oturum kuralları rota bazında verilir.
	guest := middlewares.GuestMiddleware
	auth := middlewares.AuthMiddleware

	authGroup.Get("/login", guest, authHandler.ShowLogin)
	authGroup.Post("/login", guest, authHandler.Login)
	authGroup.Get("/register", guest, authHandler.ShowRegister)
	authGroup.Post("/register", guest, authHandler.Register)

	authGroup.Get("/logout", auth, authHandler.Logout)
	authGroup.Post("/logout", auth, authHandler.Logout)
	authGroup.Get("/profile", auth, authHandler.Profile)
	authGroup.Post("/profile/update-password", auth, authHandler.UpdatePassword)
}
