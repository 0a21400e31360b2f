package auth

import (
	"github.com/gofiber/fiber/v3"
	"github.com/shrdenis/adboard-api/internal/middleware"
)

// SetupRoutes регистрирует маршруты в Fiber
func (s *AuthService) SetupRoutes(app *fiber.App) {
	app.Post("/api/auth/register", s.RegisterHandler)
	app.Post("/api/auth/login", s.LoginHandler)

	// Профиль текущего пользователя
	app.Get("/api/auth/me", func(c fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		return c.JSON(fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		})
	}, middleware.RequireAuth())
}
