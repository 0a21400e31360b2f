package favorite

import (
	"github.com/gofiber/fiber/v3"
	"github.com/shrdenis/adboard-api/internal/middleware"
)

// SetupRoutes настраивает маршруты избранного поверх API объявлений.
// Регистрируется до маршрутов объявлений, чтобы статический путь
// /favorites не перехватывался параметром /:id.
func (s *FavoriteService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/advertisements")

	// Список избранных объявлений текущего пользователя
	api.Get("/favorites", s.GetFavorites, middleware.RequireAuth())

	// Добавление и удаление из избранного
	api.Post("/:id/favorite", s.AddToFavorites, middleware.RequireAuth())
	api.Delete("/:id/favorite", s.RemoveFromFavorites, middleware.RequireAuth())
}
