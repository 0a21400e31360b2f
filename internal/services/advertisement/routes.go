package advertisement

import (
	"github.com/gofiber/fiber/v3"
	"github.com/shrdenis/adboard-api/internal/middleware"
)

// SetupRoutes настраивает маршруты для API объявлений.
// Чтение открыто для всех, изменения требуют аутентификации.
func (s *AdvertisementService) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/advertisements")

	// Список и просмотр доступны анониму в пределах видимости
	api.Get("/", s.ListAdvertisements)
	api.Get("/:id", s.GetAdvertisement)

	// Мутации — только для аутентифицированных
	api.Post("/", s.CreateAdvertisement, middleware.RequireAuth())
	api.Put("/:id", s.UpdateAdvertisement, middleware.RequireAuth())
	api.Patch("/:id", s.PartialUpdateAdvertisement, middleware.RequireAuth())
	api.Delete("/:id", s.DeleteAdvertisement, middleware.RequireAuth())
}
