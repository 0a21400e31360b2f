package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/shrdenis/adboard-api/internal/apperrors"
	"github.com/shrdenis/adboard-api/internal/models"
	"github.com/shrdenis/adboard-api/internal/storage"
	"github.com/shrdenis/adboard-api/internal/utils"
)

const userLocalsKey = "user"

// CurrentUser возвращает принципала запроса.
// nil означает анонимного пользователя.
func CurrentUser(c fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

// OptionalAuthMiddleware разбирает Bearer токен, если он передан,
// и кладет пользователя в контекст запроса. Запросы без заголовка
// Authorization проходят дальше как анонимные; запросы с неверным
// токеном отклоняются.
func OptionalAuthMiddleware(jwtService *utils.JWTService, users storage.UserStore) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		// Проверяем Bearer токен
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return apperrors.ErrAuthenticationRequired
		}

		userID, err := jwtService.ExtractUserID(parts[1])
		if err != nil {
			return apperrors.ErrAuthenticationRequired
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.ErrAuthenticationRequired
			}
			return err
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// RequireAuth отклоняет анонимные запросы.
// Ставится после OptionalAuthMiddleware на защищенных маршрутах.
func RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return apperrors.ErrAuthenticationRequired
		}
		return c.Next()
	}
}
