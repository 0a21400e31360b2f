package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"

	"github.com/shrdenis/adboard-api/internal/apperrors"
)

// ThrottleAnon ограничивает анонимные запросы по IP.
// max — запросов в минуту.
func ThrottleAnon(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		Next: func(c fiber.Ctx) bool {
			return CurrentUser(c) != nil
		},
		KeyGenerator: func(c fiber.Ctx) string {
			return "anon:" + c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return apperrors.ErrRateLimited
		},
	})
}

// ThrottleUser ограничивает запросы аутентифицированных пользователей.
// Бюджет отдельный от анонимного и считается по идентификатору пользователя.
func ThrottleUser(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		Next: func(c fiber.Ctx) bool {
			return CurrentUser(c) == nil
		},
		KeyGenerator: func(c fiber.Ctx) string {
			return "user:" + CurrentUser(c).ID.String()
		},
		LimitReached: func(c fiber.Ctx) error {
			return apperrors.ErrRateLimited
		},
	})
}
