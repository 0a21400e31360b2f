package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrdenis/adboard-api/internal/apperrors"
	"github.com/shrdenis/adboard-api/internal/models"
	"github.com/shrdenis/adboard-api/internal/storage/memory"
	"github.com/shrdenis/adboard-api/internal/utils"
)

// newThrottledApp поднимает приложение с раздельными лимитами
// для анонимных и аутентифицированных запросов
func newThrottledApp(t *testing.T, anonMax, userMax int) (*fiber.App, *memory.Stores, *utils.JWTService) {
	t.Helper()

	stores := memory.NewStores()
	jwtService := utils.NewJWTService("test-secret")

	app := fiber.New(fiber.Config{ErrorHandler: apperrors.ErrorHandler})
	app.Use(OptionalAuthMiddleware(jwtService, stores.Users()))
	app.Use(ThrottleAnon(anonMax))
	app.Use(ThrottleUser(userMax))
	app.Get("/ping", func(c fiber.Ctx) error {
		return c.SendString("pong")
	})

	return app, stores, jwtService
}

func throttledUser(t *testing.T, stores *memory.Stores, jwtService *utils.JWTService, username string) string {
	t.Helper()

	user := &models.User{ID: uuid.New(), Username: username, CreatedAt: time.Now()}
	require.NoError(t, stores.Users().Create(context.Background(), user))

	token, err := jwtService.GenerateToken(user.ID)
	require.NoError(t, err)
	return token
}

func ping(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest("GET", "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestThrottleBudgets(t *testing.T) {
	app, stores, jwtService := newThrottledApp(t, 1, 2)
	tokenA := throttledUser(t, stores, jwtService, "ivan")
	tokenB := throttledUser(t, stores, jwtService, "petr")

	t.Run("AnonLimited", func(t *testing.T) {
		assert.Equal(t, fiber.StatusOK, ping(t, app, "").StatusCode)

		resp := ping(t, app, "")
		require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "превышен лимит запросов, попробуйте позже", body["error"])
	})

	t.Run("UserBudgetSeparate", func(t *testing.T) {
		// Анонимный лимит уже исчерпан, бюджет пользователя не тронут
		assert.Equal(t, fiber.StatusOK, ping(t, app, tokenA).StatusCode)
		assert.Equal(t, fiber.StatusOK, ping(t, app, tokenA).StatusCode)
		assert.Equal(t, fiber.StatusTooManyRequests, ping(t, app, tokenA).StatusCode)
	})

	t.Run("PerUserKey", func(t *testing.T) {
		// Лимит считается по пользователю, а не на всех сразу
		assert.Equal(t, fiber.StatusOK, ping(t, app, tokenB).StatusCode)
	})
}
