package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrdenis/adboard-api/internal/apperrors"
	"github.com/shrdenis/adboard-api/internal/config"
	"github.com/shrdenis/adboard-api/internal/middleware"
	"github.com/shrdenis/adboard-api/internal/storage/memory"
	"github.com/shrdenis/adboard-api/internal/utils"
)

const testSecret = "test-secret"

// newTestApp поднимает приложение с маршрутами аутентификации
func newTestApp(t *testing.T) (*fiber.App, *AuthService) {
	t.Helper()

	stores := memory.NewStores()
	service := NewAuthService(&config.Config{JWTSecret: testSecret}, stores.Users())

	app := fiber.New(fiber.Config{ErrorHandler: apperrors.ErrorHandler})
	app.Use(middleware.OptionalAuthMiddleware(service.GetJWTService(), stores.Users()))
	service.SetupRoutes(app)

	return app, service
}

// doRequest выполняет запрос к тестовому приложению
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// decodeBody разбирает JSON-ответ в map
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegister(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("Success", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/auth/register", "", fiber.Map{
			"username":   "ivan",
			"password":   "надежный пароль",
			"first_name": "Иван",
			"last_name":  "Петров",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		token, ok := body["token"].(string)
		require.True(t, ok)
		require.NotEmpty(t, token)

		user := body["user"].(map[string]any)
		assert.Equal(t, "ivan", user["username"])
		assert.Equal(t, "Иван", user["first_name"])
		// Учетные данные в ответ не попадают
		assert.NotContains(t, user, "password_hash")

		// Выданный токен сразу пригоден для аутентификации
		resp = doRequest(t, app, "GET", "/api/auth/me", "Bearer "+token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "ivan", decodeBody(t, resp)["username"])
	})

	t.Run("UsernameRequired", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/auth/register", "", fiber.Map{"password": "надежный пароль"})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "username", decodeBody(t, resp)["field"])
	})

	t.Run("ShortPassword", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/auth/register", "", fiber.Map{
			"username": "petr",
			"password": "1234567",
		})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "password", decodeBody(t, resp)["field"])
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/auth/register", "", fiber.Map{
			"username": "ivan",
			"password": "другой пароль",
		})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "username", decodeBody(t, resp)["field"])
	})
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"username": "ivan",
		"password": "надежный пароль",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	t.Run("Success", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/auth/login", "", fiber.Map{
			"username": "ivan",
			"password": "надежный пароль",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		token := decodeBody(t, resp)["token"].(string)
		resp = doRequest(t, app, "GET", "/api/auth/me", "Bearer "+token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/auth/login", "", fiber.Map{
			"username": "ivan",
			"password": "не тот пароль",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/auth/login", "", fiber.Map{
			"username": "nobody",
			"password": "надежный пароль",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestInvalidToken(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("NoHeader", func(t *testing.T) {
		resp := doRequest(t, app, "GET", "/api/auth/me", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		resp := doRequest(t, app, "GET", "/api/auth/me", "Token abc", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage", func(t *testing.T) {
		resp := doRequest(t, app, "GET", "/api/auth/me", "Bearer не-токен", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := utils.NewJWTService("other-secret").GenerateToken(uuid.New())
		require.NoError(t, err)

		resp := doRequest(t, app, "GET", "/api/auth/me", "Bearer "+token, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("UnknownUserID", func(t *testing.T) {
		// Подпись верна, но пользователя с таким ID нет
		token, err := utils.NewJWTService(testSecret).GenerateToken(uuid.New())
		require.NoError(t, err)

		resp := doRequest(t, app, "GET", "/api/auth/me", "Bearer "+token, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
