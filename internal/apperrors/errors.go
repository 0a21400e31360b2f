package apperrors

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
)

// Ошибки приложения, которые обработчики возвращают наверх.
// Преобразование в HTTP-ответ выполняет ErrorHandler.
var (
	ErrAuthenticationRequired = errors.New("требуется аутентификация")
	ErrNotFound               = errors.New("не найдено")
	ErrRateLimited            = errors.New("превышен лимит запросов, попробуйте позже")
)

// PermissionDeniedError — отказ в доступе аутентифицированному пользователю
type PermissionDeniedError struct {
	Reason string
}

func (e *PermissionDeniedError) Error() string {
	return e.Reason
}

// ValidationError — ошибка валидации с указанием поля
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrorHandler преобразует ошибки приложения в JSON-ответы Fiber
func ErrorHandler(c fiber.Ctx, err error) error {
	var validationErr *ValidationError
	var permissionErr *PermissionDeniedError

	switch {
	case errors.Is(err, ErrAuthenticationRequired):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &permissionErr):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": permissionErr.Reason})
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrNotFound.Error()})
	case errors.Is(err, ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": ErrRateLimited.Error()})
	}

	// Ошибки самого Fiber (например, 405) отдаем с их кодом
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}

	// Всё остальное — сбой хранилища или транспорта
	log.Printf("Внутренняя ошибка: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "внутренняя ошибка сервера"})
}
