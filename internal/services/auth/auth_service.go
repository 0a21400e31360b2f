package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shrdenis/adboard-api/internal/apperrors"
	"github.com/shrdenis/adboard-api/internal/config"
	"github.com/shrdenis/adboard-api/internal/models"
	"github.com/shrdenis/adboard-api/internal/storage"
	"github.com/shrdenis/adboard-api/internal/utils"
)

// AuthService – структура для обработки регистрации и входа
type AuthService struct {
	cfg        *config.Config
	users      storage.UserStore
	jwtService *utils.JWTService
}

// NewAuthService – конструктор AuthService
func NewAuthService(cfg *config.Config, users storage.UserStore) *AuthService {
	return &AuthService{
		cfg:        cfg,
		users:      users,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// GetJWTService возвращает сервис токенов
func (s *AuthService) GetJWTService() *utils.JWTService {
	return s.jwtService
}

// RegisterHandler создает пользователя и возвращает JWT
func (s *AuthService) RegisterHandler(c fiber.Ctx) error {
	var payload struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	if err := c.Bind().Body(&payload); err != nil {
		return &apperrors.ValidationError{Field: "body", Message: "неверный формат данных"}
	}

	if payload.Username == "" {
		return &apperrors.ValidationError{Field: "username", Message: "имя пользователя обязательно"}
	}
	if len(payload.Password) < 8 {
		return &apperrors.ValidationError{Field: "password", Message: "пароль должен быть не короче 8 символов"}
	}

	// Проверяем занятость имени
	_, err := s.users.GetByUsername(c.Context(), payload.Username)
	if err == nil {
		return &apperrors.ValidationError{Field: "username", Message: "имя пользователя уже занято"}
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     payload.Username,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(c.Context(), user); err != nil {
		return err
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}

// LoginHandler проверяет учетные данные и возвращает JWT
func (s *AuthService) LoginHandler(c fiber.Ctx) error {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind().Body(&payload); err != nil {
		return &apperrors.ValidationError{Field: "body", Message: "неверный формат данных"}
	}

	user, err := s.users.GetByUsername(c.Context(), payload.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.ErrAuthenticationRequired
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return apperrors.ErrAuthenticationRequired
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}
