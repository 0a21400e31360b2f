package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shrdenis/adboard-api/internal/models"
	"github.com/shrdenis/adboard-api/internal/storage"
)

// UserStore — хранилище пользователей в PostgreSQL
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore создает новый экземпляр UserStore
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// Create сохраняет нового пользователя
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, username, first_name, last_name, password_hash, is_staff, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Username, user.FirstName, user.LastName, user.PasswordHash, user.IsStaff, user.CreatedAt)

	if err != nil {
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}
	return nil
}

// GetByID возвращает пользователя по идентификатору
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.get(ctx, "id = $1", id)
}

// GetByUsername возвращает пользователя по имени
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.get(ctx, "username = $1", username)
}

func (s *UserStore) get(ctx context.Context, condition string, arg any) (*models.User, error) {
	var user models.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, first_name, last_name, password_hash, is_staff, created_at
		FROM users
		WHERE `+condition, arg).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsStaff,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}
	return &user, nil
}
