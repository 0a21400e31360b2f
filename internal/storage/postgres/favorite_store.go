package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FavoriteStore — хранилище избранного в PostgreSQL
type FavoriteStore struct {
	pool *pgxpool.Pool
}

// NewFavoriteStore создает новый экземпляр FavoriteStore
func NewFavoriteStore(pool *pgxpool.Pool) *FavoriteStore {
	return &FavoriteStore{pool: pool}
}

// Add добавляет объявление в избранное пользователя.
// Повторное добавление не является ошибкой: ON CONFLICT DO NOTHING
// сохраняет идемпотентность при конкурентных запросах.
func (s *FavoriteStore) Add(ctx context.Context, userID, advertisementID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO favorites (id, user_id, advertisement_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, advertisement_id) DO NOTHING
	`, uuid.New(), userID, advertisementID)

	if err != nil {
		return fmt.Errorf("ошибка при добавлении в избранное: %w", err)
	}
	return nil
}

// Remove удаляет объявление из избранного пользователя.
// Удаление отсутствующей записи не является ошибкой.
func (s *FavoriteStore) Remove(ctx context.Context, userID, advertisementID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND advertisement_id = $2
	`, userID, advertisementID)

	if err != nil {
		return fmt.Errorf("ошибка при удалении из избранного: %w", err)
	}
	return nil
}

// Exists проверяет, добавлено ли объявление в избранное пользователя
func (s *FavoriteStore) Exists(ctx context.Context, userID, advertisementID uuid.UUID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND advertisement_id = $2)
	`, userID, advertisementID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("ошибка при проверке избранного: %w", err)
	}
	return exists, nil
}
