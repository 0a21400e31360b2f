package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shrdenis/adboard-api/internal/models"
	"github.com/shrdenis/adboard-api/internal/storage"
)

// AdvertisementStore — хранилище объявлений в PostgreSQL
type AdvertisementStore struct {
	pool *pgxpool.Pool
}

// NewAdvertisementStore создает новый экземпляр AdvertisementStore
func NewAdvertisementStore(pool *pgxpool.Pool) *AdvertisementStore {
	return &AdvertisementStore{pool: pool}
}

// buildWhere собирает условие WHERE из фильтра выборки
func buildWhere(f storage.AdvertisementFilter) (string, []any) {
	if f.Empty {
		return "WHERE FALSE", nil
	}

	var conditions []string
	var args []any

	next := func(arg any) string {
		args = append(args, arg)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.HideDrafts {
		if f.DraftOwner != nil {
			conditions = append(conditions,
				fmt.Sprintf("(a.status <> 'DRAFT' OR a.creator_id = %s)", next(*f.DraftOwner)))
		} else {
			conditions = append(conditions, "a.status <> 'DRAFT'")
		}
	}
	if f.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = %s", next(*f.Status)))
	}
	if f.CreatedAtAfter != nil {
		conditions = append(conditions, fmt.Sprintf("a.created_at >= %s", next(*f.CreatedAtAfter)))
	}
	if f.CreatedAtBefore != nil {
		conditions = append(conditions, fmt.Sprintf("a.created_at <= %s", next(*f.CreatedAtBefore)))
	}
	if f.FavoritedBy != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM favorites f WHERE f.advertisement_id = a.id AND f.user_id = %s)",
			next(*f.FavoritedBy)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// Create сохраняет новое объявление
func (s *AdvertisementStore) Create(ctx context.Context, ad *models.Advertisement) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO advertisements (id, title, description, status, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, ad.ID, ad.Title, ad.Description, ad.Status, ad.CreatorID, ad.CreatedAt, ad.UpdatedAt)

	if err != nil {
		return fmt.Errorf("ошибка при сохранении объявления: %w", err)
	}
	return nil
}

// GetByID возвращает объявление по идентификатору
func (s *AdvertisementStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Advertisement, error) {
	var ad models.Advertisement
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, description, status, creator_id, created_at, updated_at
		FROM advertisements
		WHERE id = $1
	`, id).Scan(
		&ad.ID,
		&ad.Title,
		&ad.Description,
		&ad.Status,
		&ad.CreatorID,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении объявления: %w", err)
	}
	return &ad, nil
}

// List возвращает страницу объявлений по фильтру и общее количество
func (s *AdvertisementStore) List(ctx context.Context, filter storage.AdvertisementFilter, page storage.PageRequest) ([]models.Advertisement, int, error) {
	where, args := buildWhere(filter)

	query := fmt.Sprintf(`
		SELECT a.id, a.title, a.description, a.status, a.creator_id, a.created_at, a.updated_at
		FROM advertisements a
		%s
		ORDER BY a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	rows, err := s.pool.Query(ctx, query, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при запросе объявлений: %w", err)
	}
	defer rows.Close()

	var ads []models.Advertisement
	for rows.Next() {
		var ad models.Advertisement
		if err := rows.Scan(
			&ad.ID,
			&ad.Title,
			&ad.Description,
			&ad.Status,
			&ad.CreatorID,
			&ad.CreatedAt,
			&ad.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("ошибка при сканировании строки: %w", err)
		}
		ads = append(ads, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при чтении результата: %w", err)
	}

	// Общее количество для пагинации
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM advertisements a %s", where)
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете объявлений: %w", err)
	}

	return ads, total, nil
}

// Update обновляет объявление
func (s *AdvertisementStore) Update(ctx context.Context, ad *models.Advertisement) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE advertisements
		SET title = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5
	`, ad.Title, ad.Description, ad.Status, ad.UpdatedAt, ad.ID)

	if err != nil {
		return fmt.Errorf("ошибка при обновлении объявления: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete удаляет объявление. Избранное удаляется каскадно.
func (s *AdvertisementStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM advertisements WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ошибка при удалении объявления: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CountOpen считает открытые объявления автора, кроме exclude (если задан)
func (s *AdvertisementStore) CountOpen(ctx context.Context, creatorID uuid.UUID, exclude *uuid.UUID) (int, error) {
	query := "SELECT COUNT(*) FROM advertisements WHERE creator_id = $1 AND status = 'OPEN'"
	args := []any{creatorID}

	if exclude != nil {
		query += " AND id <> $2"
		args = append(args, *exclude)
	}

	var count int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка при подсчете открытых объявлений: %w", err)
	}
	return count, nil
}
