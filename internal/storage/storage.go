package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shrdenis/adboard-api/internal/models"
)

// ErrNotFound возвращается хранилищем, когда запись отсутствует
var ErrNotFound = errors.New("запись не найдена")

// AdvertisementFilter описывает предикаты выборки объявлений.
// Поля видимости и пользовательские фильтры пересекаются между собой.
type AdvertisementFilter struct {
	// Пользовательские фильтры
	CreatedAtAfter  *time.Time
	CreatedAtBefore *time.Time
	Status          *models.AdvertisementStatus
	FavoritedBy     *uuid.UUID

	// Область видимости принципала
	HideDrafts bool       // скрывать черновики
	DraftOwner *uuid.UUID // кроме черновиков этого пользователя

	// Принудительно пустая выборка (is_favorited=true для анонима)
	Empty bool
}

// AdvertisementStore — хранилище объявлений
type AdvertisementStore interface {
	Create(ctx context.Context, ad *models.Advertisement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Advertisement, error)
	List(ctx context.Context, filter AdvertisementFilter, page PageRequest) ([]models.Advertisement, int, error)
	Update(ctx context.Context, ad *models.Advertisement) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountOpen считает открытые объявления автора, кроме exclude (если задан)
	CountOpen(ctx context.Context, creatorID uuid.UUID, exclude *uuid.UUID) (int, error)
}

// FavoriteStore — хранилище избранного.
// Add и Remove идемпотентны: повторное добавление и удаление
// отсутствующей записи не являются ошибками.
type FavoriteStore interface {
	Add(ctx context.Context, userID, advertisementID uuid.UUID) error
	Remove(ctx context.Context, userID, advertisementID uuid.UUID) error
	Exists(ctx context.Context, userID, advertisementID uuid.UUID) (bool, error)
}

// UserStore — хранилище пользователей
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
