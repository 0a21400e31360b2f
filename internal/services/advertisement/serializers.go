package advertisement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shrdenis/adboard-api/internal/models"
	"github.com/shrdenis/adboard-api/internal/storage"
)

// CreatorResponse — представление автора объявления.
// Только публичные поля, без учетных данных.
type CreatorResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// AdvertisementResponse — wire-представление объявления
type AdvertisementResponse struct {
	ID          uuid.UUID                  `json:"id"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Status      models.AdvertisementStatus `json:"status"`
	Creator     CreatorResponse            `json:"creator"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
	IsFavorited bool                       `json:"is_favorited"`
}

// Serializer формирует ответы API по объявлениям
type Serializer struct {
	users     storage.UserStore
	favorites storage.FavoriteStore
}

// NewSerializer создает новый экземпляр Serializer
func NewSerializer(users storage.UserStore, favorites storage.FavoriteStore) *Serializer {
	return &Serializer{users: users, favorites: favorites}
}

// Serialize формирует представление объявления для принципала.
// is_favorited вычисляется по избранному принципала; для анонима — false.
func (s *Serializer) Serialize(ctx context.Context, ad *models.Advertisement, user *models.User) (AdvertisementResponse, error) {
	resp := AdvertisementResponse{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Status:      ad.Status,
		CreatedAt:   ad.CreatedAt,
		UpdatedAt:   ad.UpdatedAt,
	}

	creator, err := s.users.GetByID(ctx, ad.CreatorID)
	if err != nil {
		return resp, err
	}
	resp.Creator = CreatorResponse{
		ID:        creator.ID,
		Username:  creator.Username,
		FirstName: creator.FirstName,
		LastName:  creator.LastName,
	}

	if user != nil {
		favorited, err := s.favorites.Exists(ctx, user.ID, ad.ID)
		if err != nil {
			return resp, err
		}
		resp.IsFavorited = favorited
	}

	return resp, nil
}

// SerializeList формирует представления для списка объявлений
func (s *Serializer) SerializeList(ctx context.Context, ads []models.Advertisement, user *models.User) ([]AdvertisementResponse, error) {
	responses := make([]AdvertisementResponse, 0, len(ads))
	for i := range ads {
		resp, err := s.Serialize(ctx, &ads[i], user)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
