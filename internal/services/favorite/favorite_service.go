package favorite

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/shrdenis/adboard-api/internal/apperrors"
	"github.com/shrdenis/adboard-api/internal/middleware"
	"github.com/shrdenis/adboard-api/internal/services/advertisement"
	"github.com/shrdenis/adboard-api/internal/storage"
)

// msgSelfFavorite — причина отказа автору объявления
const msgSelfFavorite = "Автор не может добавить своё объявление в избранное."

// FavoriteService представляет сервис для работы с избранными объявлениями
type FavoriteService struct {
	ads        storage.AdvertisementStore
	favorites  storage.FavoriteStore
	serializer *advertisement.Serializer
	paginator  storage.Paginator
}

// NewFavoriteService создает новый экземпляр FavoriteService
func NewFavoriteService(ads storage.AdvertisementStore, favorites storage.FavoriteStore, serializer *advertisement.Serializer) *FavoriteService {
	return &FavoriteService{
		ads:        ads,
		favorites:  favorites,
		serializer: serializer,
		paginator:  storage.NewPaginator(),
	}
}

// AddToFavorites добавляет объявление в избранное текущего пользователя.
// Повторный вызов идемпотентен и возвращает тот же результат.
func (s *FavoriteService) AddToFavorites(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := advertisement.CheckPermission(user, advertisement.ActionFavorite, nil); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return &apperrors.ValidationError{Field: "id", Message: "неверный формат ID объявления"}
	}

	ad, err := advertisement.VisibleByID(c.Context(), s.ads, id, user)
	if err != nil {
		return err
	}

	// Автор не может добавить своё объявление в избранное
	if ad.CreatorID == user.ID {
		return &apperrors.ValidationError{Field: "advertisement", Message: msgSelfFavorite}
	}

	if err := s.favorites.Add(c.Context(), user.ID, ad.ID); err != nil {
		return err
	}

	resp, err := s.serializer.Serialize(c.Context(), ad, user)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RemoveFromFavorites удаляет объявление из избранного текущего пользователя.
// Удаление отсутствующей записи — допустимый no-op.
func (s *FavoriteService) RemoveFromFavorites(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := advertisement.CheckPermission(user, advertisement.ActionFavorite, nil); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return &apperrors.ValidationError{Field: "id", Message: "неверный формат ID объявления"}
	}

	ad, err := advertisement.VisibleByID(c.Context(), s.ads, id, user)
	if err != nil {
		return err
	}

	if err := s.favorites.Remove(c.Context(), user.ID, ad.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFavorites возвращает страницу объявлений из избранного текущего
// пользователя с учетом фильтров запроса и области видимости
func (s *FavoriteService) GetFavorites(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := advertisement.CheckPermission(user, advertisement.ActionListFavorites, nil); err != nil {
		return err
	}

	filter, err := advertisement.ParseFilter(c.Queries(), user)
	if err != nil {
		return err
	}
	// Пересечение с избранным принципала
	filter.FavoritedBy = &user.ID

	page := s.paginator.ParsePage(c.Query("limit"), c.Query("offset"))

	ads, total, err := s.ads.List(c.Context(), filter, page)
	if err != nil {
		return err
	}

	items, err := s.serializer.SerializeList(c.Context(), ads, user)
	if err != nil {
		return err
	}
	return c.JSON(s.paginator.BuildResponse(items, total, page))
}
