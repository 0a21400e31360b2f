package advertisement

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/shrdenis/adboard-api/internal/apperrors"
	"github.com/shrdenis/adboard-api/internal/middleware"
	"github.com/shrdenis/adboard-api/internal/models"
	"github.com/shrdenis/adboard-api/internal/storage"
)

// maxOpenAdvertisements — лимит одновременно открытых объявлений автора
const maxOpenAdvertisements = 10

// msgOpenLimit — сообщение об исчерпании лимита открытых объявлений
const msgOpenLimit = "Превышено максимальное количество открытых объявлений (10)."

// AdvertisementService представляет сервис для работы с объявлениями
type AdvertisementService struct {
	ads        storage.AdvertisementStore
	serializer *Serializer
	paginator  storage.Paginator
}

// NewAdvertisementService создает новый экземпляр AdvertisementService
func NewAdvertisementService(ads storage.AdvertisementStore, favorites storage.FavoriteStore, users storage.UserStore) *AdvertisementService {
	return &AdvertisementService{
		ads:        ads,
		serializer: NewSerializer(users, favorites),
		paginator:  storage.NewPaginator(),
	}
}

// Serializer возвращает сериализатор объявлений
func (s *AdvertisementService) Serializer() *Serializer {
	return s.serializer
}

// visibleTo сообщает, попадает ли объявление в область видимости принципала
func visibleTo(ad *models.Advertisement, user *models.User) bool {
	if ad.Status != models.StatusDraft {
		return true
	}
	if user == nil {
		return false
	}
	return user.IsStaff || user.ID == ad.CreatorID
}

// VisibleByID возвращает объявление по ID в пределах видимости принципала.
// Чужой черновик и несуществующая запись неразличимы для вызывающего.
func VisibleByID(ctx context.Context, ads storage.AdvertisementStore, id uuid.UUID, user *models.User) (*models.Advertisement, error) {
	ad, err := ads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if !visibleTo(ad, user) {
		return nil, apperrors.ErrNotFound
	}
	return ad, nil
}

// parseAdvertisementID разбирает ID объявления из параметра маршрута
func parseAdvertisementID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, &apperrors.ValidationError{
			Field:   "id",
			Message: "неверный формат ID объявления",
		}
	}
	return id, nil
}

// validateOpenLimit проверяет лимит открытых объявлений автора.
// Вызывается при создании и при обновлении, если итоговый статус OPEN.
func (s *AdvertisementService) validateOpenLimit(ctx context.Context, creatorID uuid.UUID, newStatus models.AdvertisementStatus, exclude *uuid.UUID) error {
	if newStatus != models.StatusOpen {
		return nil
	}

	count, err := s.ads.CountOpen(ctx, creatorID, exclude)
	if err != nil {
		return err
	}
	if count >= maxOpenAdvertisements {
		return &apperrors.ValidationError{Field: "status", Message: msgOpenLimit}
	}
	return nil
}

// CreateAdvertisement обрабатывает создание нового объявления
func (s *AdvertisementService) CreateAdvertisement(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := CheckPermission(user, ActionCreate, nil); err != nil {
		return err
	}

	// Автором всегда становится текущий пользователь;
	// передать поле creator через API нельзя
	var requestData struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}

	if err := c.Bind().Body(&requestData); err != nil {
		return &apperrors.ValidationError{Field: "body", Message: "неверный формат данных"}
	}

	if requestData.Title == "" {
		return &apperrors.ValidationError{Field: "title", Message: "Название обязательно"}
	}

	// Статус по умолчанию — OPEN
	newStatus := models.StatusOpen
	if requestData.Status != "" {
		status, ok := models.ParseStatus(requestData.Status)
		if !ok {
			return &apperrors.ValidationError{
				Field:   "status",
				Message: "недопустимый статус, ожидается OPEN, CLOSED или DRAFT",
			}
		}
		newStatus = status
	}

	if err := s.validateOpenLimit(c.Context(), user.ID, newStatus, nil); err != nil {
		return err
	}

	now := time.Now()
	ad := &models.Advertisement{
		ID:          uuid.New(),
		Title:       requestData.Title,
		Description: requestData.Description,
		Status:      newStatus,
		CreatorID:   user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.ads.Create(c.Context(), ad); err != nil {
		return err
	}

	resp, err := s.serializer.Serialize(c.Context(), ad, user)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListAdvertisements возвращает страницу объявлений с учетом
// фильтров запроса и области видимости принципала
func (s *AdvertisementService) ListAdvertisements(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	filter, err := ParseFilter(c.Queries(), user)
	if err != nil {
		return err
	}

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

// GetAdvertisement возвращает одно объявление
func (s *AdvertisementService) GetAdvertisement(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := parseAdvertisementID(c)
	if err != nil {
		return err
	}

	ad, err := VisibleByID(c.Context(), s.ads, id, user)
	if err != nil {
		return err
	}

	resp, err := s.serializer.Serialize(c.Context(), ad, user)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateAdvertisement полностью обновляет объявление
func (s *AdvertisementService) UpdateAdvertisement(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := parseAdvertisementID(c)
	if err != nil {
		return err
	}

	ad, err := VisibleByID(c.Context(), s.ads, id, user)
	if err != nil {
		return err
	}

	if err := CheckPermission(user, ActionUpdate, ad); err != nil {
		return err
	}

	var requestData struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}

	if err := c.Bind().Body(&requestData); err != nil {
		return &apperrors.ValidationError{Field: "body", Message: "неверный формат данных"}
	}

	if requestData.Title == "" {
		return &apperrors.ValidationError{Field: "title", Message: "Название обязательно"}
	}

	// Статус не передан — остается текущий
	newStatus := ad.Status
	if requestData.Status != "" {
		status, ok := models.ParseStatus(requestData.Status)
		if !ok {
			return &apperrors.ValidationError{
				Field:   "status",
				Message: "недопустимый статус, ожидается OPEN, CLOSED или DRAFT",
			}
		}
		newStatus = status
	}

	// Лимит считается по автору объявления, не по принципалу:
	// администратор, открывающий чужое объявление, расходует лимит автора
	if err := s.validateOpenLimit(c.Context(), ad.CreatorID, newStatus, &ad.ID); err != nil {
		return err
	}

	ad.Title = requestData.Title
	ad.Description = requestData.Description
	ad.Status = newStatus
	ad.UpdatedAt = time.Now()

	if err := s.ads.Update(c.Context(), ad); err != nil {
		return err
	}

	resp, err := s.serializer.Serialize(c.Context(), ad, user)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PartialUpdateAdvertisement обновляет только переданные поля объявления
func (s *AdvertisementService) PartialUpdateAdvertisement(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := parseAdvertisementID(c)
	if err != nil {
		return err
	}

	ad, err := VisibleByID(c.Context(), s.ads, id, user)
	if err != nil {
		return err
	}

	if err := CheckPermission(user, ActionPartialUpdate, ad); err != nil {
		return err
	}

	var requestData struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}

	if err := c.Bind().Body(&requestData); err != nil {
		return &apperrors.ValidationError{Field: "body", Message: "неверный формат данных"}
	}

	if requestData.Title != nil && *requestData.Title == "" {
		return &apperrors.ValidationError{Field: "title", Message: "Название обязательно"}
	}

	newStatus := ad.Status
	if requestData.Status != nil {
		status, ok := models.ParseStatus(*requestData.Status)
		if !ok {
			return &apperrors.ValidationError{
				Field:   "status",
				Message: "недопустимый статус, ожидается OPEN, CLOSED или DRAFT",
			}
		}
		newStatus = status
	}

	if err := s.validateOpenLimit(c.Context(), ad.CreatorID, newStatus, &ad.ID); err != nil {
		return err
	}

	if requestData.Title != nil {
		ad.Title = *requestData.Title
	}
	if requestData.Description != nil {
		ad.Description = *requestData.Description
	}
	ad.Status = newStatus
	ad.UpdatedAt = time.Now()

	if err := s.ads.Update(c.Context(), ad); err != nil {
		return err
	}

	resp, err := s.serializer.Serialize(c.Context(), ad, user)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteAdvertisement удаляет объявление
func (s *AdvertisementService) DeleteAdvertisement(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := parseAdvertisementID(c)
	if err != nil {
		return err
	}

	ad, err := VisibleByID(c.Context(), s.ads, id, user)
	if err != nil {
		return err
	}

	if err := CheckPermission(user, ActionDestroy, ad); err != nil {
		return err
	}

	if err := s.ads.Delete(c.Context(), ad.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
