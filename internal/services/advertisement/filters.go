package advertisement

import (
	"strconv"
	"time"

	"github.com/shrdenis/adboard-api/internal/apperrors"
	"github.com/shrdenis/adboard-api/internal/models"
	"github.com/shrdenis/adboard-api/internal/storage"
)

// predicateBuilder переводит значение query-параметра в предикат фильтра
type predicateBuilder func(value string, user *models.User, f *storage.AdvertisementFilter) error

// filterRegistry — соответствие параметра запроса построителю предиката.
// Таблица фиксирована на старте, без динамической диспетчеризации.
var filterRegistry = map[string]predicateBuilder{
	"created_at_after":  filterCreatedAtAfter,
	"created_at_before": filterCreatedAtBefore,
	"status":            filterStatus,
	"is_favorited":      filterIsFavorited,
}

// VisibilityScope строит базовый фильтр видимости для принципала:
// администратор видит всё, аутентифицированный пользователь — все
// объявления кроме чужих черновиков, аноним — всё кроме черновиков.
func VisibilityScope(user *models.User) storage.AdvertisementFilter {
	var f storage.AdvertisementFilter
	switch {
	case user == nil:
		f.HideDrafts = true
	case user.IsStaff:
		// без ограничений
	default:
		f.HideDrafts = true
		f.DraftOwner = &user.ID
	}
	return f
}

// ParseFilter строит фильтр выборки из параметров запроса,
// пересекая его с областью видимости принципала
func ParseFilter(queries map[string]string, user *models.User) (storage.AdvertisementFilter, error) {
	f := VisibilityScope(user)

	for name, build := range filterRegistry {
		value, ok := queries[name]
		if !ok || value == "" {
			continue
		}
		if err := build(value, user, &f); err != nil {
			return f, err
		}
	}

	return f, nil
}

// parseFilterTime принимает дату или момент времени в RFC 3339
func parseFilterTime(field, value string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, &apperrors.ValidationError{
			Field:   field,
			Message: "неверный формат даты, ожидается YYYY-MM-DD или RFC 3339",
		}
	}
	return t, false, nil
}

func filterCreatedAtAfter(value string, _ *models.User, f *storage.AdvertisementFilter) error {
	t, _, err := parseFilterTime("created_at_after", value)
	if err != nil {
		return err
	}
	f.CreatedAtAfter = &t
	return nil
}

func filterCreatedAtBefore(value string, _ *models.User, f *storage.AdvertisementFilter) error {
	t, dateOnly, err := parseFilterTime("created_at_before", value)
	if err != nil {
		return err
	}
	// Верхняя граница по дате включает весь день
	if dateOnly {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	f.CreatedAtBefore = &t
	return nil
}

func filterStatus(value string, _ *models.User, f *storage.AdvertisementFilter) error {
	status, ok := models.ParseStatus(value)
	if !ok {
		return &apperrors.ValidationError{
			Field:   "status",
			Message: "недопустимый статус, ожидается OPEN, CLOSED или DRAFT",
		}
	}
	f.Status = &status
	return nil
}

func filterIsFavorited(value string, user *models.User, f *storage.AdvertisementFilter) error {
	favorited, err := strconv.ParseBool(value)
	if err != nil {
		return &apperrors.ValidationError{
			Field:   "is_favorited",
			Message: "неверное логическое значение",
		}
	}
	if !favorited {
		return nil
	}
	// У анонима нет избранного — выборка пуста независимо от остальных фильтров
	if user == nil {
		f.Empty = true
		return nil
	}
	f.FavoritedBy = &user.ID
	return nil
}
