// Package memory содержит хранилища в памяти для модульных тестов.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shrdenis/adboard-api/internal/models"
	"github.com/shrdenis/adboard-api/internal/storage"
)

// Stores объединяет все хранилища в памяти поверх общего мьютекса
type Stores struct {
	mu             sync.RWMutex
	advertisements map[uuid.UUID]models.Advertisement
	favorites      map[[2]uuid.UUID]models.Favorite // ключ: (user_id, advertisement_id)
	users          map[uuid.UUID]models.User
}

// NewStores создает пустые хранилища в памяти
func NewStores() *Stores {
	return &Stores{
		advertisements: make(map[uuid.UUID]models.Advertisement),
		favorites:      make(map[[2]uuid.UUID]models.Favorite),
		users:          make(map[uuid.UUID]models.User),
	}
}

// Advertisements возвращает хранилище объявлений
func (s *Stores) Advertisements() storage.AdvertisementStore { return (*advertisementStore)(s) }

// Favorites возвращает хранилище избранного
func (s *Stores) Favorites() storage.FavoriteStore { return (*favoriteStore)(s) }

// Users возвращает хранилище пользователей
func (s *Stores) Users() storage.UserStore { return (*userStore)(s) }

type advertisementStore Stores

func (s *advertisementStore) Create(_ context.Context, ad *models.Advertisement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advertisements[ad.ID] = *ad
	return nil
}

func (s *advertisementStore) GetByID(_ context.Context, id uuid.UUID) (*models.Advertisement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ad, ok := s.advertisements[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &ad, nil
}

// matches проверяет объявление на соответствие фильтру
func (s *advertisementStore) matches(ad models.Advertisement, f storage.AdvertisementFilter) bool {
	if ad.Status == models.StatusDraft && f.HideDrafts {
		if f.DraftOwner == nil || *f.DraftOwner != ad.CreatorID {
			return false
		}
	}
	if f.Status != nil && ad.Status != *f.Status {
		return false
	}
	if f.CreatedAtAfter != nil && ad.CreatedAt.Before(*f.CreatedAtAfter) {
		return false
	}
	if f.CreatedAtBefore != nil && ad.CreatedAt.After(*f.CreatedAtBefore) {
		return false
	}
	if f.FavoritedBy != nil {
		if _, ok := s.favorites[[2]uuid.UUID{*f.FavoritedBy, ad.ID}]; !ok {
			return false
		}
	}
	return true
}

func (s *advertisementStore) List(_ context.Context, f storage.AdvertisementFilter, page storage.PageRequest) ([]models.Advertisement, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if f.Empty {
		return nil, 0, nil
	}

	var all []models.Advertisement
	for _, ad := range s.advertisements {
		if s.matches(ad, f) {
			all = append(all, ad)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if page.Offset >= total {
		return nil, total, nil
	}
	end := page.Offset + page.Limit
	if end > total {
		end = total
	}
	return all[page.Offset:end], total, nil
}

func (s *advertisementStore) Update(_ context.Context, ad *models.Advertisement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.advertisements[ad.ID]; !ok {
		return storage.ErrNotFound
	}
	s.advertisements[ad.ID] = *ad
	return nil
}

func (s *advertisementStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.advertisements[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.advertisements, id)
	// Каскадное удаление избранного
	for key := range s.favorites {
		if key[1] == id {
			delete(s.favorites, key)
		}
	}
	return nil
}

func (s *advertisementStore) CountOpen(_ context.Context, creatorID uuid.UUID, exclude *uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, ad := range s.advertisements {
		if ad.CreatorID != creatorID || ad.Status != models.StatusOpen {
			continue
		}
		if exclude != nil && ad.ID == *exclude {
			continue
		}
		count++
	}
	return count, nil
}

type favoriteStore Stores

func (s *favoriteStore) Add(_ context.Context, userID, advertisementID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uuid.UUID{userID, advertisementID}
	if _, ok := s.favorites[key]; ok {
		return nil
	}
	s.favorites[key] = models.Favorite{
		ID:              uuid.New(),
		UserID:          userID,
		AdvertisementID: advertisementID,
		CreatedAt:       time.Now(),
	}
	return nil
}

func (s *favoriteStore) Remove(_ context.Context, userID, advertisementID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites, [2]uuid.UUID{userID, advertisementID})
	return nil
}

func (s *favoriteStore) Exists(_ context.Context, userID, advertisementID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[[2]uuid.UUID{userID, advertisementID}]
	return ok, nil
}

// FavoriteCount возвращает число записей избранного (для проверок в тестах)
func (s *Stores) FavoriteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.favorites)
}

type userStore Stores

func (s *userStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *userStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (s *userStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}
