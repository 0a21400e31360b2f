package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite представляет запись избранного объявления.
// Пара (user_id, advertisement_id) уникальна.
type Favorite struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	AdvertisementID uuid.UUID `json:"advertisement_id"`
	CreatedAt       time.Time `json:"created_at"`
}
