package models

import (
	"time"

	"github.com/google/uuid"
)

// AdvertisementStatus — статус объявления
type AdvertisementStatus string

// Возможные статусы объявления
const (
	StatusOpen   AdvertisementStatus = "OPEN"
	StatusClosed AdvertisementStatus = "CLOSED"
	StatusDraft  AdvertisementStatus = "DRAFT"
)

// ParseStatus проверяет и приводит строку к статусу объявления
func ParseStatus(value string) (AdvertisementStatus, bool) {
	switch AdvertisementStatus(value) {
	case StatusOpen, StatusClosed, StatusDraft:
		return AdvertisementStatus(value), true
	}
	return "", false
}

// Advertisement представляет объявление в системе
type Advertisement struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      AdvertisementStatus `json:"status"`
	CreatorID   uuid.UUID           `json:"creator_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
