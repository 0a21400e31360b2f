package models

import (
	"time"

	"github.com/google/uuid"
)

// User представляет пользователя в системе.
// Принципал запроса: nil-указатель означает анонимного пользователя.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
