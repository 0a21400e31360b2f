package advertisement

import (
	"github.com/shrdenis/adboard-api/internal/apperrors"
	"github.com/shrdenis/adboard-api/internal/models"
)

// Action — действие над объявлениями
type Action string

// Действия, известные политике доступа
const (
	ActionRead          Action = "read"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
	ActionFavorite      Action = "favorite"
	ActionListFavorites Action = "list_favorites"
)

// msgCreatorOrAdmin — причина отказа при попытке изменить чужое объявление
const msgCreatorOrAdmin = "Объявление может менять только его автор или администратор."

// requirement описывает требования политики для одного действия
type requirement struct {
	Authenticated  bool
	CreatorOrAdmin bool
}

// policy — единая таблица прав: действие → требования.
// Изменять и удалять объявление может автор или администратор.
var policy = map[Action]requirement{
	ActionRead:          {},
	ActionCreate:        {Authenticated: true},
	ActionUpdate:        {Authenticated: true, CreatorOrAdmin: true},
	ActionPartialUpdate: {Authenticated: true, CreatorOrAdmin: true},
	ActionDestroy:       {Authenticated: true, CreatorOrAdmin: true},
	ActionFavorite:      {Authenticated: true},
	ActionListFavorites: {Authenticated: true},
}

// CheckPermission проверяет права принципала на действие.
// Для действий уровня объекта ad не должен быть nil.
func CheckPermission(user *models.User, action Action, ad *models.Advertisement) error {
	req := policy[action]

	if req.Authenticated && user == nil {
		return apperrors.ErrAuthenticationRequired
	}

	if req.CreatorOrAdmin && ad != nil {
		if user.ID != ad.CreatorID && !user.IsStaff {
			return &apperrors.PermissionDeniedError{Reason: msgCreatorOrAdmin}
		}
	}

	return nil
}
