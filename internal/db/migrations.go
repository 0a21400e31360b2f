package db

import (
	"fmt"
)

// schema описывает таблицы сервиса объявлений.
// Уникальный индекс на (user_id, advertisement_id) — единственное
// ограничение уровня схемы помимо внешних ключей.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	is_staff BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS advertisements (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'OPEN',
	creator_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_advertisements_creator ON advertisements (creator_id);
CREATE INDEX IF NOT EXISTS idx_advertisements_status ON advertisements (status);

CREATE TABLE IF NOT EXISTS favorites (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	advertisement_id UUID NOT NULL REFERENCES advertisements (id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT unique_user_advertisement_favorite UNIQUE (user_id, advertisement_id)
);
`

// RunMigrations создает схему базы данных, если её ещё нет
func RunMigrations() error {
	ctx, cancel := GetContext()
	defer cancel()

	if _, err := Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ошибка при создании схемы базы данных: %w", err)
	}
	return nil
}
