// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"atelier/internal/domain/entity"
)

// SettingRepository defines the operations for site settings persistence.
type SettingRepository interface {
	// List retrieves all settings.
	List(ctx context.Context) ([]*entity.Setting, error)

	// Upsert creates or overwrites a setting by key.
	Upsert(ctx context.Context, setting *entity.Setting) error
}
