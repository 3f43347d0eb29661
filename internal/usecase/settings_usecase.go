package usecase

import (
	"context"

	"atelier/internal/domain/entity"
)

// SettingInput defines one key/value pair to upsert.
type SettingInput struct {
	Key   string
	Value string
}

// SettingsUsecase defines the interface for site settings management.
type SettingsUsecase interface {
	// ListSettings retrieves all settings.
	ListSettings(ctx context.Context) ([]*entity.Setting, error)

	// UpsertSettings creates or overwrites the given settings.
	UpsertSettings(ctx context.Context, inputs []SettingInput) ([]*entity.Setting, error)
}
