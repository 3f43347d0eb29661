package postgres

import (
	"context"

	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingRepository implements the domain.SettingRepository interface using GORM.
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository is the constructor for settingRepository.
func NewSettingRepository(db *gorm.DB) repository.SettingRepository {
	return &settingRepository{db: db}
}

// List retrieves all settings ordered by key.
func (repo *settingRepository) List(ctx context.Context) ([]*entity.Setting, error) {
	var settingMs []model.SettingModel
	if err := repo.db.WithContext(ctx).Order("key ASC").Find(&settingMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list settings")
	}

	settings := make([]*entity.Setting, 0, len(settingMs))
	for i := range settingMs {
		settings = append(settings, toSettingDomain(&settingMs[i]))
	}

	return settings, nil
}

// Upsert creates or overwrites a setting by key.
func (repo *settingRepository) Upsert(ctx context.Context, setting *entity.Setting) error {
	settingM := fromSettingDomain(setting)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(settingM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert setting")
	}

	return nil
}

// --- Mapper Functions ---

func toSettingDomain(data *model.SettingModel) *entity.Setting {
	if data == nil {
		return nil
	}

	return &entity.Setting{
		Key:       data.Key,
		Value:     data.Value,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromSettingDomain(data *entity.Setting) *model.SettingModel {
	if data == nil {
		return nil
	}

	return &model.SettingModel{
		Key:       data.Key,
		Value:     data.Value,
		UpdatedAt: data.UpdatedAt,
	}
}
