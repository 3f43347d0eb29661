package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/errors"
	"atelier/internal/usecase"

	"go.uber.org/fx"
)

// settingsService implements the SettingsUsecase interface.
type settingsService struct {
	txManager   repository.TransactionManager
	settingRepo repository.SettingRepository
	logger      *slog.Logger
}

// SettingsServiceParams holds dependencies for settingsService, injected by Fx.
type SettingsServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	SettingRepo repository.SettingRepository
	Logger      *slog.Logger
}

// NewSettingsService is the constructor for settingsService.
func NewSettingsService(params SettingsServiceParams) usecase.SettingsUsecase {
	return &settingsService{
		txManager:   params.TxManager,
		settingRepo: params.SettingRepo,
		logger:      params.Logger,
	}
}

func (srv *settingsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListSettings retrieves all settings.
func (srv *settingsService) ListSettings(ctx context.Context) ([]*entity.Setting, error) {
	settings, err := srv.settingRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list settings")
	}

	return settings, nil
}

// UpsertSettings creates or overwrites the given settings. All writes commit
// or roll back together.
func (srv *settingsService) UpsertSettings(ctx context.Context, inputs []usecase.SettingInput) ([]*entity.Setting, error) {
	if len(inputs) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithMessage("At least one setting is required")
	}
	for _, input := range inputs {
		if strings.TrimSpace(input.Key) == "" {
			return nil, domainerrors.ErrValidationFailed.WithMessage("Setting key is required")
		}
	}

	settings := make([]*entity.Setting, 0, len(inputs))
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		settingRepo := repoFactory.SettingRepo()

		for _, input := range inputs {
			setting := &entity.Setting{
				Key:   strings.TrimSpace(input.Key),
				Value: input.Value,
			}
			if err := settingRepo.Upsert(ctx, setting); err != nil {
				return err
			}
			settings = append(settings, setting)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Settings updated", slog.Int("count", len(settings)))

	return settings, nil
}
