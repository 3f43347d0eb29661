package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/usecase"
)

func createTestSettingsService(t *testing.T) (usecase.SettingsUsecase, *fakeFactory) {
	t.Helper()

	factory := newFakeFactory()
	service := NewSettingsService(SettingsServiceParams{
		TxManager:   newFakeTxManager(factory),
		SettingRepo: factory.settingRepo,
		Logger:      newDiscardLogger(),
	})

	return service, factory
}

func TestSettingsService_UpsertSettings_CreatesAndOverwrites(t *testing.T) {
	service, factory := createTestSettingsService(t)

	_, err := service.UpsertSettings(context.Background(), []usecase.SettingInput{
		{Key: "store_name", Value: "Atelier"},
		{Key: "support_email", Value: "help@example.com"},
	})
	require.NoError(t, err)

	_, err = service.UpsertSettings(context.Background(), []usecase.SettingInput{
		{Key: "store_name", Value: "Atelier Nord"},
	})
	require.NoError(t, err)

	assert.Len(t, factory.settingRepo.settings, 2)
	assert.Equal(t, "Atelier Nord", factory.settingRepo.settings["store_name"].Value)
	assert.Equal(t, "help@example.com", factory.settingRepo.settings["support_email"].Value)
}

func TestSettingsService_UpsertSettings_TrimsKeys(t *testing.T) {
	service, factory := createTestSettingsService(t)

	_, err := service.UpsertSettings(context.Background(), []usecase.SettingInput{
		{Key: "  store_name  ", Value: "Atelier"},
	})
	require.NoError(t, err)

	_, ok := factory.settingRepo.settings["store_name"]
	assert.True(t, ok)
}

func TestSettingsService_UpsertSettings_Validation(t *testing.T) {
	service, _ := createTestSettingsService(t)

	_, err := service.UpsertSettings(context.Background(), nil)
	appErr := requireAppError(t, err, "VALIDATION_FAILED")
	assert.Equal(t, "At least one setting is required", appErr.Message())

	_, err = service.UpsertSettings(context.Background(), []usecase.SettingInput{{Key: "   "}})
	appErr = requireAppError(t, err, "VALIDATION_FAILED")
	assert.Equal(t, "Setting key is required", appErr.Message())
}

func TestSettingsService_ListSettings(t *testing.T) {
	service, _ := createTestSettingsService(t)

	_, err := service.UpsertSettings(context.Background(), []usecase.SettingInput{
		{Key: "store_name", Value: "Atelier"},
	})
	require.NoError(t, err)

	settings, err := service.ListSettings(context.Background())
	require.NoError(t, err)
	assert.Len(t, settings, 1)
}
