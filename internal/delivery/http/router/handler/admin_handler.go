package handler

import (
	"log/slog"
	"net/http"

	"atelier/internal/delivery/http/response"
	"atelier/internal/domain/entity"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the admin user-management and settings
// handlers. Every route behind it sits behind the admin guard.
type AdminHandler struct {
	accountUC  usecase.AccountUsecase
	settingsUC usecase.SettingsUsecase
	logger     *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(accountUC usecase.AccountUsecase, settingsUC usecase.SettingsUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		accountUC:  accountUC,
		settingsUC: settingsUC,
		logger:     logger,
	}
}

type adminUpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Role     string `json:"role"`
}

type settingsRequest struct {
	Settings []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"settings"`
}

// ListUsers returns all user accounts.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.accountUC.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// GetUser returns a single user account.
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.accountUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// UpdateUser modifies a user account, including its role.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input adminUpdateUserRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	user, err := h.accountUC.UpdateUser(c.Request().Context(), id, usecase.AdminUpdateUserInput{
		Username: input.Username,
		Email:    input.Email,
		Name:     input.Name,
		Bio:      input.Bio,
		Role:     entity.Role(input.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User updated successfully")
}

// ForceDeleteUser removes a user and everything it owns.
func (h *AdminHandler) ForceDeleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.accountUC.ForceDeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// ListSettings returns all site settings.
func (h *AdminHandler) ListSettings(c echo.Context) error {
	settings, err := h.settingsUC.ListSettings(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "")
}

// UpsertSettings creates or overwrites site settings.
func (h *AdminHandler) UpsertSettings(c echo.Context) error {
	var input settingsRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}

	inputs := make([]usecase.SettingInput, 0, len(input.Settings))
	for _, setting := range input.Settings {
		inputs = append(inputs, usecase.SettingInput{
			Key:   setting.Key,
			Value: setting.Value,
		})
	}

	settings, err := h.settingsUC.UpsertSettings(c.Request().Context(), inputs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Settings updated successfully")
}
