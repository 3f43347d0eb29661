package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
)

func newGuardContext(user *entity.User) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if user != nil {
		deliverycontext.SetCurrentUser(c, user)
	}

	return c
}

func passThrough(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func guardErrorCode(t *testing.T, err error) string {
	t.Helper()

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)

	return appErr.ErrorCode()
}

func TestSessionMiddleware_Guards(t *testing.T) {
	m := NewSessionMiddleware(nil, nil)

	anonymous := (*entity.User)(nil)
	user := &entity.User{ID: 1, Role: entity.RoleUser}
	designer := &entity.User{ID: 2, Role: entity.RoleDesigner}
	admin := &entity.User{ID: 3, Role: entity.RoleAdmin}

	cases := []struct {
		name     string
		guard    func(echo.HandlerFunc) echo.HandlerFunc
		caller   *entity.User
		wantCode string // empty means the request passes
	}{
		{"authenticated rejects anonymous", m.RequireAuthenticated, anonymous, "UNAUTHORIZED"},
		{"authenticated passes user", m.RequireAuthenticated, user, ""},
		{"authenticated passes designer", m.RequireAuthenticated, designer, ""},
		{"authenticated passes admin", m.RequireAuthenticated, admin, ""},

		{"admin rejects anonymous", m.RequireAdmin, anonymous, "UNAUTHORIZED"},
		{"admin rejects user", m.RequireAdmin, user, "ADMIN_REQUIRED"},
		{"admin rejects designer", m.RequireAdmin, designer, "ADMIN_REQUIRED"},
		{"admin passes admin", m.RequireAdmin, admin, ""},

		{"designer rejects anonymous", m.RequireDesignerOrAdmin, anonymous, "UNAUTHORIZED"},
		{"designer rejects user", m.RequireDesignerOrAdmin, user, "DESIGNER_REQUIRED"},
		{"designer passes designer", m.RequireDesignerOrAdmin, designer, ""},
		{"designer passes admin", m.RequireDesignerOrAdmin, admin, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.guard(passThrough)(newGuardContext(tc.caller))
			if tc.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tc.wantCode, guardErrorCode(t, err))
			}
		})
	}
}

// Resolve leaves requests anonymous when no cookie is present instead of
// failing them.
func TestSessionMiddleware_Resolve_NoCookie(t *testing.T) {
	m := NewSessionMiddleware(nil, nil)

	var seen *entity.User
	err := m.Resolve(func(c echo.Context) error {
		seen = deliverycontext.GetCurrentUser(c)

		return c.NoContent(http.StatusOK)
	})(newGuardContext(nil))

	require.NoError(t, err)
	assert.Nil(t, seen)
}
