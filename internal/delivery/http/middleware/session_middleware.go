package middleware

import (
	"atelier/config"
	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware resolves the session cookie into a user and exposes the
// role guards. Resolution never fails a request by itself; the guards decide
// what an anonymous caller may reach.
type SessionMiddleware struct {
	authUsecase usecase.AuthUsecase
	cookieName  string
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(authUsecase usecase.AuthUsecase, cfg *config.Config) *SessionMiddleware {
	cookieName := "atelier_session"
	if cfg != nil && cfg.Session != nil && cfg.Session.CookieName != "" {
		cookieName = cfg.Session.CookieName
	}

	return &SessionMiddleware{
		authUsecase: authUsecase,
		cookieName:  cookieName,
	}
}

// Resolve looks up the user behind the session cookie and stores it on the
// context. Missing, unknown and expired sessions leave the request anonymous.
func (m *SessionMiddleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		user, err := m.authUsecase.CurrentUser(c.Request().Context(), cookie.Value)
		if err != nil {
			return next(c)
		}

		deliverycontext.SetCurrentUser(c, user)

		return next(c)
	}
}

// RequireAuthenticated rejects anonymous requests.
func (m *SessionMiddleware) RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetCurrentUser(c) == nil {
			return domainerrors.ErrUnauthorized
		}

		return next(c)
	}
}

// RequireAdmin rejects everything but admin sessions. Anonymous callers get
// 401 so they know to log in first.
func (m *SessionMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := deliverycontext.GetCurrentUser(c)
		if user == nil {
			return domainerrors.ErrUnauthorized
		}
		if user.Role != entity.RoleAdmin {
			return domainerrors.ErrAdminRequired
		}

		return next(c)
	}
}

// RequireDesignerOrAdmin rejects everything but designer and admin sessions.
func (m *SessionMiddleware) RequireDesignerOrAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := deliverycontext.GetCurrentUser(c)
		if user == nil {
			return domainerrors.ErrUnauthorized
		}
		if !user.Role.CanManageProducts() {
			return domainerrors.ErrDesignerRequired
		}

		return next(c)
	}
}
