package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/voicedeck/recorder-api/internal/core/domain"
	"github.com/voicedeck/recorder-api/internal/core/ports"
)

// CookieName is the browser-held session cookie.
const CookieName = "session_id"

// userIDKey is the echo context key the resolved user id is stored under.
const userIDKey = "user_id"

// Session resolves the session cookie and injects the user id into context.
// Requests without a valid, unexpired token are rejected before any store is
// touched.
func Session(sessions ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return domain.ErrNotLoggedIn
			}

			userID, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				return domain.ErrNotLoggedIn
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID extracts the user id injected by the Session middleware.
// The boolean is false when the middleware did not run on this route.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(userIDKey).(int64)
	return id, ok
}
