package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/voicedeck/recorder-api/internal/api/middleware"
	"github.com/voicedeck/recorder-api/internal/core/domain"
	"github.com/voicedeck/recorder-api/internal/core/ports"
	"github.com/voicedeck/recorder-api/internal/metrics"
)

// AuthHandler handles registration, login, logout, and the current-user probe.
type AuthHandler struct {
	authService  ports.AuthService
	sessions     ports.SessionManager
	sessionTTL   time.Duration
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionManager, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
	}
}

// Register creates a new account and signs the browser in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	if err := h.startSession(c, user.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Login verifies credentials and starts a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	if err := h.startSession(c, user.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}

// CurrentUser returns the account behind the session cookie.
//
// @Summary      Get the signed-in user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	userID, ok := apimiddleware.UserID(c)
	if !ok {
		return domain.ErrNotLoggedIn
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Logout destroys the server-side session and expires the cookie.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(apimiddleware.CookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.End(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     apimiddleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
	})

	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *AuthHandler) startSession(c echo.Context, userID int64) error {
	token, err := h.sessions.Start(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	metrics.SessionsStartedTotal.Inc()

	c.SetCookie(&http.Cookie{
		Name:     apimiddleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}
