package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookinglab/admin-portal/internal/api/metrics"
	"github.com/bookinglab/admin-portal/internal/api/middleware"
	"github.com/bookinglab/admin-portal/internal/core/domain"
	"github.com/bookinglab/admin-portal/internal/core/ports"
)

// adminHome is the redirect target handed to the client after login.
const adminHome = "/admin"

type AuthHandler struct {
	auth         ports.AuthService
	cookieName   string
	cookieSecure bool
}

func NewAuthHandler(auth ports.AuthService, cookieName string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieName: cookieName, cookieSecure: cookieSecure}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Redirect string `json:"redirect"`
}

// Login authenticates an administrator and establishes a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.LoginsTotal.WithLabelValues("invalid_input").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(h.sessionCookie(session.ID))
	return c.JSON(http.StatusOK, loginResponse{Redirect: adminHome})
}

// Logout destroys the session and always sends the client back to the login
// surface, whether or not a session existed.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID := ""
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		sessionID = cookie.Value
	}

	if err := h.auth.Logout(c.Request().Context(), sessionID); err != nil {
		// The session may already be gone; the client is logged out either way.
		c.Logger().Error(err)
	}

	c.SetCookie(h.expiredCookie())
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (h *AuthHandler) sessionCookie(sessionID string) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
