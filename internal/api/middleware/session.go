package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookinglab/admin-portal/internal/api/metrics"
	"github.com/bookinglab/admin-portal/internal/core/domain"
	"github.com/bookinglab/admin-portal/internal/core/ports"
)

// Context keys set by the Session middleware for downstream handlers.
const (
	CtxUserID    = "user_id"
	CtxSessionID = "session_id"
)

// LoginPath is where unauthenticated browser requests are sent.
const LoginPath = "/login"

// Session authorizes every request through the auth gate before any handler
// logic runs. The session id travels in an HTTP-only cookie; a missing,
// unknown, or expired session aborts the request. Browser-style requests are
// redirected to the login surface, API clients get the 401 envelope.
func Session(auth ports.AuthService, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if cookie, err := c.Cookie(cookieName); err == nil {
				sessionID = cookie.Value
			}

			authz, err := auth.Authorize(c.Request().Context(), sessionID, time.Now().UTC())
			if err != nil {
				if errors.Is(err, domain.ErrSessionExpired) {
					metrics.SessionExpirationsTotal.Inc()
				}
				if errors.Is(err, domain.ErrNoSession) || errors.Is(err, domain.ErrSessionExpired) {
					clearCookie(c, cookieName)
					if wantsHTML(c.Request()) {
						return c.Redirect(http.StatusSeeOther, LoginPath)
					}
					return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
				}
				return err
			}

			c.Set(CtxUserID, authz.UserID)
			c.Set(CtxSessionID, authz.SessionID)
			return next(c)
		}
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
