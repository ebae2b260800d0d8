package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acadeval/report-server/internal/session"
)

// sessionCookieName is the cookie carrying the opaque session token.
const sessionCookieName = "eval_session"

const sessionContextKey = "web.session"

// CurrentSession returns the authenticated session attached to the
// request, if any.
func CurrentSession(c echo.Context) (session.Session, bool) {
	sess, ok := c.Get(sessionContextKey).(session.Session)
	return sess, ok
}

// RequireSession resolves the session cookie and attaches the session to
// the request context. Requests without a live session get a 401.
func (h *Handlers) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(sessionCookieName)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "please log in")
		}

		sess, err := h.sessions.Lookup(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired, please log in again")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed")
		}

		c.Set(sessionContextKey, sess)
		return next(c)
	}
}

// RequireRole guards a route group behind a role. Must run after
// RequireSession.
func (h *Handlers) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := CurrentSession(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "please log in")
			}
			if sess.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}
