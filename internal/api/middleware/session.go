package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hakwonhub/dashboard-gateway/internal/api/metrics"
	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
	"github.com/hakwonhub/dashboard-gateway/internal/core/ports"
)

// CookieName is the session cookie the gateway sets at login.
const CookieName = "sid"

// SessionKey is the echo context key under which the authorized session is
// injected for handlers.
const SessionKey = "session"

// SessionID reads the session cookie, returning "" when absent.
func SessionID(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Gate guards a route group with a required dashboard role. Anything short of
// an exact role match redirects to /login. The session itself is left intact
// on a role mismatch: a signed-in teacher opening an owner URL is bounced,
// not signed out.
func Gate(gate ports.SessionGate, audit ports.AuditSink, required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			sid := SessionID(c)

			if gate.Authorize(ctx, sid, required) != ports.DecisionAllow {
				metrics.GateDecisionsTotal.WithLabelValues(string(required), "redirect").Inc()
				if sess := gate.Current(ctx, sid); sess != nil {
					// Wrong role with a live session: worth a trail entry.
					audit.Record(domain.AuditEvent{
						SessionID: sess.ID,
						Role:      string(sess.Role),
						Action:    domain.AuditDenied,
						Path:      c.Request().URL.Path,
						At:        time.Now().UTC(),
					})
				}
				return c.Redirect(http.StatusFound, "/login")
			}

			metrics.GateDecisionsTotal.WithLabelValues(string(required), "allow").Inc()
			c.Set(SessionKey, gate.Current(ctx, sid))
			return next(c)
		}
	}
}
