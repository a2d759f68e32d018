package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hakwonhub/dashboard-gateway/internal/api/middleware"
	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
)

// ctxSession pulls the session injected by the Gate middleware and fast-fails
// before any service call. Absence means the route was wired without the
// middleware; treat it as unauthenticated rather than panicking.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(middleware.SessionKey).(*domain.Session)
	if !sess.Valid() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	return sess, nil
}
