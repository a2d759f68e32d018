package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hakwonhub/dashboard-gateway/internal/api/metrics"
	"github.com/hakwonhub/dashboard-gateway/internal/api/middleware"
	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
	"github.com/hakwonhub/dashboard-gateway/internal/core/ports"
	"github.com/hakwonhub/dashboard-gateway/internal/core/service"
)

// AuthHandler signs dashboard users in and out against the platform's token
// endpoint and manages the gateway session cookie.
type AuthHandler struct {
	gate         ports.SessionGate
	upstream     ports.UpstreamClient
	audit        ports.AuditSink
	cookieSecure bool
}

func NewAuthHandler(gate ports.SessionGate, upstream ports.UpstreamClient, audit ports.AuditSink, cookieSecure bool) *AuthHandler {
	return &AuthHandler{gate: gate, upstream: upstream, audit: audit, cookieSecure: cookieSecure}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Role     string `json:"role"`
	FullName string `json:"full_name,omitempty"`
}

// Login authenticates against the platform and opens a gateway session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx := c.Request().Context()

	pair, bodyRole, err := h.upstream.Login(ctx, req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("upstream_error").Inc()
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication failed"})
	}

	// Older platform versions return the role in the body; newer ones embed
	// it only in the token claims. Body wins when both are present.
	roleClaim := bodyRole
	if roleClaim == "" {
		claims, err := service.DecodeRoleClaim(pair.Access)
		if err != nil {
			metrics.LoginsTotal.WithLabelValues("invalid_claim").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication failed"})
		}
		roleClaim = claims.Role
	}

	sess, err := h.gate.Establish(ctx, pair, roleClaim)
	if err != nil {
		// Unknown role and malformed token read the same to the client.
		metrics.LoginsTotal.WithLabelValues("invalid_claim").Inc()
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication failed"})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.audit.Record(domain.AuditEvent{
		SessionID: sess.ID,
		Email:     req.Email,
		Role:      string(sess.Role),
		Action:    domain.AuditLogin,
		At:        time.Now().UTC(),
	})

	h.setSessionCookie(c, sess.ID)
	return c.JSON(http.StatusOK, sessionResponse{Role: string(sess.Role), FullName: sess.FullName})
}

// Logout tears the session down. Safe to call while signed out; always 204.
//
// @Summary      Log out
// @Tags         auth
// @Success      204  "session destroyed"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	sid := middleware.SessionID(c)

	if sess := h.gate.Current(ctx, sid); sess != nil {
		h.audit.Record(domain.AuditEvent{
			SessionID: sess.ID,
			Role:      string(sess.Role),
			Action:    domain.AuditLogout,
			At:        time.Now().UTC(),
		})
	}

	_ = h.gate.Teardown(ctx, sid)
	h.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Me reports the signed-in caller's role and display name.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess := h.gate.Current(c.Request().Context(), middleware.SessionID(c))
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
	}
	return c.JSON(http.StatusOK, sessionResponse{Role: string(sess.Role), FullName: sess.FullName})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
