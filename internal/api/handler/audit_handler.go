package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hakwonhub/dashboard-gateway/internal/core/ports"
)

const defaultAuditLimit = 50

// AuditHandler exposes the session-gate trail to the owner dashboard.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

type auditEntry struct {
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Action string `json:"action"`
	Path   string `json:"path,omitempty"`
	At     string `json:"at"`
}

// Recent handles GET /owner/audit.
//
// @Summary      Recent sign-in and gate activity
// @Tags         audit
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries (default 50)"
// @Success      200    {array}   auditEntry
// @Router       /owner/audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}

	limit := int64(defaultAuditLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}

	events, err := h.repo.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	entries := make([]auditEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, auditEntry{
			Email:  e.Email,
			Role:   e.Role,
			Action: string(e.Action),
			Path:   e.Path,
			At:     e.At.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, entries)
}
