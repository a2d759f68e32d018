package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
	"github.com/hakwonhub/dashboard-gateway/internal/core/ports"
)

// RosterHandler serves the CRUD surface every dashboard shares. The Gate
// middleware has already authorized the caller's role by the time these run;
// what remains here is the per-role resource allowlist and the pass-through
// to the roster service.
type RosterHandler struct {
	roster ports.RosterService
}

func NewRosterHandler(roster ports.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// List handles GET /{role}/:resource.
//
// @Summary      List a collection with resolved reference labels
// @Tags         roster
// @Produce      json
// @Param        resource  path      string  true  "Collection name (e.g. enrollments)"
// @Success      200       {array}   ports.RosterRow
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Failure      502       {object}  map[string]string
// @Router       /{role}/{resource} [get]
func (h *RosterHandler) List(c echo.Context) error {
	sess, resource, err := h.routeInput(c)
	if err != nil {
		return err
	}

	rows, err := h.roster.List(c.Request().Context(), sess.AccessToken, resource)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// Create handles POST /{role}/:resource. The payload is forwarded verbatim;
// the platform owns validation and business rules.
func (h *RosterHandler) Create(c echo.Context) error {
	sess, resource, err := h.routeInput(c)
	if err != nil {
		return err
	}

	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	body, err := h.roster.Create(c.Request().Context(), sess.AccessToken, resource, payload)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, body)
}

// Update handles PATCH /{role}/:resource/:id.
func (h *RosterHandler) Update(c echo.Context) error {
	sess, resource, err := h.routeInput(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	body, err := h.roster.Update(c.Request().Context(), sess.AccessToken, resource, id, payload)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

// Delete handles DELETE /{role}/:resource/:id.
func (h *RosterHandler) Delete(c echo.Context) error {
	sess, resource, err := h.routeInput(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.roster.Delete(c.Request().Context(), sess.AccessToken, resource, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// routeInput resolves the session and the requested resource, enforcing the
// per-role allowlist.
func (h *RosterHandler) routeInput(c echo.Context) (*domain.Session, domain.Resource, error) {
	sess, err := ctxSession(c)
	if err != nil {
		return nil, "", err
	}

	resource, err := domain.ParseResource(c.Param("resource"))
	if err != nil {
		return nil, "", err
	}
	if !domain.RoleAllows(sess.Role, resource) {
		return nil, "", domain.ErrForbiddenResource
	}
	return sess, resource, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
