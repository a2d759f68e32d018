package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"invalid role claim", domain.ErrInvalidRoleClaim, http.StatusUnauthorized, "authentication failed"},
		{"malformed token", domain.ErrMalformedToken, http.StatusUnauthorized, "authentication failed"},
		{"not authenticated", domain.ErrNotAuthenticated, http.StatusUnauthorized, "login required"},
		{"unknown resource", domain.ErrUnknownResource, http.StatusNotFound, "unknown resource"},
		{"forbidden resource", domain.ErrForbiddenResource, http.StatusForbidden, "access forbidden"},
		{"upstream wrapped", fmt.Errorf("%w: GET /api/courses/ returned 503", domain.ErrUpstream), http.StatusBadGateway, "upstream request failed"},
		{"echo error", echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "short and stout"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handle(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			want := fmt.Sprintf("{%q:%q}\n", "error", tc.msg)
			if rec.Body.String() != want {
				t.Fatalf("expected body %q, got %q", want, rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := c.NoContent(http.StatusAccepted); err != nil {
		t.Fatalf("commit response: %v", err)
	}

	handle(errors.New("late failure"), c)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("committed response was overwritten: %d", rec.Code)
	}
}
