package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devlink/devlink-api/internal/core/domain"
)

func render(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserExists, http.StatusBadRequest},
		{domain.ErrAlreadyLiked, http.StatusBadRequest},
		{domain.ErrNotLiked, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrProfileNotFound, http.StatusNotFound},
		{domain.ErrPostNotFound, http.StatusNotFound},
		{domain.ErrItemNotFound, http.StatusNotFound},
		{domain.ErrVersionConflict, http.StatusConflict},
	}
	for _, tc := range cases {
		rec := render(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	rec := render(t, fmt.Errorf("deleting post: %w", domain.ErrForbidden))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

// Every credential failure kind renders the same 401 envelope.
func TestHTTPErrorHandler_UniformAuthFailure(t *testing.T) {
	kinds := []domain.AuthErrorKind{domain.AuthMalformed, domain.AuthInvalid, domain.AuthExpired}

	var bodies []string
	for _, kind := range kinds {
		rec := render(t, &domain.AuthError{Kind: kind, Err: errors.New(string(kind))})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", kind, rec.Code)
		}
		bodies = append(bodies, rec.Body.String())
	}
	for _, b := range bodies[1:] {
		if b != bodies[0] {
			t.Fatalf("auth failure bodies differ:\n%s\n%s", bodies[0], b)
		}
	}
	if strings.Contains(bodies[0], "expired") || strings.Contains(bodies[0], "malformed") {
		t.Fatalf("body leaks rejection reason: %s", bodies[0])
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	rec := render(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid payload") {
		t.Fatalf("message lost: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	rec := render(t, errors.New("mongo: socket closed"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "socket") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}
