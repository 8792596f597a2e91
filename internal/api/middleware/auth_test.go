package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devlink/devlink-api/internal/core/domain"
)

type stubTokens struct {
	actor  domain.Actor
	err    error
	calls  int
	lastIn string
}

func (s *stubTokens) Issue(subjectID string) (string, error) {
	return "token-for-" + subjectID, nil
}

func (s *stubTokens) Verify(credential string) (domain.Actor, error) {
	s.calls++
	s.lastIn = credential
	if s.err != nil {
		return domain.Actor{}, s.err
	}
	return s.actor, nil
}

func TestAuth_ValidCredential(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	tokens := &stubTokens{actor: domain.Actor{SubjectID: "user-1"}}
	called := false
	handler := Auth(tokens, zerolog.Nop())(func(c echo.Context) error {
		called = true
		actor, ok := ActorFromContext(c)
		if !ok {
			t.Fatalf("actor not injected")
		}
		if actor.SubjectID != "user-1" {
			t.Fatalf("actor %q, want user-1", actor.SubjectID)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if tokens.lastIn != "good-token" {
		t.Fatalf("verified %q, want good-token", tokens.lastIn)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	tokens := &stubTokens{}
	handler := Auth(tokens, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if tokens.calls != 0 {
		t.Fatalf("token service consulted despite missing header")
	}
}

func TestAuth_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	tokens := &stubTokens{}
	handler := Auth(tokens, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if tokens.calls != 0 {
		t.Fatalf("token service consulted despite malformed header")
	}
}

// Rejection responses must not reveal why a credential failed. A forged
// token and an expired one produce byte-identical bodies.
func TestAuth_UniformRejection(t *testing.T) {
	reject := func(verifyErr error) (int, string) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		tokens := &stubTokens{err: verifyErr}
		handler := Auth(tokens, zerolog.Nop())(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})
		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec.Code, rec.Body.String()
	}

	forgedCode, forgedBody := reject(&domain.AuthError{Kind: domain.AuthInvalid, Err: errors.New("signature mismatch")})
	expiredCode, expiredBody := reject(&domain.AuthError{Kind: domain.AuthExpired, Err: errors.New("token expired")})

	if forgedCode != http.StatusUnauthorized || expiredCode != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", forgedCode, expiredCode)
	}
	if forgedBody != expiredBody {
		t.Fatalf("rejection bodies differ:\n%s\n%s", forgedBody, expiredBody)
	}
}

func TestActorFromContext_NoMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if _, ok := ActorFromContext(c); ok {
		t.Fatalf("actor resolved on a route without the middleware")
	}
}
