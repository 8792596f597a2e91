package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devlink/devlink-api/internal/core/domain"
	"github.com/devlink/devlink-api/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// subjectClaim nests the subject id the way clients expect it on the
// wire: {"user": {"id": "..."}}.
type subjectClaim struct {
	ID string `json:"id"`
}

type tokenClaims struct {
	User subjectClaim `json:"user"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed credentials. The signing
// secret is loaded once at startup and held read-only for the process
// lifetime.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. If ttl <= 0, defaultTokenTTL is
// used.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

var _ ports.TokenService = (*TokenService)(nil)

// Issue creates a credential bound to subjectID, valid from now until
// now + TTL.
func (s *TokenService) Issue(subjectID string) (string, error) {
	now := s.now()
	claims := tokenClaims{
		User: subjectClaim{ID: subjectID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify recomputes the signature over the supplied credential and, when
// it matches and the token has not expired, returns the actor it was
// issued to. Failures carry a domain.AuthError whose kind is for logging
// only; every kind matches domain.ErrUnauthenticated at the boundary.
func (s *TokenService) Verify(credential string) (domain.Actor, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(credential, claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		return domain.Actor{}, &domain.AuthError{Kind: classifyTokenError(err), Err: err}
	}
	if !token.Valid || claims.User.ID == "" {
		return domain.Actor{}, &domain.AuthError{Kind: domain.AuthInvalid, Err: jwt.ErrTokenInvalidClaims}
	}
	return domain.Actor{SubjectID: claims.User.ID}, nil
}

func classifyTokenError(err error) domain.AuthErrorKind {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.AuthMalformed
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return domain.AuthExpired
	default:
		return domain.AuthInvalid
	}
}
