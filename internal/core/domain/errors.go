package domain

import (
	"errors"
	"fmt"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many login attempts")

// ErrUnauthenticated is the uniform boundary error for every credential
// failure. The specific sub-reason lives in AuthError and is logged only,
// never sent to the client.
var ErrUnauthenticated = errors.New("unauthenticated")

var ErrForbidden = errors.New("access forbidden")
var ErrProfileNotFound = errors.New("profile not found")
var ErrPostNotFound = errors.New("post not found")
var ErrItemNotFound = errors.New("item not found")
var ErrAlreadyLiked = errors.New("post already liked")
var ErrNotLiked = errors.New("post not liked")

// ErrVersionConflict signals that an aggregate changed between load and
// store; the caller may retry with a fresh read.
var ErrVersionConflict = errors.New("aggregate version conflict")

// AuthErrorKind distinguishes why a credential was rejected.
type AuthErrorKind string

const (
	AuthMalformed AuthErrorKind = "malformed"
	AuthInvalid   AuthErrorKind = "invalid"
	AuthExpired   AuthErrorKind = "expired"
)

// AuthError wraps a credential verification failure with its kind. It
// matches ErrUnauthenticated under errors.Is so the boundary treats all
// kinds uniformly.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("credential %s: %v", e.Kind, e.Err)
	}
	return "credential " + string(e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrUnauthenticated }
