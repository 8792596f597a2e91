package domain

import "time"

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor is the identity resolved from a verified credential for the
// duration of one request.
type Actor struct {
	SubjectID string
}
