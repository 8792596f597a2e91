// Package gravatar derives avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// URL returns the Gravatar URL for email: 200px, PG-rated, with the
// "mystery person" placeholder for addresses without an avatar.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mp", md5.Sum([]byte(normalized)))
}
