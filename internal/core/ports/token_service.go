package ports

import "github.com/devlink/devlink-api/internal/core/domain"

// TokenService issues and verifies the stateless signed credentials that
// bind a request to an actor. Verification is purely cryptographic: there
// is no server-side session table, so a credential stays valid until its
// expiry and rotating the signing secret invalidates every outstanding
// one at once. That tradeoff is accepted; revocation is out of scope.
type TokenService interface {
	Issue(subjectID string) (string, error)
	Verify(credential string) (domain.Actor, error)
}
