package service

import "golang.org/x/crypto/bcrypt"

// PasswordVault hashes and verifies account passwords with bcrypt. The
// per-call salt is embedded in the stored hash, so verification needs no
// separate lookup and comparison cost is constant in the work factor.
type PasswordVault struct {
	cost int
}

// NewPasswordVault returns a vault with the given bcrypt cost. Costs
// outside bcrypt's supported range fall back to the library default.
func NewPasswordVault(cost int) *PasswordVault {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordVault{cost: cost}
}

// Hash produces a salted one-way hash of plaintext.
func (v *PasswordVault) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), v.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A malformed
// stored hash fails closed: the answer is false, never an error that a
// caller could mistake for success.
func (v *PasswordVault) Verify(plaintext, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}
