package service

import "golang.org/x/crypto/bcrypt"

// Work-factor bounds. The cost is fixed at construction so a single hash
// can never be more expensive than the configured factor.
const (
	minBcryptCost = bcrypt.MinCost + 2
	maxBcryptCost = 14
)

// PasswordHasher produces and verifies salted, adaptive password digests.
type PasswordHasher interface {
	// Hash returns a self-describing digest. Two calls with the same
	// plaintext yield different outputs (per-call random salt); both
	// verify successfully.
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. It fails closed:
	// a malformed or empty hash is simply "no match", never an error or
	// panic, so broken stored data cannot become an auth bypass or an
	// error-based oracle.
	Verify(plaintext, hash string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. The salt and cost
// are embedded in the produced hash string, so stored hashes stay
// portable across cost changes.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost, clamped to
// [minBcryptCost, maxBcryptCost]. A non-positive cost selects
// bcrypt.DefaultCost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < minBcryptCost {
		cost = minBcryptCost
	}
	if cost > maxBcryptCost {
		cost = maxBcryptCost
	}
	return BcryptHasher{cost: cost}
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
