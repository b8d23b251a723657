package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Cost 12 takes roughly 250ms per
// hash on current server hardware — negligible for a login, expensive for a
// brute-force attacker. bcrypt embeds a random salt in the output, so equal
// passwords never produce equal hashes.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// It is a struct rather than free functions so the cost can be lowered in
// tests: cost 4 (the bcrypt minimum) makes test runs fast without changing
// any of the logic under test.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the production cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a caller-chosen
// cost. Use bcrypt.MinCost in tests; never in production.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password. The returned string is self-contained
// (version, cost, salt, digest) and goes straight into the password_hash
// column.
//
// bcrypt silently truncates input beyond 72 bytes, so we reject longer
// passwords explicitly instead of surprising the user later.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify reports whether plaintext matches a stored bcrypt hash. Returns nil
// on match. The comparison is constant-time inside bcrypt, so it is safe
// against timing attacks.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
