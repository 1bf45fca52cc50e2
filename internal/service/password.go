package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the fixed work factor for password hashing. Lowering it is a
// security regression, not a tuning choice.
const bcryptCost = 12

// ErrPasswordMismatch is returned by Verify when the password does not match
// the stored hash. Any other non-nil error means the stored hash itself is
// unusable and must be treated as an internal failure.
var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordVerifier abstracts the credential check so tests can substitute a
// deterministic implementation without weakening the production cost.
type PasswordVerifier interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type bcryptVerifier struct{}

func NewBcryptVerifier() PasswordVerifier {
	return bcryptVerifier{}
}

func (bcryptVerifier) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (bcryptVerifier) Verify(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}
