package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// NewConfirmationCode returns a fresh opaque code. The plaintext goes out by
// email, only the hash is stored.
func NewConfirmationCode() string {
	return uuid.New().String()
}

// HashConfirmationCode creates a bcrypt hash of the code for storage.
func HashConfirmationCode(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyConfirmationCode checks a submitted code against the stored hash.
// bcrypt's compare is constant time over the hash.
func VerifyConfirmationCode(storedHash, providedCode string) error {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(providedCode))
}
