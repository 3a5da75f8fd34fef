package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost 12 keeps hashing deliberately expensive; raise it as hardware catches up.
const cost = 12

func Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// Compare returns nil when password matches hashedPassword.
func Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
