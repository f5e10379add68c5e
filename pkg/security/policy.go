package security

import (
	"fmt"
	"unicode"

	"github.com/knightmeat/taste-backend/pkg/config"
)

const defaultMinPasswordLength = 8

// ValidatePasswordStrength enforces the account password policy: a minimum
// length and at least one non-numeric character. Returns a human-readable
// reason when the password is rejected.
func ValidatePasswordStrength(password string, cfg config.PasswordConfig) error {
	minLength := cfg.MinLength
	if minLength <= 0 {
		minLength = defaultMinPasswordLength
	}

	if len(password) < minLength {
		return fmt.Errorf("password must be at least %d characters long", minLength)
	}

	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return fmt.Errorf("password cannot be entirely numeric")
	}

	return nil
}
