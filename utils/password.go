package utils

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ValidatePassword enforces the signup rule: at least 8 alphanumeric
// characters including one digit and one uppercase letter.
func ValidatePassword(pwd string) error {
	if len(pwd) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var hasDigit, hasUpper bool
	for _, r := range pwd {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return errors.New("password must contain only letters and digits")
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	if !hasDigit || !hasUpper {
		return errors.New("password needs at least one digit and one uppercase letter")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
