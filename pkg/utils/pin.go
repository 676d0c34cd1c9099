package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// IsValidPin reports whether a candidate PIN is exactly 4 decimal digits.
// No trimming or normalization is applied.
func IsValidPin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

// HashPin hashes a booking PIN for storage
func HashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPin compares a presented PIN against the stored hash
func CheckPin(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
