package domain

import "strings"

// specialChars is the fixed set a password must draw at least one
// character from.
const specialChars = "!@#$%^&()-_="

// ValidPassword reports whether a password meets the registration policy:
// at least 8 characters, with at least one lowercase letter, one uppercase
// letter, and one character from specialChars. Pure function, no state.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var lower, upper, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	return lower && upper && special
}
