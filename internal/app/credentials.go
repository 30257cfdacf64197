package app

import (
	"regexp"
	"strings"
)

const (
	minPasswordLen = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordLen   = 72
	passwordSpecials = "@$!%*?&"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validPassword requires 8 to 72 characters drawn from ASCII letters, digits
// and @$!%*?&, with at least one of each class, and a matching confirmation.
func validPassword(password, confirm string) bool {
	if password != confirm {
		return false
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return upper && lower && digit && special
}
