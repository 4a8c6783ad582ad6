package validation

import (
	"regexp"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nonDigitRe = regexp.MustCompile(`\D`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword requires at least 8 characters with at least one letter,
// one digit and one special character.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

// NormalizeNIF strips every non-digit character and returns the result plus
// whether it is a valid 9-digit tax id. Empty input is allowed (NIF is
// optional) and returns ("", true).
func NormalizeNIF(nif string) (string, bool) {
	digits := nonDigitRe.ReplaceAllString(nif, "")
	if digits == "" {
		return "", true
	}
	if len(digits) != 9 {
		return digits, false
	}
	return digits, true
}
