package domain

import (
	"regexp"
	"unicode/utf8"
)

const (
	MinAddressLength = 3
	MaxAddressLength = 200
)

// Whitelist: ASCII letters, digits, whitespace, comma, period, hyphen.
var addressPattern = regexp.MustCompile(`^[a-zA-Z0-9\s,.\-]+$`)

// ValidateAddress reports whether s is an acceptable free-text address.
// Inputs outside the whitelist are rejected, never escaped.
func ValidateAddress(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < MinAddressLength || n > MaxAddressLength {
		return false
	}

	return addressPattern.MatchString(s)
}
