// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// Phone numbers may use an optional country prefix, a parenthesized area
// code, dot/dash/space separators, and either ASCII or Persian digits.
var phoneRegex = regexp.MustCompile(`^[+]?[(]?[0-9۰-۹]{3}[)]?[-\s.]?[0-9۰-۹]{3}[-\s.]?[0-9۰-۹]{4,6}$`)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	jsProtocolRegex  = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRegex = regexp.MustCompile(`(?i)on\w+=`)
	markupCharsRegex  = regexp.MustCompile(`[<>"'&]`)
)

// ValidatePhone reports whether a phone number matches the accepted format.
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidateEmail reports whether an email looks like local@domain.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// SanitizeInput strips markup-significant characters and script-injection
// fragments from free text before it is stored.
func SanitizeInput(input string) string {
	s := markupCharsRegex.ReplaceAllString(input, "")
	s = jsProtocolRegex.ReplaceAllString(s, "")
	s = eventHandlerRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
