package account

import (
	"regexp"
	"strings"
)

// Zambian mobile numbers: ten digits starting 09 or 07.
var phonePattern = regexp.MustCompile(`^0(9|7)[0-9]{8}$`)

const phoneMessage = "Please enter a valid Zambian phone number (e.g., 097xxxxxxx)"

// NormalizePhone drops everything but digits, as the phone field does
// while typing.
func NormalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// ValidatePhone checks a normalized phone number.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return &ValidationError{Field: "phone", Message: phoneMessage}
	}
	return nil
}
