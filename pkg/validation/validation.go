package validation

import (
	"strings"
	"unicode"
)

const (
	MinCardNumberLength = 13
	MinCVVLength        = 3
)

// IsValidEmail mirrors the form check used by the dashboard: any address containing "@".
func IsValidEmail(email string) bool {
	return strings.Contains(strings.TrimSpace(email), "@")
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// DigitsOnly strips spaces and dashes a user may type into a card number field.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCardNumber requires at least 13 digits.
func IsValidCardNumber(number string) bool {
	return len(DigitsOnly(number)) >= MinCardNumberLength
}

// IsValidCVV requires at least 3 digits.
func IsValidCVV(cvv string) bool {
	return len(DigitsOnly(cvv)) >= MinCVVLength
}

// CardBrand derives the display brand from the first digit.
func CardBrand(number string) string {
	digits := DigitsOnly(number)
	if digits == "" {
		return "Card"
	}
	switch digits[0] {
	case '4':
		return "Visa"
	case '5':
		return "Mastercard"
	case '3':
		return "Amex"
	default:
		return "Card"
	}
}

// LastFour returns the trailing four digits of a card number.
func LastFour(number string) string {
	digits := DigitsOnly(number)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
