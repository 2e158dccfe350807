package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"a@b", true},
		{"  spaced@host  ", true},
		{"no-at-sign", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEmail(tt.email))
		})
	}
}

func TestCardChecks(t *testing.T) {
	assert.True(t, IsValidCardNumber("4111 1111 1111 1111"))
	assert.True(t, IsValidCardNumber("4111111111111"))
	assert.False(t, IsValidCardNumber("411111111111"))

	assert.True(t, IsValidCVV("123"))
	assert.True(t, IsValidCVV("1234"))
	assert.False(t, IsValidCVV("12"))
}

func TestCardBrand(t *testing.T) {
	tests := []struct {
		number string
		brand  string
	}{
		{"4111111111111111", "Visa"},
		{"5500000000000004", "Mastercard"},
		{"340000000000009", "Amex"},
		{"6011000000000004", "Card"},
		{"", "Card"},
	}

	for _, tt := range tests {
		t.Run(tt.brand+"_"+tt.number, func(t *testing.T) {
			assert.Equal(t, tt.brand, CardBrand(tt.number))
		})
	}
}

func TestLastFour(t *testing.T) {
	assert.Equal(t, "1111", LastFour("4111 1111 1111 1111"))
	assert.Equal(t, "12", LastFour("12"))
}

func TestTrimAndValidate(t *testing.T) {
	trimmed, ok := TrimAndValidate("  Kyiv ")
	assert.True(t, ok)
	assert.Equal(t, "Kyiv", trimmed)

	_, ok = TrimAndValidate("   ")
	assert.False(t, ok)
}
