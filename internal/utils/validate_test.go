package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidNationalID(t *testing.T) {
	tests := []struct {
		id       string
		expected bool
	}{
		{"12345678", true},
		{"00000001", true},
		{"1234567", false},   // too short
		{"123456789", false}, // too long
		{"1234567a", false},
		{"", false},
		{" 12345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidNationalID(tt.id))
		})
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone    string
		expected bool
	}{
		{"+51987654321", true},
		{"987654321", false},    // missing country code
		{"+5198765432", false},  // nine digits required after +51
		{"+519876543210", false},
		{"+52987654321", false}, // wrong country
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidPhone(tt.phone))
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		d, err := ParseDate("2024-06-15")
		assert.NoError(t, err)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.June, d.Month())
		assert.Equal(t, 15, d.Day())
	})

	t.Run("Out of range components", func(t *testing.T) {
		_, err := ParseDate("2024-13-40")
		assert.Error(t, err)
	})

	t.Run("Wrong separator", func(t *testing.T) {
		_, err := ParseDate("2024/06/15")
		assert.Error(t, err)
	})

	t.Run("Nonexistent calendar day", func(t *testing.T) {
		_, err := ParseDate("2023-02-29")
		assert.Error(t, err)
	})
}

func TestValidDateOrder(t *testing.T) {
	pickup := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, ValidDateOrder(pickup, pickup.AddDate(0, 0, 3)))
	assert.True(t, ValidDateOrder(pickup, pickup), "same-day rental is allowed")
	assert.False(t, ValidDateOrder(pickup, pickup.AddDate(0, 0, -5)))
}
