package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		hasError bool
	}{
		{"statement layout", "01/12/2025", time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), false},
		{"day first on ambiguous value", "03/04/2025", time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), false},
		{"dashed", "15-06-2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"dotted", "15.06.2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"iso", "2024-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"named month", "2 Jan 2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"extra whitespace", "  01/12/2025  ", time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"narration text", "TRANSFER TO JOHN", time.Time{}, true},
		{"bare amount", "7037.31", time.Time{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseDate(tc.input)

			if tc.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2024-06-15", "15/06/2024"},
		{"15.06.2024", "15/06/2024"},
		{"01/12/2025", "01/12/2025"},
	}

	for _, tc := range tests {
		got, err := Normalize(tc.input)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, got)
	}

	_, err := Normalize("not a date")
	assert.Error(t, err)
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("01/12/2025"))
	assert.False(t, IsDate("OPENING BALANCE"))
}
