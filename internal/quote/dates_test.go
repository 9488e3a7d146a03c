package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNightsBetweenDates(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected int
	}{
		{"three nights", "15/12/2024", "18/12/2024", 3},
		{"reversed", "18/12/2024", "15/12/2024", 0},
		{"same day", "15/12/2024", "15/12/2024", 0},
		{"across new year", "31/12/2024", "01/01/2025", 1},
		{"leap day", "28/02/2024", "01/03/2024", 2},
		{"day overflow rolls into next month", "31/01/2025", "32/01/2025", 1},
		{"month overflow rolls into next year", "01/12/2024", "01/13/2024", 31},
		{"missing from", "", "18/12/2024", 0},
		{"missing to", "15/12/2024", "", 0},
		{"too few parts", "15/12", "18/12/2024", 0},
		{"too many parts", "15/12/2024/1", "18/12/2024", 0},
		{"not numbers", "aa/bb/cccc", "18/12/2024", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NightsBetweenDates(tt.from, tt.to))
		})
	}
}

func TestFormatDateInput(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12/"},
		{"123", "12/3"},
		{"1234", "12/34/"},
		{"15122024", "15/12/2024"},
		{"15/12/2024", "15/12/2024"},
		{"15-12-2024", "15/12/2024"},
		{"151220241234", "15/12/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDateInput(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("05/03/2025")
	assert.True(t, ok)
	assert.Equal(t, "05/03/2025", d.Format(DateLayout))

	_, ok = ParseDate("5 March 2025")
	assert.False(t, ok)
}
