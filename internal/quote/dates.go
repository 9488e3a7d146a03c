package quote

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the customer-facing date format.
const DateLayout = "02/01/2006"

const secondsPerDay = 24 * 60 * 60

// ParseDate parses a DD/MM/YYYY date in UTC. Out-of-range day and month
// values roll over the way time.Date normalises them ("32/01/2025" is
// February 1st).
func ParseDate(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// NightsBetweenDates returns the number of nights between two DD/MM/YYYY
// dates. Reversed, equal, empty or malformed dates yield 0.
func NightsBetweenDates(from, to string) int {
	if from == "" || to == "" {
		return 0
	}
	start, ok := ParseDate(from)
	if !ok {
		return 0
	}
	end, ok := ParseDate(to)
	if !ok {
		return 0
	}

	// both are UTC midnights, so the difference is whole days
	days := (end.Unix() - start.Unix()) / secondsPerDay
	if days <= 0 {
		return 0
	}
	return int(days)
}

// FormatDateInput reformats typed text into DD/MM/YYYY as the user types:
// non-digits are dropped, slashes are inserted after the day and month, and
// anything past eight digits is cut.
func FormatDateInput(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	s := b.String()

	if len(s) >= 2 {
		s = s[:2] + "/" + s[2:]
	}
	if len(s) >= 5 {
		end := len(s)
		if end > 9 {
			end = 9
		}
		s = s[:5] + "/" + s[5:end]
	}
	return s
}
