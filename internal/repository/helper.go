package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// storedTimeLayout is RFC3339 with fixed-width milliseconds. The fractional
// part must be fixed width; otherwise string comparison in ORDER BY would not
// match chronological order.
const storedTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// ParseTime parses a timestamp string in RFC3339, SQLite datetime or
// "2006-01-02" format. All repository timestamps are returned in UTC.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse time %q", str)
}

// FormatTime renders a timestamp for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

// ParseDecimal parses a money column stored as TEXT.
func ParseDecimal(str string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse decimal %q: %w", str, err)
	}
	return d, nil
}
