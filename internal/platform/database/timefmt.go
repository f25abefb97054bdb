package database

import (
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = time.RFC3339
)

var readLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	DateLayout,
}

// Date formats t for a DATE column. Both dialects accept the ISO form, and it
// sorts lexically in SQLite.
func Date(t time.Time) string { return t.Format(DateLayout) }

func Timestamp(t time.Time) string { return t.UTC().Format(TimestampLayout) }

// ParseTime reads a date or timestamp column scanned into a string. SQLite
// hands back the stored text, postgres a time.Time that database/sql renders
// as RFC 3339.
func ParseTime(raw string) (time.Time, error) {
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", raw)
}
