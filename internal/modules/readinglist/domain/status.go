package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is the stored form of a reading status.
type Status string

const (
	StatusToRead           Status = "to_read"
	StatusCurrentlyReading Status = "currently_reading"
	StatusCompleted        Status = "completed"
	StatusPaused           Status = "paused"
	StatusAbandoned        Status = "abandoned"
)

// Statuses lists every status in display order; keys 1-5 in the list screen
// follow it.
var Statuses = []Status{
	StatusToRead,
	StatusCurrentlyReading,
	StatusCompleted,
	StatusPaused,
	StatusAbandoned,
}

var titleCaser = cases.Title(language.English)

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label renders the status for people: "Currently Reading".
func (s Status) Label() string {
	return titleCaser.String(strings.ReplaceAll(string(s), "_", " "))
}

// ParseStatus accepts the stored form as well as labels and dashed forms.
func ParseStatus(raw string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	s := Status(norm)
	if !s.Valid() {
		return "", fmt.Errorf("unknown reading status %q", raw)
	}
	return s, nil
}
