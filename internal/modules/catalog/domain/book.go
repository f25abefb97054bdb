package domain

import (
	"fmt"
	"strings"
	"time"
)

// Book is a catalog entry. Authors and Subjects hold display names.
type Book struct {
	ISBN            string
	Title           string
	PublicationYear *int
	Pages           *int
	Description     string
	AddedAt         time.Time
	Authors         []string
	Subjects        []string
}

func (b Book) Validate() error {
	if strings.TrimSpace(b.ISBN) == "" {
		return fmt.Errorf("isbn is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if b.Pages != nil && *b.Pages <= 0 {
		return fmt.Errorf("pages must be a positive number")
	}
	if b.PublicationYear != nil && *b.PublicationYear <= 0 {
		return fmt.Errorf("publication year must be a positive number")
	}
	return nil
}

// Byline joins the authors for list rows.
func (b Book) Byline() string {
	if len(b.Authors) == 0 {
		return "Unknown author"
	}
	return strings.Join(b.Authors, ", ")
}

type Author struct {
	ID   int64
	Name string
}

type Subject struct {
	ID   int64
	Name string
}

// Tally pairs a named record with a count, for ranking queries.
type Tally struct {
	ID    int64
	Name  string
	Count int
}

// CleanNames trims, collapses inner whitespace and drops empty or repeated
// names, keeping first-seen order.
func CleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.Join(strings.Fields(name), " ")
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
