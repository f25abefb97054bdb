package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"readinglist/internal/modules/goal/domain"
	goalout "readinglist/internal/modules/goal/port/out"
	"readinglist/internal/platform/database"
	"readinglist/internal/platform/markdown"
	"readinglist/internal/platform/slug"
)

const noteKind = "reading-goal"

type noteBook struct {
	ISBN  string `yaml:"isbn"`
	Title string `yaml:"title"`
	Pages *int   `yaml:"pages,omitempty"`
}

type noteMeta struct {
	Kind        string     `yaml:"kind"`
	ID          int64      `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	StartDate   string     `yaml:"start_date"`
	Deadline    string     `yaml:"deadline"`
	TargetBooks *int       `yaml:"target_books,omitempty"`
	TargetPages *int       `yaml:"target_pages,omitempty"`
	Completed   bool       `yaml:"completed"`
	BooksAdded  int        `yaml:"books_added"`
	TotalPages  int        `yaml:"total_pages"`
	BookPercent float64    `yaml:"book_percent"`
	PagePercent float64    `yaml:"page_percent"`
	Achieved    bool       `yaml:"achieved"`
	Books       []noteBook `yaml:"books,omitempty"`
}

// MarkdownNoteStore writes goals as markdown notes with YAML frontmatter.
type MarkdownNoteStore struct{}

func NewMarkdownNoteStore() goalout.NoteStore {
	return MarkdownNoteStore{}
}

func (MarkdownNoteStore) Write(_ context.Context, dir string, note domain.Note) (string, error) {
	p := note.Progress
	g := p.Goal
	meta := noteMeta{
		Kind:        noteKind,
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		StartDate:   database.Date(g.StartDate),
		Deadline:    database.Date(g.Deadline),
		TargetBooks: g.TargetBooks,
		TargetPages: g.TargetPages,
		Completed:   g.Completed,
		BooksAdded:  p.BooksAdded,
		TotalPages:  p.TotalPages,
		BookPercent: p.BookProgressPercentage,
		PagePercent: p.PageProgressPercentage,
		Achieved:    p.Achieved,
	}
	for _, b := range note.Books {
		meta.Books = append(meta.Books, noteBook{ISBN: b.ISBN, Title: b.Title, Pages: b.Pages})
	}

	content, err := markdown.Render(meta, renderBody(note))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%d.md", slug.Make(g.Name), g.ID))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write goal note: %w", err)
	}
	return path, nil
}

func (MarkdownNoteStore) Read(_ context.Context, path string) (domain.Note, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Note{}, fmt.Errorf("read goal note: %w", err)
	}
	var meta noteMeta
	if _, err := markdown.Split(string(raw), &meta); err != nil {
		return domain.Note{}, err
	}
	if meta.Kind != noteKind {
		return domain.Note{}, fmt.Errorf("%s is not a reading goal note", path)
	}
	start, err := database.ParseTime(meta.StartDate)
	if err != nil {
		return domain.Note{}, fmt.Errorf("start_date: %w", err)
	}
	deadline, err := database.ParseTime(meta.Deadline)
	if err != nil {
		return domain.Note{}, fmt.Errorf("deadline: %w", err)
	}
	goal := domain.Goal{
		ID:          meta.ID,
		Name:        meta.Name,
		Description: meta.Description,
		StartDate:   start,
		Deadline:    deadline,
		TargetBooks: meta.TargetBooks,
		TargetPages: meta.TargetPages,
		Completed:   meta.Completed,
	}
	note := domain.Note{Progress: domain.ComputeProgress(goal, meta.BooksAdded, meta.TotalPages)}
	for _, b := range meta.Books {
		note.Books = append(note.Books, domain.GoalBook{ISBN: b.ISBN, Title: b.Title, Pages: b.Pages})
	}
	return note, nil
}

func renderBody(note domain.Note) string {
	p := note.Progress
	var sb strings.Builder
	sb.WriteString("# " + p.Goal.Name + "\n\n")
	if p.Goal.Description != "" {
		sb.WriteString(p.Goal.Description + "\n\n")
	}
	fmt.Fprintf(&sb, "Targets: %s by %s\n\n", p.Goal.TargetSummary(), p.Goal.Deadline.Format("Jan 02, 2006"))
	if p.Goal.TargetBooks != nil {
		fmt.Fprintf(&sb, "- Books: %d/%d (%.1f%%)\n", p.BooksAdded, *p.Goal.TargetBooks, p.BookProgressPercentage)
	}
	if p.Goal.TargetPages != nil {
		fmt.Fprintf(&sb, "- Pages: %d/%d (%.1f%%)\n", p.TotalPages, *p.Goal.TargetPages, p.PageProgressPercentage)
	}
	if p.Achieved {
		sb.WriteString("- Status: ACHIEVED\n")
	}
	if len(note.Books) > 0 {
		sb.WriteString("\n## Books\n\n")
		for _, b := range note.Books {
			fmt.Fprintf(&sb, "- %s (%s)\n", b.Title, b.ISBN)
		}
	}
	return sb.String()
}
