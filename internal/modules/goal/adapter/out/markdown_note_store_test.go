package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	goalout "readinglist/internal/modules/goal/adapter/out"
	"readinglist/internal/modules/goal/domain"
)

func TestNoteRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	goal := domain.Goal{
		ID:          7,
		Name:        "Café Classics",
		Description: "Read the canon",
		StartDate:   day("2026-01-01"),
		Deadline:    day("2026-06-30"),
		TargetBooks: domain.Target(2),
		TargetPages: domain.Target(600),
	}
	note := domain.Note{
		Progress: domain.ComputeProgress(goal, 2, 712),
		Books: []domain.GoalBook{
			{ISBN: "111", Title: "Dune", Pages: domain.Target(412)},
			{ISBN: "222", Title: "Emma"},
		},
	}

	store := goalout.NewMarkdownNoteStore()
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := store.Write(ctx, dir, note)
	if err != nil {
		t.Fatalf("write note: %v", err)
	}
	if filepath.Base(path) != "cafe-classics-7.md" {
		t.Fatalf("unexpected file name %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	for _, want := range []string{"kind: reading-goal", "# Café Classics", "- Status: ACHIEVED", "- Dune (111)"} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("note missing %q:\n%s", want, raw)
		}
	}

	got, err := store.Read(ctx, path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if diff := cmp.Diff(note, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRejectsForeignNote(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "other.md")
	if err := os.WriteFile(path, []byte("---\nkind: source\n---\nbody\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := goalout.NewMarkdownNoteStore().Read(context.Background(), path); err == nil {
		t.Fatalf("expected error for non-goal note")
	}
}
