package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	require.NoError(t, root.Execute(), strings.Join(args, " "))
	return out.String()
}

func TestCommandsShareOneDatabase(t *testing.T) {
	dir := t.TempDir()

	assert.Contains(t, run(t, dir, "migrate"), "schema up to date (sqlite)")
	assert.Contains(t, run(t, dir, "book", "add", "9780441013593",
		"--title", "Dune", "--author", "Frank Herbert", "--pages", "412", "--year", "1965", "--subject", "Fiction"),
		"added Dune (9780441013593)")

	assert.Contains(t, run(t, dir, "book", "search", "herbert"), "9780441013593\tDune\tFrank Herbert\t1965\t412")
	assert.Contains(t, run(t, dir, "list", "add", "9780441013593"), "added entry 1")
	assert.Contains(t, run(t, dir, "list", "set", "1", "completed"), "entry 1 is now completed")
	assert.Contains(t, run(t, dir, "list", "rate", "1", "5", "--notes", "spice"), "rated entry 1 5/5")
	assert.Contains(t, run(t, dir, "list", "show"), "1\t9780441013593\tDune\tFrank Herbert\tcompleted\t5")

	assert.Contains(t, run(t, dir, "goal", "create", "Classics", "--deadline", "2099-01-01", "--books", "2"),
		"created goal 1 Classics")
	assert.Contains(t, run(t, dir, "goal", "add-book", "1", "9780441013593"), "added 9780441013593 to goal 1")
	assert.Contains(t, run(t, dir, "goal", "progress", "1"), "books:    1 / 2 (50.0%)")

	notes := filepath.Join(dir, "notes")
	assert.Contains(t, run(t, dir, "goal", "export", "1", "--dir", notes), filepath.Join(notes, "classics-1.md"))

	stats := run(t, dir, "stats")
	assert.Contains(t, stats, "entries\t1\ncompleted\t1\n")
	assert.Contains(t, stats, "average rating\t5.00 (1 rated)")
	assert.Contains(t, stats, "active goals\t1")
}

func TestUnknownEntryFails(t *testing.T) {
	dir := t.TempDir()
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--data-dir", dir, "list", "remove", "42"})
	assert.ErrorContains(t, root.Execute(), "not found")
}
