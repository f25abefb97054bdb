package markdown_test

import (
	"strings"
	"testing"

	"readinglist/internal/platform/markdown"
)

type note struct {
	Name   string `yaml:"name"`
	Target *int   `yaml:"target,omitempty"`
}

func TestRenderThenSplit(t *testing.T) {
	t.Parallel()
	target := 12
	out, err := markdown.Render(note{Name: "Winter", Target: &target}, "# Winter\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "---\nname: Winter\ntarget: 12\n---\n") {
		t.Fatalf("unexpected frontmatter:\n%s", out)
	}

	var got note
	body, err := markdown.Split(out, &got)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if got.Name != "Winter" || got.Target == nil || *got.Target != 12 {
		t.Fatalf("unexpected meta: %+v", got)
	}
	if body != "# Winter\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitRejectsMalformedNotes(t *testing.T) {
	t.Parallel()
	var got note
	if _, err := markdown.Split("# no frontmatter", &got); err == nil {
		t.Fatalf("expected error for missing frontmatter")
	}
	if _, err := markdown.Split("---\nname: x\n", &got); err == nil {
		t.Fatalf("expected error for unclosed frontmatter")
	}
}
