package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"readinglist/internal/modules/goal/domain"
)

func TestComputeProgressScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		goal     domain.Goal
		books    int
		pages    int
		wantBook float64
		wantPage float64
		bookMet  bool
		pageMet  bool
		wantAchv bool
	}{
		{
			name:  "both targets exactly met",
			goal:  domain.Goal{TargetBooks: domain.Target(5), TargetPages: domain.Target(1000)},
			books: 5, pages: 1000,
			wantBook: 100, wantPage: 100, bookMet: true, pageMet: true, wantAchv: true,
		},
		{
			name:  "book target only, partially done",
			goal:  domain.Goal{TargetBooks: domain.Target(10)},
			books: 3, pages: 0,
			wantBook: 30, wantPage: 100, bookMet: false, pageMet: true, wantAchv: false,
		},
		{
			name:  "nothing read against both targets",
			goal:  domain.Goal{TargetBooks: domain.Target(4), TargetPages: domain.Target(800)},
			books: 0, pages: 0,
			wantBook: 0, wantPage: 0, bookMet: false, pageMet: false, wantAchv: false,
		},
		{
			name:  "page target only is achieved on pages alone",
			goal:  domain.Goal{TargetPages: domain.Target(300)},
			books: 0, pages: 450,
			wantBook: 100, wantPage: 100, bookMet: true, pageMet: true, wantAchv: true,
		},
		{
			name:  "no targets is vacuously achieved",
			goal:  domain.Goal{},
			books: 0, pages: 0,
			wantBook: 100, wantPage: 100, bookMet: true, pageMet: true, wantAchv: true,
		},
		{
			name:  "pages met but books behind",
			goal:  domain.Goal{TargetBooks: domain.Target(4), TargetPages: domain.Target(200)},
			books: 1, pages: 250,
			wantBook: 25, wantPage: 100, bookMet: false, pageMet: true, wantAchv: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := domain.ComputeProgress(tt.goal, tt.books, tt.pages)
			want := domain.Progress{
				Goal:                   tt.goal,
				BooksAdded:             tt.books,
				TotalPages:             tt.pages,
				BookProgressPercentage: tt.wantBook,
				PageProgressPercentage: tt.wantPage,
				BookTargetMet:          tt.bookMet,
				PageTargetMet:          tt.pageMet,
				Achieved:               tt.wantAchv,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("progress mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeProgressClampsOverachievement(t *testing.T) {
	t.Parallel()
	for target := 1; target <= 20; target++ {
		goal := domain.Goal{TargetBooks: domain.Target(target)}
		for books := target + 1; books <= target*3; books++ {
			p := domain.ComputeProgress(goal, books, 0)
			if p.BookProgressPercentage != 100 || !p.BookTargetMet {
				t.Fatalf("target %d, books %d: got %.2f%% met=%v", target, books, p.BookProgressPercentage, p.BookTargetMet)
			}
		}
	}
}

func TestComputeProgressIgnoresPagesWithoutPageTarget(t *testing.T) {
	t.Parallel()
	goal := domain.Goal{TargetBooks: domain.Target(3)}
	for _, pages := range []int{0, 1, 299, 100000} {
		p := domain.ComputeProgress(goal, 1, pages)
		if p.PageProgressPercentage != 100 || !p.PageTargetMet {
			t.Fatalf("pages %d: got %.2f%% met=%v", pages, p.PageProgressPercentage, p.PageTargetMet)
		}
	}
}

func TestStanding(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	goal := domain.Goal{TargetBooks: domain.Target(2), Deadline: now.Add(72 * time.Hour)}

	if s := domain.ComputeProgress(goal, 2, 0).Standing(now); !s.Achieved {
		t.Fatalf("expected achieved standing, got %+v", s)
	}
	if s := domain.ComputeProgress(goal, 1, 0).Standing(now); s.DaysLeft != 3 || s.Overdue {
		t.Fatalf("expected 3 days left, got %+v", s)
	}
	if s := domain.ComputeProgress(goal, 1, 0).Standing(now.Add(96 * time.Hour)); !s.Overdue {
		t.Fatalf("expected overdue, got %+v", s)
	}
}
