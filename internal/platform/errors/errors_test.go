package apperrors_test

import (
	"fmt"
	"testing"

	apperrors "readinglist/internal/platform/errors"
)

func TestIsUserFacing(t *testing.T) {
	t.Parallel()
	cases := map[error]bool{
		fmt.Errorf("goal 4: %w", apperrors.ErrNotFound):    true,
		fmt.Errorf("name: %w", apperrors.ErrInvalidInput):  true,
		fmt.Errorf("isbn 123: %w", apperrors.ErrConflict):  true,
		fmt.Errorf("list goals: %w", apperrors.ErrStorage): false,
		fmt.Errorf("plain failure"):                        false,
	}
	for err, want := range cases {
		if got := apperrors.IsUserFacing(err); got != want {
			t.Fatalf("IsUserFacing(%v) = %v, want %v", err, got, want)
		}
	}
}
