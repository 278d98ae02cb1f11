package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("employee", 42),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "Invalid wraps ErrInvalid",
			err:       Invalid("no data"),
			target:    ErrInvalid,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("duplicate username: amy"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("invalid username/password"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "NotFound does not match ErrConflict",
			err:       NotFound("skill", 7),
			target:    ErrConflict,
			wantMatch: false,
		},
		{
			name:      "plain error matches nothing",
			err:       errors.New("boom"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := errors.Is(tc.err, tc.target); got != tc.wantMatch {
				t.Fatalf("errors.Is(%v, %v) = %v, want %v", tc.err, tc.target, got, tc.wantMatch)
			}
		})
	}
}

func TestErrorsIsThroughWrap(t *testing.T) {
	wrapped := fmt.Errorf("update employee: %w", NotFound("employee", 9))
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("expected wrapped error to match ErrNotFound")
	}
}

func TestMessages(t *testing.T) {
	if got := NotFound("user", "amy").Error(); got != "no user: amy" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := Invalid("no data").Error(); got != "no data" {
		t.Fatalf("unexpected message: %q", got)
	}
}
