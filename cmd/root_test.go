package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/rdcli/rd/internal/reminder"
)

// testEnv points the CLI at a temp reminder file and silences ambient
// config sources.
func testEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".rd")
	t.Setenv("RD_FILE", path)
	t.Setenv("RD_DEFAULT_TIME", "")
	t.Setenv("RD_LOG_LEVEL", "error")
	t.Setenv("RD_LOG_FORMAT", "")
	t.Setenv("RD_LOG_TIMESTAMPS", "")
	return path
}

func TestRunUnknownCommand(t *testing.T) {
	testEnv(t)

	err := Run(context.Background(), []string{"frobnicate"})
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
}

func TestRunAddMissingArgs(t *testing.T) {
	testEnv(t)

	err := Run(context.Background(), []string{"add", "+1"})
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
}

func TestRunDoneNonIntegerID(t *testing.T) {
	testEnv(t)

	err := Run(context.Background(), []string{"done", "abc"})
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
}

func TestRunAddBadExpression(t *testing.T) {
	testEnv(t)

	err := Run(context.Background(), []string{"add", "13/45", "impossible"})
	var parseErr *reminder.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestRunDoneUnknownID(t *testing.T) {
	testEnv(t)

	err := Run(context.Background(), []string{"done", "3"})
	var notFound *reminder.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestRunAddThenDone(t *testing.T) {
	testEnv(t)

	if err := Run(context.Background(), []string{"add", "+0@12am", "call Bob"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// Midnight today is already past, so the reminder holds id 1.
	if err := Run(context.Background(), []string{"done", "1"}); err != nil {
		t.Fatalf("done failed: %v", err)
	}
	// The set is empty again; done now reports the id as unknown.
	err := Run(context.Background(), []string{"done", "1"})
	var notFound *reminder.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError after set emptied, got %v", err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{&reminder.ParseError{Input: "x", Reason: "bad"}, 2},
		{&reminder.NotFoundError{ID: 3}, 2},
		{&UsageError{Msg: "nope"}, 2},
		{fmt.Errorf("wrapped: %w", &reminder.ParseError{Input: "x", Reason: "bad"}), 2},
		{errors.New("disk on fire"), 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
