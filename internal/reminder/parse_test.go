package reminder

import (
	"errors"
	"testing"
	"time"
)

// today is mid-morning so that date-only comparisons are exercised against
// a non-midnight "now".
var parseToday = time.Date(2024, 3, 1, 10, 30, 0, 0, time.Local)

func TestParseDueOffsets(t *testing.T) {
	tests := []struct {
		expr string
		want time.Time
	}{
		{"+0@2pm", time.Date(2024, 3, 1, 14, 0, 0, 0, time.Local)},
		{"+1", time.Date(2024, 3, 2, 8, 0, 0, 0, time.Local)},
		{"+3@15", time.Date(2024, 3, 4, 15, 0, 0, 0, time.Local)},
		{"+0@12am", time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)},
		{"+0@12pm", time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)},
		// Offsets spanning a month boundary.
		{"+31", time.Date(2024, 4, 1, 8, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res, err := ParseDue(tt.expr, parseToday, "")
			if err != nil {
				t.Fatalf("ParseDue(%q) failed: %v", tt.expr, err)
			}
			if !res.Time.Equal(tt.want) {
				t.Errorf("ParseDue(%q): got %v, want %v", tt.expr, res.Time, tt.want)
			}
			if res.NextYear || res.NearMiss {
				t.Errorf("ParseDue(%q): offsets must never roll, got %+v", tt.expr, res)
			}
		})
	}
}

func TestParseDueMonthDay(t *testing.T) {
	tests := []struct {
		expr     string
		want     time.Time
		nextYear bool
		nearMiss bool
	}{
		// At or after today keeps the current year.
		{"12/25", time.Date(2024, 12, 25, 8, 0, 0, 0, time.Local), false, false},
		{"03/01", time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local), false, false},
		{"3/2@5pm", time.Date(2024, 3, 2, 17, 0, 0, 0, time.Local), false, false},
		// Recently passed: next year, flagged as a likely mistake.
		{"02/28", time.Date(2025, 2, 28, 8, 0, 0, 0, time.Local), true, true},
		{"2/1@9am", time.Date(2025, 2, 1, 9, 0, 0, 0, time.Local), true, true},
		// Long passed: next year, clearly intentional.
		{"01/15", time.Date(2025, 1, 15, 8, 0, 0, 0, time.Local), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res, err := ParseDue(tt.expr, parseToday, "")
			if err != nil {
				t.Fatalf("ParseDue(%q) failed: %v", tt.expr, err)
			}
			if !res.Time.Equal(tt.want) {
				t.Errorf("ParseDue(%q): got %v, want %v", tt.expr, res.Time, tt.want)
			}
			if res.NextYear != tt.nextYear {
				t.Errorf("ParseDue(%q): NextYear = %v, want %v", tt.expr, res.NextYear, tt.nextYear)
			}
			if res.NearMiss != tt.nearMiss {
				t.Errorf("ParseDue(%q): NearMiss = %v, want %v", tt.expr, res.NearMiss, tt.nearMiss)
			}
		})
	}
}

func TestParseDueDefaultTime(t *testing.T) {
	res, err := ParseDue("+1", parseToday, "9pm")
	if err != nil {
		t.Fatalf("ParseDue failed: %v", err)
	}
	want := time.Date(2024, 3, 2, 21, 0, 0, 0, time.Local)
	if !res.Time.Equal(want) {
		t.Errorf("got %v, want %v", res.Time, want)
	}

	// The @-suffix still wins over the configured default.
	res, err = ParseDue("+1@6am", parseToday, "9pm")
	if err != nil {
		t.Fatalf("ParseDue failed: %v", err)
	}
	want = time.Date(2024, 3, 2, 6, 0, 0, 0, time.Local)
	if !res.Time.Equal(want) {
		t.Errorf("got %v, want %v", res.Time, want)
	}
}

func TestParseDueErrors(t *testing.T) {
	tests := []string{
		"12/25@1@2", // more than one @
		"+0@25",     // hour out of range
		"+0@24",
		"+0@13pm",
		"+0@0am",
		"+0@noon",
		"13/01", // bad month
		"1/32",  // bad day
		"2/30",  // no such date
		"banana",
		"+x",
		"",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseDue(expr, parseToday, "")
			if err == nil {
				t.Fatalf("ParseDue(%q): expected error", expr)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("ParseDue(%q): error %v is not a ParseError", expr, err)
			}
			if parseErr.Input != expr {
				t.Errorf("ParseError.Input = %q, want %q", parseErr.Input, expr)
			}
		})
	}
}

func TestParseDueLeapDayRollover(t *testing.T) {
	// Feb 29 exists in 2024 but rolling it into 2025 has nowhere to land.
	_, err := ParseDue("2/29", parseToday, "")
	if err == nil {
		t.Fatal("expected error for 2/29 rolled into a non-leap year")
	}
}

func TestParseTimeSpec(t *testing.T) {
	tests := []struct {
		spec string
		want int
	}{
		{"2am", 2},
		{"12am", 0},
		{"2pm", 14},
		{"12pm", 12},
		{"11pm", 23},
		{"15", 15},
		{"0", 0},
		{"23", 23},
	}

	for _, tt := range tests {
		got, err := parseTimeSpec(tt.spec)
		if err != nil {
			t.Errorf("parseTimeSpec(%q) failed: %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTimeSpec(%q) = %d, want %d", tt.spec, got, tt.want)
		}
	}
}
