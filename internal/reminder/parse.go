package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeSpec is the time-of-day assumed when an expression carries no
// @-suffix and no override is configured.
const DefaultTimeSpec = "8am"

// rolloverWindowDays is how far in the past a month/day reading may fall
// before a next-year interpretation stops looking like a user mistake.
const rolloverWindowDays = 30

// Resolved is the outcome of parsing a due-date expression.
type Resolved struct {
	// Time is the absolute due instant: local time, minute and second zero.
	Time time.Time

	// NextYear is set when a month/day reading fell before today and was
	// advanced to next year.
	NextYear bool

	// NearMiss is set when the rolled-over reading was within the last 30
	// days, which usually means the user mistyped the date.
	NearMiss bool
}

// ParseDue resolves a due-date expression of the form day[@time] against
// today. The day part is either MM/DD (year inferred, rolling to next year
// when the date already passed) or +N (N days from today, never rolled).
// The time part is Ham, Hpm, or a bare 24-hour H; defaultTime applies when
// the expression has no @-suffix, falling back to DefaultTimeSpec when empty.
func ParseDue(expr string, today time.Time, defaultTime string) (Resolved, error) {
	parts := strings.Split(expr, "@")
	if len(parts) > 2 {
		return Resolved{}, &ParseError{Input: expr, Reason: "more than one @"}
	}

	if defaultTime == "" {
		defaultTime = DefaultTimeSpec
	}
	timeSpec := defaultTime
	if len(parts) == 2 {
		timeSpec = parts[1]
	}

	hour, err := parseTimeSpec(timeSpec)
	if err != nil {
		return Resolved{}, &ParseError{Input: expr, Reason: err.Error()}
	}

	loc := today.Location()
	today = truncateToDay(today)

	daySpec := parts[0]
	if strings.HasPrefix(daySpec, "+") {
		n, err := strconv.Atoi(daySpec[1:])
		if err != nil {
			return Resolved{}, &ParseError{Input: expr, Reason: fmt.Sprintf("bad day offset %q", daySpec)}
		}
		d := today.AddDate(0, 0, n)
		return Resolved{Time: time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, loc)}, nil
	}

	month, dom, err := parseMonthDay(daySpec)
	if err != nil {
		return Resolved{}, &ParseError{Input: expr, Reason: err.Error()}
	}

	year := today.Year()
	day, ok := makeDate(year, month, dom, loc)
	if !ok {
		return Resolved{}, &ParseError{Input: expr, Reason: fmt.Sprintf("no such date %q", daySpec)}
	}

	res := Resolved{}
	if day.Before(today) {
		res.NextYear = true
		res.NearMiss = day.After(today.AddDate(0, 0, -rolloverWindowDays))
		year++
		day, ok = makeDate(year, month, dom, loc)
		if !ok {
			return Resolved{}, &ParseError{Input: expr, Reason: fmt.Sprintf("no such date %q next year", daySpec)}
		}
	}

	res.Time = time.Date(year, time.Month(month), dom, hour, 0, 0, 0, loc)
	return res, nil
}

// parseTimeSpec returns the hour named by a time spec: "2am" is 2, "5pm" is
// 17, 12am is midnight, 12pm is noon, and a bare integer is a 24-hour value.
func parseTimeSpec(s string) (int, error) {
	switch {
	case strings.HasSuffix(s, "am"):
		h, err := strconv.Atoi(strings.TrimSuffix(s, "am"))
		if err != nil || h < 1 || h > 12 {
			return 0, fmt.Errorf("bad hour %q", s)
		}
		if h == 12 {
			return 0, nil
		}
		return h, nil
	case strings.HasSuffix(s, "pm"):
		h, err := strconv.Atoi(strings.TrimSuffix(s, "pm"))
		if err != nil || h < 1 || h > 12 {
			return 0, fmt.Errorf("bad hour %q", s)
		}
		if h == 12 {
			return 12, nil
		}
		return h + 12, nil
	default:
		h, err := strconv.Atoi(s)
		if err != nil || h < 0 || h > 23 {
			return 0, fmt.Errorf("bad hour %q", s)
		}
		return h, nil
	}
}

// parseMonthDay splits an MM/DD literal. Fine-grained validity (short
// months, leap years) is checked by makeDate once the year is known.
func parseMonthDay(s string) (month, day int, err error) {
	left, right, found := strings.Cut(s, "/")
	if !found {
		return 0, 0, fmt.Errorf("bad day format %q", s)
	}
	month, err = strconv.Atoi(left)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("bad month in %q", s)
	}
	day, err = strconv.Atoi(right)
	if err != nil || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("bad day in %q", s)
	}
	return month, day, nil
}

// makeDate builds a midnight date and reports whether month/day actually
// exist in that year. time.Date normalizes out-of-range values (Feb 30
// becomes Mar 1), so a changed month or day means the input was invalid.
func makeDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
