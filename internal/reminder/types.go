// Package reminder implements the reminder set: due-date expression
// parsing, most-due-first ordering, transient display ids, and the
// add/complete/snooze mutations.
package reminder

import (
	"fmt"
	"time"
)

// Reminder is a single dated note. Both fields are immutable after creation.
type Reminder struct {
	Text string
	Due  time.Time
}

// DueBy reports whether the reminder is due at or before now.
func (r Reminder) DueBy(now time.Time) bool {
	return !r.Due.After(now)
}

// Entry is a display-decorated view of a Reminder. ID is 1-based and dense
// over the currently-due reminders in set order; 0 means not yet due.
// Entries are recomputed on every read and never persisted.
type Entry struct {
	Reminder
	ID int
}

// ParseError reports a due-date expression that could not be understood.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse due date %q: %s", e.Input, e.Reason)
}

// NotFoundError reports a display id with no currently-due reminder.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no reminder with id %d", e.ID)
}
