package reminder

import (
	"sort"
	"time"

	"github.com/jmhodges/clock"
)

// Scheduler owns the in-memory reminder set for the lifetime of one command
// invocation: load once at construction, save after each mutation. Display
// ids are recomputed from the clock on every read, so a reminder crosses
// from pending to due purely by the passage of time.
type Scheduler struct {
	store       *Store
	clk         clock.Clock
	defaultTime string
	reminders   []Reminder
}

// NewScheduler loads the reminder set from store. defaultTime is the
// time-of-day applied to expressions without an @-suffix; empty means
// DefaultTimeSpec.
func NewScheduler(store *Store, clk clock.Clock, defaultTime string) (*Scheduler, error) {
	reminders, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		store:       store,
		clk:         clk,
		defaultTime: defaultTime,
		reminders:   reminders,
	}, nil
}

// assignIDs maps the stored set to its display view as of now: a dense 1..K
// over currently-due reminders in set order. The stored records themselves
// are never touched.
func assignIDs(reminders []Reminder, now time.Time) []Entry {
	entries := make([]Entry, len(reminders))
	next := 1
	for i, r := range reminders {
		entries[i] = Entry{Reminder: r}
		if r.DueBy(now) {
			entries[i].ID = next
			next++
		}
	}
	return entries
}

// List returns the display view as of now, filtered to currently-due
// reminders unless showAll is set. Ids are computed fresh per call.
func (s *Scheduler) List(showAll bool) []Entry {
	entries := assignIDs(s.reminders, s.clk.Now())
	if showAll {
		return entries
	}
	due := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != 0 {
			due = append(due, e)
		}
	}
	return due
}

// Add parses dueExpr, inserts the new reminder keeping the most-due-first
// order, and persists the set. Nothing is mutated or saved on a parse
// failure; on a save failure the set must not be assumed persisted.
func (s *Scheduler) Add(dueExpr, text string) (Reminder, Resolved, error) {
	res, err := ParseDue(dueExpr, s.clk.Now(), s.defaultTime)
	if err != nil {
		return Reminder{}, Resolved{}, err
	}

	added := Reminder{Text: text, Due: res.Time}
	s.reminders = append(s.reminders, added)
	s.sort()
	if err := s.store.Save(s.reminders); err != nil {
		return Reminder{}, Resolved{}, err
	}
	return added, res, nil
}

// Complete removes the reminder whose freshly-computed display id matches
// displayID and persists the reduced set. The removed reminder is returned
// for confirmation display. An unknown id is a NotFoundError and leaves the
// set unchanged.
func (s *Scheduler) Complete(displayID int) (Reminder, error) {
	idx := s.findDue(displayID)
	if idx < 0 {
		return Reminder{}, &NotFoundError{ID: displayID}
	}

	removed := s.reminders[idx]
	s.reminders = append(s.reminders[:idx], s.reminders[idx+1:]...)
	if err := s.store.Save(s.reminders); err != nil {
		return Reminder{}, err
	}
	return removed, nil
}

// Snooze reschedules a currently-due reminder to the instant named by
// dueExpr, re-sorts, and persists. Lookup and parse failures leave the set
// unchanged.
func (s *Scheduler) Snooze(displayID int, dueExpr string) (Reminder, Resolved, error) {
	idx := s.findDue(displayID)
	if idx < 0 {
		return Reminder{}, Resolved{}, &NotFoundError{ID: displayID}
	}

	res, err := ParseDue(dueExpr, s.clk.Now(), s.defaultTime)
	if err != nil {
		return Reminder{}, Resolved{}, err
	}

	snoozed := Reminder{Text: s.reminders[idx].Text, Due: res.Time}
	s.reminders[idx] = snoozed
	s.sort()
	if err := s.store.Save(s.reminders); err != nil {
		return Reminder{}, Resolved{}, err
	}
	return snoozed, res, nil
}

// findDue returns the index of the reminder holding displayID as of now, or
// -1. Id assignment is injective by construction, so the first match is the
// only one.
func (s *Scheduler) findDue(displayID int) int {
	if displayID < 1 {
		return -1
	}
	for i, e := range assignIDs(s.reminders, s.clk.Now()) {
		if e.ID == displayID {
			return i
		}
	}
	return -1
}

// sort keeps the set most recently due first. The sort is stable so equal
// due instants keep their relative order.
func (s *Scheduler) sort() {
	sort.SliceStable(s.reminders, func(i, j int) bool {
		return s.reminders[i].Due.After(s.reminders[j].Due)
	})
}
