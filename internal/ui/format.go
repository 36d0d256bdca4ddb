// Package ui renders reminder listings and the interactive terminal view.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rdcli/rd/internal/reminder"
)

// Time layouts for the two places a due instant is shown to the user.
const (
	listTimeFormat    = "03:04 PM 01/02/2006"
	confirmTimeFormat = "03:04 PM Monday, January _2, 2006"
)

var (
	idStyle      = lipgloss.NewStyle().Bold(true)
	pendingStyle = lipgloss.NewStyle().Faint(true)
)

// RenderEntries formats a listing, one reminder per line. An empty listing
// renders the no-reminders message instead.
func RenderEntries(entries []reminder.Entry, showAll bool) string {
	if len(entries) == 0 {
		return "No reminders right now!\n"
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(RenderEntry(e, showAll))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderEntry formats a single line: "01. text" in the default listing, or
// with the due instant inserted in show-all listings. Reminders without an
// id (not yet due) get a "--." prefix.
func RenderEntry(e reminder.Entry, showAll bool) string {
	var prefix string
	if e.ID != 0 {
		prefix = idStyle.Render(fmt.Sprintf("%02d.", e.ID))
	} else {
		prefix = pendingStyle.Render("--.")
	}

	if showAll {
		return fmt.Sprintf("%s  %s  %s", prefix, e.Due.Format(listTimeFormat), e.Text)
	}
	return fmt.Sprintf("%s %s", prefix, e.Text)
}

// ConfirmDue formats a due instant for add/snooze confirmations, e.g.
// "02:00 PM Friday, March 1, 2024".
func ConfirmDue(t time.Time) string {
	return strings.Join(strings.Fields(t.Format(confirmTimeFormat)), " ")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
