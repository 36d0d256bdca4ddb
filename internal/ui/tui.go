package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jmhodges/clock"

	"github.com/rdcli/rd/internal/reminder"
)

// RunTUI starts the interactive reminder list. Due-state is re-evaluated on
// a one-second tick, so reminders cross from pending to due while the view
// is open.
func RunTUI(ctx context.Context, store *reminder.Store, clk clock.Clock, defaultTime string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(store, clk, defaultTime)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.fatal != nil {
		return m.fatal
	}
	return nil
}

type tuiModel struct {
	store       *reminder.Store
	clk         clock.Clock
	defaultTime string

	entries      []reminder.Entry
	cursor       int
	showAll      bool
	status       string
	loadErr      error
	fatal        error
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(store *reminder.Store, clk clock.Clock, defaultTime string) *tuiModel {
	return &tuiModel{
		store:        store,
		clk:          clk,
		defaultTime:  defaultTime,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "a":
			m.showAll = !m.showAll
			m.refresh()
			return m, nil
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
			return m, nil
		case "d", "enter":
			m.completeSelected()
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	title := "Reminders"
	if m.showAll {
		title = "Reminders (all)"
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	if m.loadErr != nil {
		b.WriteString("Error loading reminders:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	if len(m.entries) == 0 {
		b.WriteString("No reminders right now!\n\n")
	} else {
		for i, e := range m.entries {
			marker := "  "
			if i == m.cursor {
				marker = "> "
			}
			b.WriteString(marker + RenderEntry(e, m.showAll) + "\n")
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.status + "\n\n")
	}
	writeFooter(&b)
	return b.String()
}

// completeSelected marks the reminder under the cursor as done. Reminders
// that are not due yet have no id and cannot be completed.
func (m *tuiModel) completeSelected() {
	if m.cursor >= len(m.entries) {
		return
	}
	e := m.entries[m.cursor]
	if e.ID == 0 {
		m.status = "Not due yet; nothing to mark done."
		return
	}

	sched, err := reminder.NewScheduler(m.store, m.clk, m.defaultTime)
	if err != nil {
		m.fatal = err
		return
	}
	done, err := sched.Complete(e.ID)
	if err != nil {
		m.status = err.Error()
	} else {
		m.status = "Done: " + done.Text
	}
	m.refresh()
}

// refresh reloads the set and recomputes the display view as of now.
func (m *tuiModel) refresh() {
	sched, err := reminder.NewScheduler(m.store, m.clk, m.defaultTime)
	if err != nil {
		m.loadErr = err
		m.entries = nil
		m.cursor = 0
		return
	}
	m.loadErr = nil
	m.entries = sched.List(m.showAll)
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeFooter(b *strings.Builder) {
	b.WriteString("d mark done | a toggle all | j/k move | r refresh | q quit\n")
}
