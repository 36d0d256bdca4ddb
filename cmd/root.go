// Package cmd implements the CLI command structure for rd.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jmhodges/clock"

	"github.com/rdcli/rd/internal/config"
	"github.com/rdcli/rd/internal/logging"
	"github.com/rdcli/rd/internal/reminder"
	"github.com/rdcli/rd/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// UsageError marks bad command-line input: unknown command, missing or
// malformed arguments.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// Run executes the rd CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rd", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.FromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)

	// No subcommand means "show what's due".
	subcommand := "list"
	remaining := fs.Args()
	if len(remaining) > 0 {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	switch subcommand {
	case "list":
		return listCommand(cfg, false)
	case "ls":
		return listCommand(cfg, true)
	case "add":
		return addCommand(cfg, logger, remaining)
	case "done":
		return doneCommand(cfg, remaining)
	case "snooze":
		return snoozeCommand(cfg, logger, remaining)
	case "tui":
		return tuiCommand(ctx, cfg)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		printUsage(fs, os.Stderr)
		return &UsageError{Msg: fmt.Sprintf("unknown command: %s", subcommand)}
	}
}

// ExitCode maps an error from Run to a process exit status: 2 for user
// errors (bad input, unknown id), 1 for IO and internal failures.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var parseErr *reminder.ParseError
	var notFound *reminder.NotFoundError
	var usageErr *UsageError
	if errors.As(err, &parseErr) || errors.As(err, &notFound) || errors.As(err, &usageErr) {
		return 2
	}
	return 1
}

// newScheduler wires the store and the wall clock for one invocation.
func newScheduler(cfg *config.Config) (*reminder.Scheduler, error) {
	store := reminder.NewStore(cfg.SaveFile)
	return reminder.NewScheduler(store, clock.New(), cfg.DefaultTime)
}

// listCommand prints the due reminders, or all of them for ls.
func listCommand(cfg *config.Config, showAll bool) error {
	sched, err := newScheduler(cfg)
	if err != nil {
		return err
	}
	fmt.Print(ui.RenderEntries(sched.List(showAll), showAll))
	return nil
}

// addCommand creates a reminder from a due expression and text.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) < 2 {
		return &UsageError{Msg: "add requires a due date and reminder text"}
	}
	dueExpr := args[0]
	text := strings.Join(args[1:], " ")

	sched, err := newScheduler(cfg)
	if err != nil {
		return err
	}
	added, res, err := sched.Add(dueExpr, text)
	if err != nil {
		return err
	}
	logRollover(logger, res, dueExpr)

	fmt.Printf("Added: %s\n", added.Text)
	fmt.Printf("Due: %s\n", ui.ConfirmDue(added.Due))
	return nil
}

// doneCommand retires a reminder by its display id and shows what remains.
func doneCommand(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return &UsageError{Msg: "done requires a reminder id"}
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return &UsageError{Msg: fmt.Sprintf("%q is not a number", args[0])}
	}

	sched, err := newScheduler(cfg)
	if err != nil {
		return err
	}
	done, err := sched.Complete(id)
	if err != nil {
		return err
	}

	fmt.Printf("Marking as done: %s\n", done.Text)
	fmt.Println()
	fmt.Println("These remain:")
	fmt.Println()
	fmt.Print(ui.RenderEntries(sched.List(false), false))
	return nil
}

// snoozeCommand reschedules a currently-due reminder.
func snoozeCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) < 2 {
		return &UsageError{Msg: "snooze requires a reminder id and a new due date"}
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return &UsageError{Msg: fmt.Sprintf("%q is not a number", args[0])}
	}
	dueExpr := args[1]

	sched, err := newScheduler(cfg)
	if err != nil {
		return err
	}
	snoozed, res, err := sched.Snooze(id, dueExpr)
	if err != nil {
		return err
	}
	logRollover(logger, res, dueExpr)

	fmt.Printf("Snoozed: %s\n", snoozed.Text)
	fmt.Printf("Due: %s\n", ui.ConfirmDue(snoozed.Due))
	return nil
}

// tuiCommand launches the interactive list.
func tuiCommand(ctx context.Context, cfg *config.Config) error {
	return ui.RunTUI(ctx, reminder.NewStore(cfg.SaveFile), clock.New(), cfg.DefaultTime)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("rd version %s\n", Version)
	return nil
}

// logRollover surfaces a next-year interpretation of a month/day date. A
// reading that passed within the last 30 days is probably a typo, so it is
// reported at info; anything further back was clearly intentional.
func logRollover(logger *log.Logger, res reminder.Resolved, expr string) {
	if !res.NextYear {
		return
	}
	if res.NearMiss {
		logger.Info("interpreting due date as next year", "input", expr)
	} else {
		logger.Debug("interpreting due date as next year", "input", expr)
	}
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "rd - A shell-based reminder tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  rd [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  (none)                 Print the reminders that are due now")
	fmt.Fprintln(w, "  ls                     Print all reminders, including upcoming ones")
	fmt.Fprintln(w, "  add <day[@time]> <text...>")
	fmt.Fprintln(w, "                         Add a reminder")
	fmt.Fprintln(w, "  done <id>              Mark a reminder as done (id from the listing)")
	fmt.Fprintln(w, "  snooze <id> <day[@time]>")
	fmt.Fprintln(w, "                         Reschedule a due reminder")
	fmt.Fprintln(w, "  tui                    Interactive reminder list")
	fmt.Fprintln(w, "  version                Show version information")
	fmt.Fprintln(w, "  help                   Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Day and time formats:")
	fmt.Fprintln(w, "  12/25       month/day; rolls to next year if already passed")
	fmt.Fprintln(w, "  +3          three days from today")
	fmt.Fprintln(w, "  @2am, @3pm  time of day (default 8am)")
	fmt.Fprintln(w, "  @15         24-hour time")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
