// ABOUTME: CLI entry point for kilo-go: a raw-mode terminal viewer plus key and size diagnostics
// ABOUTME: Builds the cobra command tree, runs it, and reports any error on stderr with exit status 1

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mauromedda/kilo-go/internal/config"
	pilog "github.com/mauromedda/kilo-go/internal/log"
	"github.com/mauromedda/kilo-go/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("stdin and stdout must be a terminal")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	a := newApp()
	err := a.command().ExecuteContext(ctx)
	a.teardown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the parsed flags and the pieces tests replace.
type app struct {
	args cliArgs
	cfg  *config.Settings

	// open returns the terminal the commands drive.
	open func() (terminal.Terminal, error)
	// resize returns resize notifications for the viewer; nil disables them.
	resize func(ctx context.Context) <-chan struct{}

	logFile io.Closer
}

func newApp() *app {
	return &app{
		open:   openProcessTerminal,
		resize: terminal.WatchResize,
	}
}

func openProcessTerminal() (terminal.Terminal, error) {
	t := terminal.NewProcessTerminal()
	if !t.IsTerminal() {
		return nil, ErrNotTerminal
	}
	return t, nil
}

// command builds the root command and its subcommands.
func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "kilo-go [file]",
		Short: "Minimal full-screen terminal viewer",
		Long: `kilo-go shows a file full screen using raw terminal mode.

Arrow keys move the cursor, Page Up/Down jump to the top or bottom row,
Home/End jump to the first or last column, and Ctrl-Q quits.

Examples:
  kilo-go                  # Welcome screen
  kilo-go notes.txt        # View a file
  kilo-go keys             # Print decoded key events
  kilo-go size --probe     # Report the screen size via the terminal`,
		Version:           fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Args:              cobra.MaximumNArgs(1),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runViewer,
	}
	a.args.register(root)
	root.AddCommand(a.keysCommand(), a.sizeCommand())
	return root
}

// setup loads settings and routes logs away from the screen.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.args.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := pilog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.args.verbose {
		level = pilog.LevelDebug
	}
	pilog.SetLevel(level)

	if a.args.logPath == "" {
		pilog.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(a.args.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	a.logFile = f
	pilog.SetOutput(f)
	pilog.Info("kilo-go %s starting: %s", version, cmd.CommandPath())
	return nil
}

// teardown closes the log file opened by setup.
func (a *app) teardown() {
	if a.logFile == nil {
		return
	}
	pilog.SetOutput(io.Discard)
	_ = a.logFile.Close()
	a.logFile = nil
}
