package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/pcg128/cmd/pcg/shared"
	"github.com/lox/pcg128/internal/config"
	"github.com/lox/pcg128/internal/demo"
	"github.com/lox/pcg128/internal/tracelog"
	"github.com/lox/pcg128/internal/tui"
	"github.com/muesli/termenv"
)

// SessionFlags are shared by the demo and tui commands. Flags override the
// config file.
type SessionFlags struct {
	Config     string `short:"c" default:"pcg.hcl" help:"Path to HCL configuration file"`
	Rounds     int    `short:"r" help:"Rounds per run (overrides config)"`
	RandomSeed bool   `help:"Seed from the clock instead of the fixed seed"`
	Trace      bool   `help:"Log every generator operation"`
	NoColor    bool   `help:"Disable colored output"`
}

// settings resolves the demo settings from the config file and flags.
func (f *SessionFlags) settings() (demo.Settings, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return demo.Settings{}, err
	}
	if f.Rounds > 0 {
		cfg.Demo.Rounds = f.Rounds
	}
	if f.RandomSeed {
		fixed := false
		cfg.Demo.FixedSeed = &fixed
	}
	if f.Trace {
		cfg.Demo.Trace = true
	}
	if err := cfg.Validate(); err != nil {
		return demo.Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}

	seed, seq, err := cfg.Demo.SeedValues()
	if err != nil {
		return demo.Settings{}, err
	}
	return demo.Settings{
		Rounds:    cfg.Demo.Rounds,
		FixedSeed: *cfg.Demo.FixedSeed,
		Seed:      seed,
		Sequence:  seq,
		Trace:     cfg.Demo.Trace,
	}, nil
}

// session builds a demo session logging to w.
func (f *SessionFlags) session(w io.Writer) (*demo.Session, error) {
	if f.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	settings, err := f.settings()
	if err != nil {
		return nil, err
	}

	// the trace command can switch tracing on later, so the observer is
	// always attached with its own debug level logger
	observer := tracelog.NewCharm(shared.SetupCharmLogger(w, true))
	return demo.NewSession(shared.SetupCharmLogger(w, false), settings, demo.WithObserver(observer)), nil
}

// DemoCmd runs the line based demo session.
type DemoCmd struct {
	SessionFlags
}

func (c *DemoCmd) Run() error {
	session, err := c.session(os.Stderr)
	if err != nil {
		return err
	}

	// the first run happens without waiting for input
	res := session.Handle("")
	fmt.Fprint(os.Stdout, res.Output)
	return session.Run(context.Background(), os.Stdin, os.Stdout)
}

// TuiCmd runs the demo session inside a Bubble Tea program. Logs go to a
// file so they do not garble the screen.
type TuiCmd struct {
	SessionFlags
	LogFile string `default:"pcg-tui.log" help:"Log file path"`
}

func (c *TuiCmd) Run() error {
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	session, err := c.session(logFile)
	if err != nil {
		return err
	}

	model := tui.New(shared.SetupCharmLogger(logFile, false), session)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
