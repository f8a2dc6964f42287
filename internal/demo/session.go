package demo

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pcg128/internal/randutil"
	"github.com/lox/pcg128/pcg"
	"github.com/muesli/termenv"
)

// Usage lists the session commands.
const Usage = "commands: x = exit, tas = toggle fixed seed, r<N> = set rounds, trace = toggle tracing, anything else = run again"

// Settings controls how the session seeds each demo run.
type Settings struct {
	Rounds    int
	FixedSeed bool
	Seed      pcg.Uint128
	Sequence  pcg.Uint128
	Trace     bool
}

// Result is the outcome of one command.
type Result struct {
	Output string
	Clear  bool // the front end should clear the screen before printing
	Quit   bool
}

// Session interprets demo commands and renders runs. Every run uses a fresh
// generator, so with fixed seeding the output repeats exactly.
type Session struct {
	settings Settings
	logger   *log.Logger
	clock    quartz.Clock
	observer pcg.Observer
	sequence func() pcg.Uint128
}

// Option configures a Session
type Option func(*Session)

// WithClock sets the clock used for time based seeds.
func WithClock(c quartz.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithObserver sets the trace sink handed to every generator.
func WithObserver(o pcg.Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithSequenceSource overrides how random sequences are picked when fixed
// seeding is off.
func WithSequenceSource(f func() pcg.Uint128) Option {
	return func(s *Session) { s.sequence = f }
}

// NewSession creates a session with the given settings.
func NewSession(logger *log.Logger, settings Settings, opts ...Option) *Session {
	s := &Session{
		settings: settings,
		logger:   logger.WithPrefix("demo"),
		clock:    quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sequence == nil {
		r := randutil.New(s.clock.Now().UnixNano())
		s.sequence = func() pcg.Uint128 {
			return pcg.Uint128From64(r.Uint64N(10_000_000_000_000_000_000))
		}
	}
	return s
}

// Settings returns the current settings.
func (s *Session) Settings() Settings {
	return s.settings
}

// Handle executes one command line.
func (s *Session) Handle(line string) Result {
	line = strings.TrimSpace(line)
	switch {
	case line == "x":
		return Result{Quit: true}
	case line == "tas":
		s.settings.FixedSeed = !s.settings.FixedSeed
		s.logger.Debug("Toggled fixed seed", "fixed", s.settings.FixedSeed)
		return s.run(false)
	case line == "trace":
		s.settings.Trace = !s.settings.Trace
		s.logger.Debug("Toggled tracing", "trace", s.settings.Trace)
		return Result{Output: InfoStyle.Render(fmt.Sprintf("tracing: %t", s.settings.Trace)) + "\n"}
	case strings.HasPrefix(line, "r"):
		n, err := strconv.Atoi(line[1:])
		if err != nil || n < 0 {
			return Result{Output: ErrorStyle.Render(fmt.Sprintf("invalid round count %q", line[1:])) + "\n"}
		}
		s.settings.Rounds = n
		return s.run(false)
	default:
		return s.run(true)
	}
}

// Generator builds the generator for the next run from the current settings.
func (s *Session) Generator() *pcg.Generator {
	opts := []pcg.Option{pcg.WithClock(s.clock), pcg.WithTrace(s.settings.Trace)}
	if s.observer != nil {
		opts = append(opts, pcg.WithObserver(s.observer))
	}

	if s.settings.FixedSeed {
		return pcg.New128(s.settings.Seed, s.settings.Sequence, opts...)
	}
	seed := pcg.Uint128FromInt64(s.clock.Now().UnixMilli())
	return pcg.New128(seed, s.sequence(), opts...)
}

func (s *Session) run(clear bool) Result {
	g := s.Generator()
	s.logger.Debug("Running demo", "rounds", s.settings.Rounds, "fixed", s.settings.FixedSeed)

	var b strings.Builder
	b.WriteString(Header())
	b.WriteString("\n")
	for i := 1; i <= s.settings.Rounds; i++ {
		round, err := Round(g, i)
		if err != nil {
			s.logger.Error("Round failed", "round", i, "error", err)
			b.WriteString(ErrorStyle.Render(err.Error()))
			b.WriteString("\n")
			break
		}
		b.WriteString(round)
		b.WriteString("\n")
	}
	return Result{Output: b.String(), Clear: clear}
}

// Run reads commands from in until "x", end of input or cancellation,
// writing each result to out.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	term := termenv.NewOutput(out)
	fmt.Fprintln(out, InfoStyle.Render(Usage))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		res := s.Handle(scanner.Text())
		if res.Quit {
			return nil
		}
		if res.Clear {
			term.ClearScreen()
		}
		if _, err := io.WriteString(out, res.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}
