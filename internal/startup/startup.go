// Package startup sequences the splash-to-main transition.
//
// Two triggers race: the UI's explicit ready signal and a fallback timer.
// Both run the same transition, close the splash if present and show main
// if present. Those steps are idempotent, so the loser of the race repeats
// them harmlessly and no flag is needed to suppress it.
package startup

import (
	"context"
	"log/slog"
	"time"

	"github.com/gruenerator/shell/internal/logging"
	"github.com/gruenerator/shell/internal/window"
)

// DefaultTimeout is the fallback delay before main is shown without a
// ready signal.
const DefaultTimeout = 3 * time.Second

// Trigger identifies what caused a transition.
type Trigger string

const (
	TriggerReady   Trigger = "ready"
	TriggerTimeout Trigger = "timeout"
)

// Sequencer owns the splash → main transition.
type Sequencer struct {
	windows  *window.Controller
	timeout  time.Duration
	devtools bool
	hidden   bool
	observe  func(Trigger)
	log      *slog.Logger
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithDevtools opens the main window's inspector once the timer path
// has shown it.
func WithDevtools(enabled bool) Option {
	return func(s *Sequencer) { s.devtools = enabled }
}

// WithHidden keeps main hidden; the transition only closes the splash.
// Used for launches at login.
func WithHidden(hidden bool) Option {
	return func(s *Sequencer) { s.hidden = hidden }
}

// WithObserver is called after every transition with its trigger.
func WithObserver(fn func(Trigger)) Option {
	return func(s *Sequencer) { s.observe = fn }
}

// New creates a sequencer. A non-positive timeout uses DefaultTimeout.
func New(windows *window.Controller, timeout time.Duration, opts ...Option) *Sequencer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s := &Sequencer{
		windows: windows,
		timeout: timeout,
		log:     logging.WithComponent("startup"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Timeout returns the fallback delay.
func (s *Sequencer) Timeout() time.Duration {
	return s.timeout
}

// Start launches the fallback timer. The returned channel is closed once
// the timer path has finished, or immediately after ctx is cancelled.
func (s *Sequencer) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTimer(s.timeout)
		defer t.Stop()
		select {
		case <-t.C:
			s.transition(TriggerTimeout)
			if s.devtools && !s.hidden {
				s.windows.OpenDevtools(window.Main)
			}
		case <-ctx.Done():
		}
	}()
	return done
}

// Ready is the explicit application-ready signal raised by the UI after
// its first render. It is safe to call any number of times.
func (s *Sequencer) Ready() {
	s.transition(TriggerReady)
}

func (s *Sequencer) transition(trigger Trigger) {
	s.windows.Close(window.Splash)
	if !s.hidden {
		s.windows.Show(window.Main)
	}
	s.log.Debug("startup transition", "trigger", trigger)
	if s.observe != nil {
		s.observe(trigger)
	}
}
