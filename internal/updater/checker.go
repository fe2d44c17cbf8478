package updater

import (
	"context"
	"errors"
	"time"

	"github.com/gruenerator/shell/internal/logging"
)

// Result is the answer to an update check as the UI receives it.
// Version and Body are set only when Available is true.
type Result struct {
	Available      bool    `json:"available"`
	Version        *string `json:"version"`
	CurrentVersion string  `json:"current_version"`
	Body           *string `json:"body"`
}

// Outcome labels a finished check.
type Outcome string

const (
	OutcomeAvailable Outcome = "available"
	OutcomeCurrent   Outcome = "current"
	OutcomeError     Outcome = "error"
)

// Checker asks a Service whether a newer build exists.
type Checker struct {
	service Service
	current string
	timeout time.Duration
	observe func(Outcome)
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithTimeout bounds each check. Zero means no bound beyond the caller's context.
func WithTimeout(d time.Duration) CheckerOption {
	return func(c *Checker) {
		c.timeout = d
	}
}

// WithOutcomeObserver registers a callback invoked after every check.
func WithOutcomeObserver(fn func(Outcome)) CheckerOption {
	return func(c *Checker) {
		c.observe = fn
	}
}

// NewChecker creates a checker. currentVersion is fixed for the lifetime
// of the checker.
func NewChecker(service Service, currentVersion string, opts ...CheckerOption) *Checker {
	if service == nil {
		service = Disabled
	}
	c := &Checker{service: service, current: currentVersion}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentVersion returns the version checks compare against.
func (c *Checker) CurrentVersion() string {
	return c.current
}

// CheckForUpdate runs one check. A failure is returned as *CheckError and
// never reported as "no update".
func (c *Checker) CheckForUpdate(ctx context.Context) (Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log := logging.FromContext(ctx).With("component", "updater")
	upd, err := c.service.Check(ctx, c.current)
	if errors.Is(err, ErrNoUpdateAvailable) {
		upd, err = nil, nil
	}
	if err != nil {
		log.Warn("update check failed", "error", err)
		c.report(OutcomeError)
		return Result{}, &CheckError{Message: err.Error(), Err: err}
	}

	if upd == nil {
		log.Debug("no update available", "current", c.current)
		c.report(OutcomeCurrent)
		return Result{CurrentVersion: c.current}, nil
	}

	log.Info("update available", "current", c.current, "version", upd.Version)
	c.report(OutcomeAvailable)
	v, notes := upd.Version, upd.Notes
	return Result{
		Available:      true,
		Version:        &v,
		CurrentVersion: c.current,
		Body:           &notes,
	}, nil
}

// CheckAsync runs CheckForUpdate on its own goroutine and hands the
// answer to done.
func (c *Checker) CheckAsync(ctx context.Context, done func(Result, error)) {
	go func() {
		res, err := c.CheckForUpdate(ctx)
		if done != nil {
			done(res, err)
		}
	}()
}

func (c *Checker) report(o Outcome) {
	if c.observe != nil {
		c.observe(o)
	}
}
