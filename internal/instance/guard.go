package instance

import (
	"context"
	"errors"
	"time"

	"github.com/gruenerator/shell/internal/logging"
)

// Outcome is the result of a Claim.
type Outcome int

const (
	// Primary means this process owns the instance and should start up.
	Primary Outcome = iota
	// Secondary means the launch was handed to the running instance and
	// this process should exit 0 without creating windows.
	Secondary
)

func (o Outcome) String() string {
	if o == Secondary {
		return "secondary"
	}
	return "primary"
}

// Guard decides whether this process is the primary instance.
type Guard struct {
	dir       string
	id        string
	forwarder Forwarder
	timeout   time.Duration

	lock *Lock
}

// NewGuard creates a guard for the application id with its lock in dir.
func NewGuard(dir, id string, forwarder Forwarder, timeout time.Duration) *Guard {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Guard{dir: dir, id: id, forwarder: forwarder, timeout: timeout}
}

// Claim takes the instance lock. If another process holds it, args and cwd
// are forwarded there and Secondary is returned. A failed forward is logged
// only; the launch is still Secondary.
func (g *Guard) Claim(ctx context.Context, args []string, cwd string) (Outcome, error) {
	log := logging.WithComponent("instance")

	lock, err := Acquire(g.dir, g.id)
	if err == nil {
		g.lock = lock
		log.Debug("acquired instance lock", "path", lock.Path())
		return Primary, nil
	}
	if !errors.Is(err, ErrAlreadyRunning) {
		return Primary, err
	}

	a := NewActivation(args, cwd)
	if g.forwarder == nil {
		log.Warn("instance already running and no forwarder configured")
		return Secondary, nil
	}

	fctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	if err := g.forwarder.Forward(fctx, a); err != nil {
		log.Warn("could not reach running instance", "error", err, "activation", a.ID)
	} else {
		log.Info("handed launch to running instance", "activation", a.ID)
	}
	return Secondary, nil
}

// Release drops the lock held by a primary.
func (g *Guard) Release() error {
	if g.lock == nil {
		return nil
	}
	err := g.lock.Release()
	g.lock = nil
	return err
}
