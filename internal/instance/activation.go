package instance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ActivatePath is the control API route that accepts an Activation.
const ActivatePath = "/api/v1/activate"

// Activation is what a later launch hands to the running instance.
type Activation struct {
	ID     uuid.UUID `json:"id"`
	Args   []string  `json:"args"`
	Cwd    string    `json:"cwd"`
	SentAt time.Time `json:"sent_at"`
}

// NewActivation creates an activation for args and cwd.
func NewActivation(args []string, cwd string) Activation {
	if args == nil {
		args = []string{}
	}
	return Activation{ID: uuid.New(), Args: args, Cwd: cwd, SentAt: time.Now().UTC()}
}

// Forwarder delivers an Activation to the running instance.
type Forwarder interface {
	Forward(ctx context.Context, a Activation) error
}

// SocketForwarder posts activations to the control API on a unix socket.
type SocketForwarder struct {
	client *http.Client
	retry  time.Duration
}

// NewSocketForwarder creates a forwarder for the socket at path.
func NewSocketForwarder(path string) *SocketForwarder {
	return &SocketForwarder{
		client: &http.Client{Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", path)
			},
		}},
		retry: 100 * time.Millisecond,
	}
}

// Forward posts a. A primary that holds the lock but is not listening yet
// is retried until ctx is done.
func (f *SocketForwarder) Forward(ctx context.Context, a Activation) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode activation: %w", err)
	}

	for {
		err = f.post(ctx, body)
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("forward activation: %w", err)
		case <-time.After(f.retry):
		}
	}
}

func (f *SocketForwarder) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://shell"+ActivatePath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
