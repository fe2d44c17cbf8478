package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gruenerator/shell/internal/logging"
)

// Server serves a handler on a unix socket.
type Server struct {
	path string
	srv  *http.Server
	ln   net.Listener
}

// Listen binds the socket at path. Only the instance lock holder calls
// this, so a socket file left by a crashed process is removed first.
func Listen(path string, handler http.Handler) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", path, err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		logging.WithComponent("api").Debug("chmod control socket", "error", err)
	}

	return &Server{
		path: path,
		srv:  &http.Server{Handler: handler},
		ln:   ln,
	}, nil
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

// Serve blocks until Shutdown.
func (s *Server) Serve() error {
	logging.WithComponent("api").Info("control API listening", "socket", s.path)
	if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server and removes the socket file.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
		err = rmErr
	}
	return err
}
