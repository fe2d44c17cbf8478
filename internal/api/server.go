// Package api provides the local control API of the desktop shell. It is
// served on a unix socket and carries second-instance activations, the
// UI request/response operations and the notification stream.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gruenerator/shell/internal/instance"
	"github.com/gruenerator/shell/internal/logging"
	"github.com/gruenerator/shell/internal/menu"
	"github.com/gruenerator/shell/internal/notify"
	"github.com/gruenerator/shell/internal/updater"
	"github.com/gruenerator/shell/internal/version"
)

// Backend is the shell as seen by the API.
type Backend interface {
	HandleActivation(a instance.Activation)
	GetAutostartEnabled() (bool, error)
	SetAutostartEnabled(enabled bool) error
	GetSystemTheme() string
	SetWindowTheme(theme string) error
	CheckForUpdate(ctx context.Context) (updater.Result, error)
	GetAppVersion() string
	CloseSplashscreen()
	DispatchMenu(id string) menu.Result
	OpenURLs(urls []string) int
}

// API serves the control routes.
type API struct {
	backend Backend
	hub     *notify.Hub
	metrics http.Handler
	token   string
}

// Config holds API configuration.
type Config struct {
	Backend Backend
	// Hub, when set, is served at /api/v1/ws.
	Hub *notify.Hub
	// Metrics, when set, is served at /metrics.
	Metrics http.Handler
	Token   string
}

// New creates a new API.
func New(cfg Config) *API {
	return &API{
		backend: cfg.Backend,
		hub:     cfg.Hub,
		metrics: cfg.Metrics,
		token:   cfg.Token,
	}
}

// Handler returns the HTTP handler for the API.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(securityHeadersMiddleware)

	r.Get("/api/v1/health", a.handleHealth)

	r.Group(func(r chi.Router) {
		if a.token != "" {
			r.Use(a.authMiddleware)
		}

		// The websocket stays open; no request timeout on it.
		if a.hub != nil {
			r.Handle("/api/v1/ws", a.hub.Handler())
		}
		if a.metrics != nil {
			r.Handle("/metrics", a.metrics)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			a.addAPIRoutes(r)
		})
	})

	return r
}

func (a *API) addAPIRoutes(r chi.Router) {
	r.Get("/api/v1/version", a.handleVersion)
	r.Post(instance.ActivatePath, a.handleActivate)
	r.Post("/api/v1/deeplink", a.handleDeepLink)
	r.Post("/api/v1/ready", a.handleReady)
	r.Post("/api/v1/menu/{id}", a.handleMenu)

	r.Route("/api/v1/autostart", func(r chi.Router) {
		r.Get("/", a.handleGetAutostart)
		r.Put("/", a.handleSetAutostart)
	})
	r.Route("/api/v1/theme", func(r chi.Router) {
		r.Get("/", a.handleGetTheme)
		r.Put("/", a.handleSetTheme)
	})
	r.Post("/api/v1/update/check", a.handleCheckUpdate)
}

func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			// Browsers cannot set headers on a websocket upgrade.
			token = r.URL.Query().Get("token")
		}
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware adds common security headers to all responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// requestLogger tags the request context with a logger carrying the
// request id, so work done for the request logs under the same id.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		ctx := logging.ContextWith(r.Context(), "request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(ww, r.WithContext(ctx))
		logging.FromContext(ctx).Debug("request",
			"component", "api",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a JSON body of at most 64 KiB.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(v)
}

var startTime = time.Now()

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
		"uptime": time.Since(startTime).Round(time.Second).String(),
	})
}

func (a *API) handleVersion(w http.ResponseWriter, _ *http.Request) {
	info := version.GetInfo()
	info.Version = a.backend.GetAppVersion()
	writeJSON(w, http.StatusOK, info)
}
