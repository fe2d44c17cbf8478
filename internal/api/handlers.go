package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gruenerator/shell/internal/instance"
	"github.com/gruenerator/shell/internal/logging"
	"github.com/gruenerator/shell/internal/updater"
)

// Activations are acknowledged before they are applied so the launching
// process can exit at once.
func (a *API) handleActivate(w http.ResponseWriter, r *http.Request) {
	var act instance.Activation
	if err := decodeJSON(w, r, &act); err != nil {
		writeError(w, http.StatusBadRequest, "invalid activation: "+err.Error())
		return
	}
	go a.backend.HandleActivation(act)
	writeJSON(w, http.StatusAccepted, map[string]string{"id": act.ID.String()})
}

type urlsRequest struct {
	URLs []string `json:"urls"`
}

func (a *API) handleDeepLink(w http.ResponseWriter, r *http.Request) {
	var req urlsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	n := a.backend.OpenURLs(req.URLs)
	writeJSON(w, http.StatusOK, map[string]int{"forwarded": n})
}

func (a *API) handleReady(w http.ResponseWriter, _ *http.Request) {
	a.backend.CloseSplashscreen()
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleMenu(w http.ResponseWriter, r *http.Request) {
	res := a.backend.DispatchMenu(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]any{
		"action":       res.Action.String(),
		"notification": res.Notification,
		"payload":      res.Payload,
	})
}

type autostartBody struct {
	Enabled bool `json:"enabled"`
}

func (a *API) handleGetAutostart(w http.ResponseWriter, _ *http.Request) {
	enabled, err := a.backend.GetAutostartEnabled()
	if err != nil {
		hostError(w, "get autostart", err)
		return
	}
	writeJSON(w, http.StatusOK, autostartBody{Enabled: enabled})
}

func (a *API) handleSetAutostart(w http.ResponseWriter, r *http.Request) {
	var body autostartBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if err := a.backend.SetAutostartEnabled(body.Enabled); err != nil {
		hostError(w, "set autostart", err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

type themeBody struct {
	Theme string `json:"theme"`
}

func (a *API) handleGetTheme(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, themeBody{Theme: a.backend.GetSystemTheme()})
}

func (a *API) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if err := a.backend.SetWindowTheme(body.Theme); err != nil {
		hostError(w, "set theme", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleCheckUpdate(w http.ResponseWriter, r *http.Request) {
	res, err := a.backend.CheckForUpdate(r.Context())
	if err != nil {
		var checkErr *updater.CheckError
		if errors.As(err, &checkErr) {
			writeError(w, http.StatusBadGateway, checkErr.Message)
			return
		}
		hostError(w, "check for update", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func hostError(w http.ResponseWriter, op string, err error) {
	logging.WithComponent("api").Warn(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}
