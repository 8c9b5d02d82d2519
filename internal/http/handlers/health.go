package handlers

import (
	"net/http"
)

// Health always answers 200; missing credentials only degrade the status.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Status.Readiness(a.now()))
}
