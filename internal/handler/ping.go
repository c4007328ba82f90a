package handler

import (
	"errors"
	"net/http"

	"github.com/KretovDmitry/shorturl/internal/errs"
)

// PingDB checks the status of the database connection.
// File and memory stores always report DB not connected.
func (h *Handler) PingDB(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		if errors.Is(err, errs.ErrDBNotConnected) {
			http.Error(w, "DB not connected", http.StatusInternalServerError)
			return
		}
		h.internalError(w, r, "ping storage", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
