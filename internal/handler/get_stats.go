package handler

import "net/http"

type getStatsResponse struct {
	URLs int `json:"urls"` // number of all shortened urls
}

// GetStats reveals total number of shortened urls in JSON format.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.Load(r.Context())
	if err != nil {
		h.internalError(w, r, "count urls", err)
		return
	}

	h.writeJSON(w, r, getStatsResponse{URLs: len(entries)})
}
