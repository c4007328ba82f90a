package handler

import (
	"errors"
	"net/http"

	"github.com/KretovDmitry/shorturl/internal/errs"
	"github.com/KretovDmitry/shorturl/internal/validator"
	"github.com/go-chi/chi/v5"
)

// Redirect serves a redirect to the URL stored under the short code.
//
//	GET /api/shorturl/{url}
//
// A malformed or unknown code is answered with 200 OK and
// {"error": "invalid url"}.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "url")

	if !validator.ValidateShortCode(code) {
		h.invalidURL(w, r)
		return
	}

	entry, err := h.store.GetByIndex(r.Context(), validator.ParseShortCode(code))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			h.invalidURL(w, r)
			return
		}
		h.internalError(w, r, "get entry by code "+code, err)
		return
	}

	// the stored URL is sent verbatim, relative or not
	w.Header().Set("Location", entry.URL)
	w.WriteHeader(http.StatusFound)
}
