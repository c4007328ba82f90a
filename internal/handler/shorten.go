package handler

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/KretovDmitry/shorturl/internal/errs"
	"github.com/KretovDmitry/shorturl/internal/models"
	"github.com/KretovDmitry/shorturl/internal/repository"
	"github.com/KretovDmitry/shorturl/internal/validator"
)

type shortenResponse struct {
	OriginalURL string `json:"original_url"`
	ShortURL    int    `json:"short_url"`
}

// ShortenURL stores a submitted URL and returns its short code.
//
// Request:
//
//	POST /api/shorturl
//	Content-Type: application/x-www-form-urlencoded
//	url=https://www.google.com/
//
// or the same field in an application/json body.
//
// Response:
//
//	HTTP/1.1 200 OK
//	Content-Type: application/json
//	{
//	    "original_url": "https://www.google.com/",
//	    "short_url": 0
//	}
//
// A rejected submission is answered with 200 OK and {"error": "invalid url"}.
func (h *Handler) ShortenURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := decodeSubmission(w, r)
	if err != nil {
		h.logger.With(ctx).Debugf("decode submission: %v", err)
		h.invalidURL(w, r)
		return
	}

	if !h.validator.ValidateSubmission(ctx, body) {
		h.invalidURL(w, r)
		return
	}
	u, _ := validator.SubmittedURL(body)

	if h.serialize {
		h.mu.Lock()
		defer h.mu.Unlock()
	}

	entries, err := h.store.Load(ctx)
	if err != nil {
		h.internalError(w, r, "load entries", err)
		return
	}

	updated, index := repository.Append(entries, models.Entry{URL: u})

	if err = h.store.Persist(ctx, updated); err != nil {
		h.internalError(w, r, "persist entries", err)
		return
	}

	h.logger.With(ctx).Debugf("shortened %q to %d", u, index)

	h.writeJSON(w, r, shortenResponse{OriginalURL: u, ShortURL: index})
}

// decodeSubmission reads the request body into a generic value.
// JSON bodies decode as they are, anything else is read as a form.
// A repeated form field becomes a list, so it is never a string.
func decodeSubmission(w http.ResponseWriter, r *http.Request) (any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("%w: decode json: %v", errs.ErrInvalidRequest, err)
		}
		return body, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: parse form: %v", errs.ErrInvalidRequest, err)
	}
	body := make(map[string]any, len(r.PostForm))
	for k, vs := range r.PostForm {
		switch len(vs) {
		case 0:
		case 1:
			body[k] = vs[0]
		default:
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			body[k] = list
		}
	}
	return body, nil
}
