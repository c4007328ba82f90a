// Package handler serves the shortener HTTP API.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/KretovDmitry/shorturl/internal/config"
	"github.com/KretovDmitry/shorturl/internal/errs"
	"github.com/KretovDmitry/shorturl/internal/logger"
	mw "github.com/KretovDmitry/shorturl/internal/middleware"
	"github.com/KretovDmitry/shorturl/internal/repository"
	"github.com/KretovDmitry/shorturl/internal/validator"
	"github.com/KretovDmitry/shorturl/pkg/accesslog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes caps the size of a shorten request body.
const maxBodyBytes = 1 << 20

// Handler orchestrates the validator and the store for every request.
type Handler struct {
	store     repository.EntryStorage
	validator *validator.Validator
	logger    logger.Logger

	// serialize guards load-append-persist with mu.
	serialize bool
	mu        sync.Mutex
}

// New constructs a new handler, ensuring that the dependencies are valid values.
func New(
	store repository.EntryStorage,
	v *validator.Validator,
	cfg *config.Config,
	logger logger.Logger,
) (*Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store", errs.ErrNilDependency)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: validator", errs.ErrNilDependency)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}

	return &Handler{
		store:     store,
		validator: v,
		logger:    logger,
		serialize: bool(cfg.Storage.SerializeWrites),
	}, nil
}

// Register sets up the middlewares and routes on r.
func (h *Handler) Register(r chi.Router) http.Handler {
	r.Use(middleware.RealIP)
	r.Use(accesslog.Handler(h.logger))
	r.Use(mw.Unzip(h.logger))

	r.Get("/ping", h.PingDB)

	r.Route("/api", func(r chi.Router) {
		r.Post("/shorturl", h.ShortenURL)
		r.Get("/shorturl/", h.Redirect)
		r.Get("/shorturl/{url}", h.Redirect)
		r.Get("/stats", h.GetStats)
	})

	return r
}

// failResponse is the only failure users ever see.
type failResponse struct {
	Error string `json:"error"`
}

// invalidURL answers with the failure payload. It is not an HTTP error.
func (h *Handler) invalidURL(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, failResponse{Error: errs.ErrInvalidURL.Error()})
}

// writeJSON encodes v as a 200 OK JSON response.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.With(r.Context()).Errorf("failed to encode response: %v", err)
	}
}

// internalError logs err and answers with a generic 500.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.logger.With(r.Context()).Errorf("%s: %v", message, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
