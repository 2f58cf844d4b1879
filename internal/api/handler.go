// Package api provides HTTP handlers for the Spin Bot API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spinfactor/spinbot/internal/catalog"
	"github.com/spinfactor/spinbot/internal/contact"
	"github.com/spinfactor/spinbot/internal/dialogue"
	"github.com/spinfactor/spinbot/internal/domain"
)

// Handler serves the assistant API.
type Handler struct {
	catalog  *catalog.Catalog
	router   *dialogue.Router
	pipeline *contact.Pipeline
	limiter  *limiterPool
}

// NewHandler creates a new Handler with its dependencies. The rate
// limit applies per client IP to the contact endpoint only.
func NewHandler(c *catalog.Catalog, router *dialogue.Router, pipeline *contact.Pipeline, rps float64, burst int) *Handler {
	return &Handler{
		catalog:  c,
		router:   router,
		pipeline: pipeline,
		limiter:  newLimiterPool(rps, burst),
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/sections/{id}", h.GetSection)
		r.Post("/chat", h.Chat)
		r.Post("/contact", h.Contact)
	})
}

// GetSection returns one catalog section.
func (h *Handler) GetSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	section, err := h.catalog.Resolve(id)
	if err != nil {
		Error(w, http.StatusNotFound, "section not found")
		return
	}
	JSON(w, http.StatusOK, section)
}

// chatRequest is the POST /api/chat payload.
type chatRequest struct {
	Question      string `json:"question"`
	ActiveSection string `json:"activeSection,omitempty"`
}

// Chat routes a free-text question.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply := h.router.Route(req.Question, req.ActiveSection)
	JSON(w, http.StatusOK, reply)
}

// Contact accepts a contact-form submission.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientKey(r)) {
		Error(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	var sub domain.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.pipeline.Submit(r.Context(), sub)
	switch {
	case err == nil:
		JSON(w, http.StatusOK, map[string]bool{"ok": true})
	case errors.Is(err, domain.ErrMissingFields):
		Error(w, http.StatusBadRequest, "missing fields")
	case isConfigError(err):
		slog.Error("Contact endpoint misconfigured", "error", err)
		Error(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, domain.ErrDeliveryFailed):
		Error(w, http.StatusInternalServerError, "delivery failed, please retry later")
	default:
		slog.Error("Unexpected contact pipeline error", "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

func isConfigError(err error) bool {
	var cfgErr *domain.ConfigError
	return errors.As(err, &cfgErr)
}

// clientKey derives the rate-limit key from the request. Behind the
// RealIP middleware RemoteAddr already holds the client address.
func clientKey(r *http.Request) string {
	addr := r.RemoteAddr
	if i := strings.LastIndex(addr, ":"); i > 0 {
		return addr[:i]
	}
	return addr
}
