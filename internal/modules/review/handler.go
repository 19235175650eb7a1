package review

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes review endpoints. Submission and the approved list are
// public (testimonials page); moderation is admin-only.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, adminOnly func(http.Handler) http.Handler) {
	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Post("/", h.submitReview)
		r.Get("/approved", h.listApproved)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", h.listReviews)
			r.Patch("/{id}/status", h.updateStatus)
			r.Delete("/{id}", h.deleteReview)
		})
	})
}

func (h *Handler) submitReview(w http.ResponseWriter, r *http.Request) {
	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rv, err := h.service.SubmitReview(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respond(w, http.StatusCreated, rv)
}

func (h *Handler) listApproved(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, string(StatusApproved))
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.URL.Query().Get("status"))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, status string) {
	reviews, err := h.service.ListReviews(r.Context(), status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if reviews == nil {
		reviews = []*Review{}
	}
	respond(w, http.StatusOK, reviews)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rv, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrReviewNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	respond(w, http.StatusOK, rv)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrReviewNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
