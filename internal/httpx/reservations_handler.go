package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

func (h *Handler) registerReservations(r chi.Router) {
	r.Get("/reservations", h.listReservationsForDate)
	r.Post("/reservations", h.createReservation)
	r.Patch("/reservations/{id}", h.updateReservation)
	r.Get("/settings/reservations", h.getReservationSettings)
	r.Post("/contact", h.createContactMessage)
}

func (h *Handler) listReservationsForDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if _, err := time.Parse(storage.DateLayout, date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	rs, err := h.Store.ListReservationsForDate(ctx, date)
	respondList(w, rs, err)
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var in storage.Reservation
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Name == "" || in.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}
	if in.Status == "" {
		in.Status = storage.ReservationPending
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Store.CreateReservation(ctx, in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// updateReservation applies a JSON object as a patch. Fields outside the
// reservation allowlist are ignored by the store.
func (h *Handler) updateReservation(w http.ResponseWriter, r *http.Request) {
	var p storage.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if d, ok := p["date"].(string); ok {
		t, err := time.Parse(time.RFC3339, d)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be RFC3339")
			return
		}
		p["date"] = t
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Store.UpdateReservation(ctx, chi.URLParam(r, "id"), p)
	respond(w, out, err)
}

func (h *Handler) getReservationSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	rs, err := h.Store.GetReservationSettings(ctx)
	respond(w, rs, err)
}

func (h *Handler) createContactMessage(w http.ResponseWriter, r *http.Request) {
	var in storage.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Email == "" || in.Message == "" {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}
	if in.Status == "" {
		in.Status = "new"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Store.CreateContactMessage(ctx, in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, out)
}
