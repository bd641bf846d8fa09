package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"checkin_syria/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	if h.Auth == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Admin Disabled", "admin login is not configured")
		return
	}
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	tok, exp, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		log.Warn().Str("user", req.Username).Str("remote", remoteIP(r)).Msg("admin login rejected")
		writeError(w, domain.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: tok, ExpiresAt: exp})
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Admin.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handlers) adminBookings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": h.Admin.Bookings(r.Context())})
}

func (h *Handlers) approveBooking(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Admin.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handlers) declineBooking(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Admin.Decline(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handlers) adminRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Admin.Rooms(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rooms})
}
