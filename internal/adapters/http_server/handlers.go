// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"checkin_syria/internal/adapters/auth"
	"checkin_syria/internal/adapters/observability"
	"checkin_syria/internal/app"
	"checkin_syria/internal/domain"
)

type Handlers struct {
	Catalog  *app.CatalogService
	Bookings *app.BookingService
	Admin    *app.AdminService
	Auth     *auth.Service
	Limiter  *RateLimiter
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type validationProblem struct {
	problem
	Errors map[string]string           `json:"errors"`
	Kinds  map[string]domain.ErrorKind `json:"kinds"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Get("/v1/hotels/{id}/rooms", h.listRooms)
	s.mux.Get("/v1/rooms/{id}", h.getRoom)
	s.mux.With(RateLimit(h.Limiter)).Post("/v1/rooms/{id}/bookings", h.submitBooking)
	s.mux.Get("/v1/bookings/{id}", h.getBooking)

	s.mux.With(RateLimit(h.Limiter)).Post("/v1/admin/login", h.login)
	s.mux.Group(func(r chi.Router) {
		r.Use(RequireAdmin(h.authenticator()))
		r.Get("/v1/admin/dashboard", h.dashboard)
		r.Get("/v1/admin/bookings", h.adminBookings)
		r.Post("/v1/admin/bookings/{id}/approve", h.approveBooking)
		r.Post("/v1/admin/bookings/{id}/decline", h.declineBooking)
		r.Get("/v1/admin/rooms", h.adminRooms)
	})
}

func (h *Handlers) authenticator() Authenticator {
	if h.Auth == nil {
		return nil
	}
	return h.Auth
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	var ve domain.ValidationErrors
	switch {
	case errors.As(err, &ve):
		kinds := make(map[string]domain.ErrorKind, len(ve))
		for k, fe := range ve {
			kinds[k] = fe.Kind
		}
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := json.NewEncoder(w).Encode(validationProblem{
			problem: problem{Type: "about:blank", Title: "Invalid booking", Status: http.StatusUnprocessableEntity},
			Errors:  ve.Messages(),
			Kinds:   kinds,
		}); err != nil {
			log.Error().Err(err).Msg("write JSON validation response failed")
		}
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrRoomUnavailable):
		writeProblem(w, http.StatusConflict, "Room Unavailable", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeProblem(w, http.StatusConflict, "Invalid Transition", err.Error())
	case errors.Is(err, domain.ErrBadCriteria):
		writeProblem(w, http.StatusBadRequest, "Invalid Criteria", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable writes v with a weak ETag, answering 304 when the client already has it.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

type hotelsResponse struct {
	Items     []domain.Hotel `json:"items"`
	Total     int            `json:"total"`
	Locations []string       `json:"locations"`
	Criteria  app.Criteria   `json:"criteria"`
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	c, err := app.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	all, err := h.Catalog.ListHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	items := app.Filter(all, c)
	writeCacheable(w, r, hotelsResponse{
		Items:     items,
		Total:     len(items),
		Locations: app.UniqueLocations(all),
		Criteria:  c,
	})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Catalog.GetHotelByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, hotel)
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Catalog.GetHotelByID(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	rooms, err := h.Catalog.GetRoomsByHotelID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, map[string]any{"items": rooms})
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.Catalog.GetRoomByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, room)
}

func (h *Handlers) submitBooking(w http.ResponseWriter, r *http.Request) {
	var d domain.Draft
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(&d); err != nil {
		observability.ObserveSubmission("bad_request")
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	var (
		sub domain.Submission
		err error
	)
	if wait {
		sub, err = h.Bookings.SubmitAndWait(r.Context(), chi.URLParam(r, "id"), d)
	} else {
		sub, err = h.Bookings.Submit(r.Context(), chi.URLParam(r, "id"), d)
	}
	if err != nil {
		observability.ObserveSubmission(submissionOutcome(err))
		writeError(w, err)
		return
	}
	observability.ObserveSubmission("accepted")

	w.Header().Set("Location", "/v1/bookings/"+sub.ID)
	status := http.StatusAccepted
	if sub.Phase == domain.PhaseConfirmed {
		status = http.StatusCreated
	}
	writeJSON(w, status, submissionView(sub))
}

func submissionOutcome(err error) string {
	var ve domain.ValidationErrors
	switch {
	case errors.As(err, &ve):
		return "invalid"
	case errors.Is(err, domain.ErrRoomUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

type submissionResponse struct {
	ID           string               `json:"id"`
	Phase        domain.Phase         `json:"phase"`
	Confirmation *domain.Confirmation `json:"confirmation,omitempty"`
}

// the stored draft carries contact details; only the summary goes back out
func submissionView(s domain.Submission) submissionResponse {
	return submissionResponse{ID: s.ID, Phase: s.Phase, Confirmation: s.Confirmation}
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	sub, err := h.Bookings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissionView(sub))
}
