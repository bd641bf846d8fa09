package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"checkin_syria/internal/adapters/auth"
	server "checkin_syria/internal/adapters/http_server"
	"checkin_syria/internal/adapters/notify"
	redisad "checkin_syria/internal/adapters/redis"
	"checkin_syria/internal/app"
	"checkin_syria/internal/domain"
	"checkin_syria/internal/storage/memory"
)

type testEnv struct {
	ts       *httptest.Server
	bookings *app.BookingService
}

func newEnv(t *testing.T, limiter *server.RateLimiter) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	catalog := app.NewCatalogService(memory.New(memory.SeedCatalog()), redisad.NewWithClient(rc), time.Minute)
	ledger := app.NewLedger(memory.SeedBookings())
	bookings := app.NewBookingService(catalog, redisad.NewSubmissions(rc), notify.NewLog(zerolog.Nop()), ledger,
		app.BookingOptions{Delay: 5 * time.Millisecond})

	hash, err := auth.HashPassword("letmein")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	authSvc, err := auth.New("admin", hash, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("auth: %v", err)
	}

	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Catalog:  catalog,
		Bookings: bookings,
		Admin:    app.NewAdminService(catalog, ledger),
		Auth:     authSvc,
		Limiter:  limiter,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(func() {
		ts.Close()
		bookings.Wait()
	})
	return &testEnv{ts: ts, bookings: bookings}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, e.ts.URL+path, rd)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(res.Body)
	return res, buf.Bytes()
}

func validDraft() domain.Draft {
	return domain.Draft{
		FirstName: "Nour", LastName: "Saleh", Email: "nour@example.com", Phone: "0944 000 000",
		CheckIn: domain.MustDate("2024-03-20"), CheckOut: domain.MustDate("2024-03-22"), Guests: 2,
	}
}

func TestListHotels_DefaultAndFiltered(t *testing.T) {
	e := newEnv(t, nil)

	res, body := e.do(t, "GET", "/v1/hotels", nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, body)
	}
	var out struct {
		Items     []domain.Hotel `json:"items"`
		Locations []string       `json:"locations"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 4 || len(out.Locations) != 4 {
		t.Fatalf("unexpected listing: %d hotels, %d locations", len(out.Items), len(out.Locations))
	}

	res, body = e.do(t, "GET", "/v1/hotels?search=desert&min_rating=4.5", nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, body)
	}
	_ = json.Unmarshal(body, &out)
	if len(out.Items) != 1 || out.Items[0].ID != "3" {
		t.Fatalf("unexpected filtered listing: %+v", out.Items)
	}

	res, _ = e.do(t, "GET", "/v1/hotels?max_price=abc", nil, "")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestGetHotel_ETagAndNotFound(t *testing.T) {
	e := newEnv(t, nil)

	res, _ := e.do(t, "GET", "/v1/hotels/1", nil, "")
	if res.StatusCode != http.StatusOK || res.Header.Get("ETag") == "" {
		t.Fatalf("expected 200 with ETag, got %d", res.StatusCode)
	}

	req, _ := http.NewRequest("GET", e.ts.URL+"/v1/hotels/1", nil)
	req.Header.Set("If-None-Match", res.Header.Get("ETag"))
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}

	res, _ = e.do(t, "GET", "/v1/hotels/404", nil, "")
	if res.StatusCode != http.StatusNotFound || res.Header.Get("Content-Type") != "application/problem+json" {
		t.Fatalf("expected problem 404, got %d %s", res.StatusCode, res.Header.Get("Content-Type"))
	}

	res, body := e.do(t, "GET", "/v1/hotels/2/rooms", nil, "")
	var rooms struct {
		Items []domain.Room `json:"items"`
	}
	_ = json.Unmarshal(body, &rooms)
	if res.StatusCode != http.StatusOK || len(rooms.Items) != 3 || rooms.Items[0].ID != "4" {
		t.Fatalf("unexpected rooms: %d %+v", res.StatusCode, rooms.Items)
	}
}

func TestSubmitBooking_ValidationErrors(t *testing.T) {
	e := newEnv(t, nil)
	d := validDraft()
	d.Email = "a@b"
	d.Guests = 3
	d.CheckOut = d.CheckIn

	res, body := e.do(t, "POST", "/v1/rooms/1/bookings", d, "")
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", res.StatusCode, body)
	}
	var p struct {
		Errors map[string]string           `json:"errors"`
		Kinds  map[string]domain.ErrorKind `json:"kinds"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Kinds["email"] != domain.InvalidFormat || p.Kinds["guests"] != domain.OutOfRange || p.Kinds["checkOut"] != domain.InvalidRange {
		t.Fatalf("unexpected kinds: %v", p.Kinds)
	}
	if p.Errors["guests"] != "Maximum capacity is 2 guests" {
		t.Fatalf("unexpected message: %q", p.Errors["guests"])
	}
}

func TestSubmitBooking_UnavailableAndUnknownRoom(t *testing.T) {
	e := newEnv(t, nil)
	if res, _ := e.do(t, "POST", "/v1/rooms/3/bookings", validDraft(), ""); res.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", res.StatusCode)
	}
	if res, _ := e.do(t, "POST", "/v1/rooms/77/bookings", validDraft(), ""); res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestSubmitBooking_AsyncThenPoll(t *testing.T) {
	e := newEnv(t, nil)

	res, body := e.do(t, "POST", "/v1/rooms/5/bookings", validDraft(), "")
	if res.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", res.StatusCode, body)
	}
	var sub struct {
		ID           string               `json:"id"`
		Phase        domain.Phase         `json:"phase"`
		Confirmation *domain.Confirmation `json:"confirmation"`
	}
	_ = json.Unmarshal(body, &sub)
	if sub.Phase != domain.PhaseSubmitting || sub.ID == "" {
		t.Fatalf("unexpected submission: %+v", sub)
	}

	e.bookings.Wait()

	res, body = e.do(t, "GET", "/v1/bookings/"+sub.ID, nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	_ = json.Unmarshal(body, &sub)
	if sub.Phase != domain.PhaseConfirmed || sub.Confirmation == nil {
		t.Fatalf("expected confirmed, got %+v", sub)
	}
	if sub.Confirmation.RoomName != "Deluxe Double Room" || sub.Confirmation.Total != 120 {
		t.Fatalf("unexpected confirmation: %+v", sub.Confirmation)
	}

	if res, _ := e.do(t, "GET", "/v1/bookings/unknown", nil, ""); res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestSubmitBooking_Wait(t *testing.T) {
	e := newEnv(t, nil)
	res, body := e.do(t, "POST", "/v1/rooms/1/bookings?wait=true", validDraft(), "")
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.StatusCode, body)
	}
	if res.Header.Get("Location") == "" {
		t.Fatalf("missing Location header")
	}
}

func TestSubmitBooking_BadJSON(t *testing.T) {
	e := newEnv(t, nil)
	res, _ := e.do(t, "POST", "/v1/rooms/1/bookings", map[string]any{"checkIn": "20/03/2024"}, "")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestAdmin_RequiresSession(t *testing.T) {
	e := newEnv(t, nil)

	if res, _ := e.do(t, "GET", "/v1/admin/dashboard", nil, ""); res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
	if res, _ := e.do(t, "GET", "/v1/admin/dashboard", nil, "forged"); res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
	if res, _ := e.do(t, "POST", "/v1/admin/login", map[string]string{"username": "admin", "password": "nope"}, ""); res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	res, body := e.do(t, "POST", "/v1/admin/login", map[string]string{"username": "admin", "password": "letmein"}, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status %d: %s", res.StatusCode, body)
	}
	var lr struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &lr)

	res, body = e.do(t, "GET", "/v1/admin/dashboard", nil, lr.Token)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status %d: %s", res.StatusCode, body)
	}
	var dash app.Dashboard
	_ = json.Unmarshal(body, &dash)
	if len(dash.Stats) != 4 || len(dash.Trends) != 6 {
		t.Fatalf("unexpected dashboard: %+v", dash)
	}

	res, body = e.do(t, "POST", "/v1/admin/bookings/2/approve", nil, lr.Token)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("approve status %d: %s", res.StatusCode, body)
	}
	if res, _ := e.do(t, "POST", "/v1/admin/bookings/2/decline", nil, lr.Token); res.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on second transition, got %d", res.StatusCode)
	}

	res, body = e.do(t, "GET", "/v1/admin/rooms", nil, lr.Token)
	var rooms struct {
		Items []app.RoomListing `json:"items"`
	}
	_ = json.Unmarshal(body, &rooms)
	if res.StatusCode != http.StatusOK || len(rooms.Items) != 12 || rooms.Items[0].HotelName == "" {
		t.Fatalf("unexpected rooms listing: %d %+v", res.StatusCode, rooms.Items)
	}
}

func TestRateLimit(t *testing.T) {
	e := newEnv(t, server.NewRateLimiter(0.001, 1))
	d := validDraft()
	d.Email = "bad"

	if res, _ := e.do(t, "POST", "/v1/rooms/1/bookings", d, ""); res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on first call, got %d", res.StatusCode)
	}
	res, _ := e.do(t, "POST", "/v1/rooms/1/bookings", d, "")
	if res.StatusCode != http.StatusTooManyRequests || res.Header.Get("Retry-After") == "" {
		t.Fatalf("expected 429, got %d", res.StatusCode)
	}
}

func TestUnknownRoute_Problem(t *testing.T) {
	e := newEnv(t, nil)

	res, body := e.do(t, "GET", "/v1/nowhere", nil, "")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	var p struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(body, &p); err != nil || p.Status != http.StatusNotFound {
		t.Fatalf("expected problem body, got %s", body)
	}

	res, _ = e.do(t, "DELETE", "/v1/hotels", nil, "")
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.StatusCode)
	}

	// trailing slash is tolerated
	res, _ = e.do(t, "GET", "/v1/hotels/", nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}
