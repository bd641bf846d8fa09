package app_test

import (
	"context"
	"sync"
	"time"

	"checkin_syria/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	hotels []domain.Hotel
	rooms  []domain.Room
	calls  int
}

func (f *fakeRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	f.calls++
	return append([]domain.Hotel(nil), f.hotels...), nil
}
func (f *fakeRepo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	f.calls++
	for _, h := range f.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}
func (f *fakeRepo) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	f.calls++
	for _, r := range f.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Room{}, domain.ErrNotFound
}
func (f *fakeRepo) ListRoomsByHotel(ctx context.Context, hotelID string) ([]domain.Room, error) {
	f.calls++
	var out []domain.Room
	for _, r := range f.rooms {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeRepo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	f.calls++
	return append([]domain.Room(nil), f.rooms...), nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	case *domain.Room:
		*d = v.(domain.Room)
	case *[]domain.Room:
		*d = append([]domain.Room(nil), v.([]domain.Room)...)
	case *[]domain.Hotel:
		*d = append([]domain.Hotel(nil), v.([]domain.Hotel)...)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type memStore struct {
	mu   sync.Mutex
	subs map[string]domain.Submission
}

func (m *memStore) Save(ctx context.Context, s domain.Submission, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subs == nil {
		m.subs = map[string]domain.Submission{}
	}
	m.subs[s.ID] = s
	return nil
}
func (m *memStore) Load(ctx context.Context, id string) (domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subs[id]
	if !ok {
		return domain.Submission{}, domain.ErrNotFound
	}
	return s, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []domain.Confirmation
}

func (n *fakeNotifier) BookingConfirmed(ctx context.Context, c domain.Confirmation, d domain.Draft) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, c)
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func validDraft() domain.Draft {
	return domain.Draft{
		FirstName: "Layla",
		LastName:  "Haddad",
		Email:     "layla@example.com",
		Phone:     "+963 11 555 0100",
		CheckIn:   domain.MustDate("2024-03-20"),
		CheckOut:  domain.MustDate("2024-03-21"),
		Guests:    2,
	}
}

func ptr[T any](v T) *T { return &v }
