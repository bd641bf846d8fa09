package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jinzhu/now"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"checkin_syria/internal/domain"
)

// Ledger is the in-process admin bookings list.
type Ledger struct {
	mu   sync.RWMutex
	recs []domain.BookingRecord
}

func NewLedger(seed []domain.BookingRecord) *Ledger {
	return &Ledger{recs: append([]domain.BookingRecord(nil), seed...)}
}

func (l *Ledger) Append(r domain.BookingRecord) {
	l.mu.Lock()
	l.recs = append(l.recs, r)
	l.mu.Unlock()
}

func (l *Ledger) All() []domain.BookingRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.BookingRecord(nil), l.recs...)
}

// SetStatus moves a pending booking to to. Anything else is an invalid transition.
func (l *Ledger) SetStatus(id string, to domain.BookingStatus) (domain.BookingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.recs {
		if l.recs[i].ID != id {
			continue
		}
		if l.recs[i].Status != domain.StatusPending {
			return domain.BookingRecord{}, fmt.Errorf("booking %s is %s: %w", id, l.recs[i].Status, domain.ErrInvalidTransition)
		}
		l.recs[i].Status = to
		return l.recs[i], nil
	}
	return domain.BookingRecord{}, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
}

type Stat struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type TrendPoint struct {
	Month    string `json:"name"`
	Bookings int    `json:"bookings"`
}

type Dashboard struct {
	Stats  []Stat       `json:"stats"`
	Trends []TrendPoint `json:"trends"`
}

type RoomListing struct {
	domain.Room
	HotelName string `json:"hotelName"`
}

type AdminService struct {
	catalog *CatalogService
	ledger  *Ledger
	now     func() time.Time
	printer *message.Printer
}

func NewAdminService(c *CatalogService, l *Ledger) *AdminService {
	return &AdminService{catalog: c, ledger: l, now: time.Now, printer: message.NewPrinter(language.English)}
}

const trendMonths = 6

func (s *AdminService) Dashboard(ctx context.Context) (Dashboard, error) {
	rooms, err := s.catalog.ListRooms(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	recs := s.ledger.All()

	active := 0
	for _, r := range rooms {
		if r.Available {
			active++
		}
	}
	guests := 0
	revenue := 0.0
	for _, b := range recs {
		if b.Status == domain.StatusCancelled {
			continue
		}
		guests += b.Guests
		revenue += b.TotalPrice
	}

	return Dashboard{
		Stats: []Stat{
			{Name: "Total Bookings", Value: s.printer.Sprintf("%d", len(recs))},
			{Name: "Active Rooms", Value: s.printer.Sprintf("%d", active)},
			{Name: "Total Guests", Value: s.printer.Sprintf("%d", guests)},
			{Name: "Revenue", Value: s.printer.Sprintf("$%d", int64(revenue+0.5))},
		},
		Trends: monthlyTrends(recs, s.now(), trendMonths),
	}, nil
}

// monthlyTrends counts bookings by check-in month for the n months ending with ref's month.
func monthlyTrends(recs []domain.BookingRecord, ref time.Time, n int) []TrendPoint {
	start := now.With(ref.UTC()).BeginningOfMonth().AddDate(0, -(n - 1), 0)
	out := make([]TrendPoint, n)
	for i := range out {
		out[i].Month = start.AddDate(0, i, 0).Format("Jan")
	}
	for _, b := range recs {
		if b.CheckIn.IsZero() || b.CheckIn.Before(start) {
			continue
		}
		m := now.With(b.CheckIn.Time).BeginningOfMonth()
		idx := (m.Year()-start.Year())*12 + int(m.Month()-start.Month())
		if idx >= 0 && idx < n {
			out[idx].Bookings++
		}
	}
	return out
}

// Bookings lists the ledger, latest check-in first.
func (s *AdminService) Bookings(ctx context.Context) []domain.BookingRecord {
	recs := s.ledger.All()
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].CheckIn.After(recs[j].CheckIn.Time) })
	return recs
}

func (s *AdminService) Approve(ctx context.Context, id string) (domain.BookingRecord, error) {
	return s.ledger.SetStatus(id, domain.StatusConfirmed)
}

func (s *AdminService) Decline(ctx context.Context, id string) (domain.BookingRecord, error) {
	return s.ledger.SetStatus(id, domain.StatusCancelled)
}

func (s *AdminService) Rooms(ctx context.Context) ([]RoomListing, error) {
	hotels, err := s.catalog.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(hotels))
	for _, h := range hotels {
		names[h.ID] = h.Name
	}
	rooms, err := s.catalog.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RoomListing, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomListing{Room: r, HotelName: names[r.HotelID]})
	}
	return out, nil
}
