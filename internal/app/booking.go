package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"checkin_syria/internal/domain"
)

const DefaultSubmitDelay = 1500 * time.Millisecond

// Flow is a single booking form's submission state: Idle -> Submitting -> Confirmed.
// There is no failure state; once validation passes the flow always confirms.
type Flow struct {
	mu      sync.Mutex
	id      string
	phase   domain.Phase
	conf    *domain.Confirmation
	delay   time.Duration
	now     func() time.Time
	observe func(domain.Phase)
}

func NewFlow(id string, delay time.Duration) *Flow {
	return &Flow{id: id, phase: domain.PhaseIdle, delay: delay, now: time.Now}
}

// OnTransition registers fn to be called after every phase change.
func (f *Flow) OnTransition(fn func(domain.Phase)) {
	f.mu.Lock()
	f.observe = fn
	f.mu.Unlock()
}

func (f *Flow) Phase() domain.Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

func (f *Flow) Confirmation() (domain.Confirmation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conf == nil {
		return domain.Confirmation{}, false
	}
	return *f.conf, true
}

// Submit validates the draft and, when valid, runs the artificial delay and
// confirms. An invalid draft leaves the flow Idle. The delay is not cancellable.
func (f *Flow) Submit(d domain.Draft, room domain.Room, hotelName string) (domain.Confirmation, error) {
	if err := ValidateDraft(d, room); err != nil {
		return domain.Confirmation{}, err
	}

	f.mu.Lock()
	if f.phase != domain.PhaseIdle {
		f.mu.Unlock()
		return domain.Confirmation{}, domain.ErrAlreadySubmitted
	}
	f.phase = domain.PhaseSubmitting
	f.mu.Unlock()
	f.notify(domain.PhaseSubmitting)

	if f.delay > 0 {
		t := time.NewTimer(f.delay)
		<-t.C
	}

	c := BuildConfirmation(f.id, d, room, hotelName, f.now())
	f.mu.Lock()
	f.conf = &c
	f.phase = domain.PhaseConfirmed
	f.mu.Unlock()
	f.notify(domain.PhaseConfirmed)
	return c, nil
}

func (f *Flow) notify(p domain.Phase) {
	f.mu.Lock()
	fn := f.observe
	f.mu.Unlock()
	if fn != nil {
		fn(p)
	}
}

// BuildConfirmation summarises a booking. Total is one night's rate; Nights is
// reported alongside but does not multiply the price.
func BuildConfirmation(id string, d domain.Draft, room domain.Room, hotelName string, at time.Time) domain.Confirmation {
	nights := 0
	if !d.CheckIn.IsZero() && !d.CheckOut.IsZero() {
		nights = int(d.CheckOut.Sub(d.CheckIn.Time).Hours() / 24)
	}
	return domain.Confirmation{
		SubmissionID: id,
		RoomID:       room.ID,
		RoomName:     room.Name,
		HotelName:    hotelName,
		Guests:       d.Guests,
		CheckIn:      d.CheckIn,
		CheckOut:     d.CheckOut,
		Nights:       nights,
		Total:        room.Price,
		Email:        d.Email,
		ConfirmedAt:  at.UTC(),
	}
}

// BookingService runs submission flows on behalf of API callers and keeps
// their state in a SubmissionStore so each caller polls its own flow.
type BookingService struct {
	catalog  *CatalogService
	store    domain.SubmissionStore
	notifier domain.BookingNotifier
	ledger   *Ledger
	delay    time.Duration
	ttl      time.Duration
	newID    func() string

	wg sync.WaitGroup
}

type BookingOptions struct {
	Delay    time.Duration // artificial submission delay
	StateTTL time.Duration // how long submission state is kept
}

func NewBookingService(c *CatalogService, st domain.SubmissionStore, n domain.BookingNotifier, l *Ledger, opt BookingOptions) *BookingService {
	if opt.StateTTL <= 0 {
		opt.StateTTL = 24 * time.Hour
	}
	return &BookingService{
		catalog:  c,
		store:    st,
		notifier: n,
		ledger:   l,
		delay:    opt.Delay,
		ttl:      opt.StateTTL,
		newID:    uuid.NewString,
	}
}

// Submit validates synchronously and then confirms in the background.
// The returned submission is in the Submitting phase.
func (s *BookingService) Submit(ctx context.Context, roomID string, d domain.Draft) (domain.Submission, error) {
	f, sub, room, hotel, err := s.prepare(ctx, roomID, d)
	if err != nil {
		return domain.Submission{}, err
	}
	if err := s.store.Save(ctx, sub, s.ttl); err != nil {
		return domain.Submission{}, fmt.Errorf("save submission: %w", err)
	}

	bg := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(bg, f, sub, room, hotel)
	}()
	return sub, nil
}

// SubmitAndWait runs the whole flow before returning the confirmed submission.
func (s *BookingService) SubmitAndWait(ctx context.Context, roomID string, d domain.Draft) (domain.Submission, error) {
	f, sub, room, hotel, err := s.prepare(ctx, roomID, d)
	if err != nil {
		return domain.Submission{}, err
	}
	if err := s.store.Save(ctx, sub, s.ttl); err != nil {
		return domain.Submission{}, fmt.Errorf("save submission: %w", err)
	}
	return s.run(ctx, f, sub, room, hotel), nil
}

func (s *BookingService) Get(ctx context.Context, id string) (domain.Submission, error) {
	return s.store.Load(ctx, id)
}

// Wait blocks until every background confirmation has finished.
func (s *BookingService) Wait() { s.wg.Wait() }

func (s *BookingService) prepare(ctx context.Context, roomID string, d domain.Draft) (*Flow, domain.Submission, domain.Room, domain.Hotel, error) {
	room, err := s.catalog.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, domain.Submission{}, domain.Room{}, domain.Hotel{}, err
	}
	if !room.Available {
		return nil, domain.Submission{}, domain.Room{}, domain.Hotel{}, fmt.Errorf("room %s: %w", roomID, domain.ErrRoomUnavailable)
	}
	d.RoomID = room.ID
	if err := ValidateDraft(d, room); err != nil {
		return nil, domain.Submission{}, domain.Room{}, domain.Hotel{}, err
	}
	hotel, err := s.catalog.GetHotelByID(ctx, room.HotelID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Submission{}, domain.Room{}, domain.Hotel{}, err
	}

	sub := domain.Submission{ID: s.newID(), Phase: domain.PhaseSubmitting, Draft: d, CreatedAt: time.Now().UTC()}
	return NewFlow(sub.ID, s.delay), sub, room, hotel, nil
}

func (s *BookingService) run(ctx context.Context, f *Flow, sub domain.Submission, room domain.Room, hotel domain.Hotel) domain.Submission {
	c, err := f.Submit(sub.Draft, room, hotel.Name)
	if err != nil {
		// prepare already validated the same draft
		log.Error().Err(err).Str("submission", sub.ID).Msg("booking flow rejected a validated draft")
		return sub
	}
	sub.Phase = f.Phase()
	sub.Confirmation = &c
	if err := s.store.Save(ctx, sub, s.ttl); err != nil {
		log.Error().Err(err).Str("submission", sub.ID).Msg("save confirmed submission failed")
	}
	if s.ledger != nil {
		s.ledger.Append(recordFromConfirmation(sub.Draft, c))
	}
	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, c, sub.Draft); err != nil {
			log.Warn().Err(err).Str("submission", sub.ID).Msg("booking notification failed")
		}
	}
	return sub
}

func recordFromConfirmation(d domain.Draft, c domain.Confirmation) domain.BookingRecord {
	return domain.BookingRecord{
		ID:         c.SubmissionID,
		GuestName:  d.FirstName + " " + d.LastName,
		RoomName:   c.RoomName,
		CheckIn:    c.CheckIn,
		CheckOut:   c.CheckOut,
		Status:     domain.StatusPending,
		Guests:     c.Guests,
		TotalPrice: c.Total,
	}
}
