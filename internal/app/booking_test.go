package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"checkin_syria/internal/app"
	"checkin_syria/internal/domain"
)

func TestFlow_IdleSubmittingConfirmed(t *testing.T) {
	f := app.NewFlow("sub-1", 20*time.Millisecond)
	var seen []domain.Phase
	f.OnTransition(func(p domain.Phase) { seen = append(seen, p) })

	if f.Phase() != domain.PhaseIdle {
		t.Fatalf("expected idle, got %s", f.Phase())
	}
	c, err := f.Submit(validDraft(), twin, "Beit Al-Wali Heritage Hotel")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(seen) != 2 || seen[0] != domain.PhaseSubmitting || seen[1] != domain.PhaseConfirmed {
		t.Fatalf("unexpected transitions: %v", seen)
	}
	if c.RoomName != "Heritage Suite" || c.Total != twin.Price || c.Guests != 2 {
		t.Fatalf("unexpected confirmation: %+v", c)
	}
	if c.CheckIn.String() != "2024-03-20" || c.CheckOut.String() != "2024-03-21" {
		t.Fatalf("unexpected dates: %s..%s", c.CheckIn, c.CheckOut)
	}
	got, ok := f.Confirmation()
	if !ok || got.SubmissionID != "sub-1" {
		t.Fatalf("confirmation not exposed: %+v", got)
	}

	if _, err := f.Submit(validDraft(), twin, ""); !errors.Is(err, domain.ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestFlow_InvalidDraftStaysIdle(t *testing.T) {
	f := app.NewFlow("sub-2", 0)
	d := validDraft()
	d.Guests = 3
	if _, err := f.Submit(d, twin, ""); err == nil {
		t.Fatalf("expected validation error")
	}
	if f.Phase() != domain.PhaseIdle {
		t.Fatalf("expected idle after invalid submit, got %s", f.Phase())
	}
	if _, ok := f.Confirmation(); ok {
		t.Fatalf("no confirmation expected")
	}
}

func TestBuildConfirmation_TotalIsOneNight(t *testing.T) {
	d := validDraft()
	d.CheckOut = domain.MustDate("2024-03-23")
	c := app.BuildConfirmation("x", d, twin, "", time.Now())
	if c.Nights != 3 {
		t.Fatalf("expected 3 nights, got %d", c.Nights)
	}
	if c.Total != twin.Price {
		t.Fatalf("expected total %.0f, got %.0f", twin.Price, c.Total)
	}
}

func newBookingService(t *testing.T, delay time.Duration) (*app.BookingService, *memStore, *fakeNotifier, *app.Ledger) {
	t.Helper()
	catalog := app.NewCatalogService(seedRepo(), &fakeCache{}, time.Minute)
	store := &memStore{}
	n := &fakeNotifier{}
	l := app.NewLedger(nil)
	svc := app.NewBookingService(catalog, store, n, l, app.BookingOptions{Delay: delay})
	return svc, store, n, l
}

func TestBookingService_SubmitThenConfirmInBackground(t *testing.T) {
	svc, _, n, l := newBookingService(t, 10*time.Millisecond)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, "1", validDraft())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Phase != domain.PhaseSubmitting || sub.ID == "" {
		t.Fatalf("unexpected submission: %+v", sub)
	}

	svc.Wait()

	got, err := svc.Get(ctx, sub.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Phase != domain.PhaseConfirmed || got.Confirmation == nil {
		t.Fatalf("expected confirmed, got %+v", got)
	}
	if got.Confirmation.RoomName != "Heritage Suite" || got.Confirmation.HotelName != "Beit Al-Wali Heritage Hotel" {
		t.Fatalf("unexpected confirmation: %+v", got.Confirmation)
	}
	if n.count() != 1 {
		t.Fatalf("expected one notification, got %d", n.count())
	}
	recs := l.All()
	if len(recs) != 1 || recs[0].Status != domain.StatusPending || recs[0].GuestName != "Layla Haddad" {
		t.Fatalf("unexpected ledger: %+v", recs)
	}
}

func TestBookingService_SubmitAndWait(t *testing.T) {
	svc, _, _, _ := newBookingService(t, 0)
	sub, err := svc.SubmitAndWait(context.Background(), "10", validDraft())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Phase != domain.PhaseConfirmed || sub.Confirmation.Total != 140 {
		t.Fatalf("unexpected submission: %+v", sub)
	}
}

func TestBookingService_Rejections(t *testing.T) {
	svc, store, n, _ := newBookingService(t, 0)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "99", validDraft()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// room 3 is marked unavailable in the catalog
	if _, err := svc.Submit(ctx, "3", validDraft()); !errors.Is(err, domain.ErrRoomUnavailable) {
		t.Fatalf("expected ErrRoomUnavailable, got %v", err)
	}
	d := validDraft()
	d.Email = "not-an-email"
	_, err := svc.Submit(ctx, "1", d)
	var ve domain.ValidationErrors
	if !errors.As(err, &ve) || ve["email"].Kind != domain.InvalidFormat {
		t.Fatalf("expected email InvalidFormat, got %v", err)
	}

	svc.Wait()
	if len(store.subs) != 0 || n.count() != 0 {
		t.Fatalf("rejected drafts must not be stored or notified")
	}
}

func TestFlow_OnTransitionWhileSubmitting(t *testing.T) {
	f := app.NewFlow("sub-2", 5*time.Millisecond)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Submit(validDraft(), twin, "")
	}()
	// run under -race: registering an observer concurrently with Submit is safe
	var mu sync.Mutex
	var seen []domain.Phase
	f.OnTransition(func(p domain.Phase) {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
	})
	<-done

	if f.Phase() != domain.PhaseConfirmed {
		t.Fatalf("expected confirmed, got %s", f.Phase())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(seen) > 2 {
		t.Fatalf("unexpected transitions: %v", seen)
	}
}
