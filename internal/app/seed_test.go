package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"checkin_syria/internal/app"
	"checkin_syria/internal/domain"
	"checkin_syria/internal/storage/memory"
)

type recordingWriter struct {
	ops []string
}

func (w *recordingWriter) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	w.ops = append(w.ops, "hotel:"+h.ID)
	return nil
}
func (w *recordingWriter) UpsertRoom(ctx context.Context, r domain.Room) error {
	w.ops = append(w.ops, "room:"+r.ID)
	return nil
}

func TestSeedHotel_ParentFirstThenRooms(t *testing.T) {
	w := &recordingWriter{}
	cache := &fakeCache{}
	catalog := app.NewCatalogService(seedRepo(), cache, time.Minute)
	s := app.NewSeedService(memory.SeedCatalog(), w, catalog)

	if err := s.SeedHotel(context.Background(), "3"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	want := []string{"hotel:3", "room:7", "room:8", "room:9"}
	if len(w.ops) != len(want) {
		t.Fatalf("got %v", w.ops)
	}
	for i := range want {
		if w.ops[i] != want[i] {
			t.Fatalf("got %v, want %v", w.ops, want)
		}
	}
	if len(cache.dels) == 0 {
		t.Fatalf("expected cache invalidation")
	}
	if len(s.HotelIDs()) != 4 {
		t.Fatalf("unexpected hotel ids: %v", s.HotelIDs())
	}
}

func TestSeedHotel_Unknown(t *testing.T) {
	s := app.NewSeedService(memory.SeedCatalog(), &recordingWriter{}, nil)
	if err := s.SeedHotel(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSeedHotels_CatalogOrderThenRooms(t *testing.T) {
	w := &recordingWriter{}
	s := app.NewSeedService(memory.SeedCatalog(), w, nil)
	ctx := context.Background()

	if err := s.SeedHotels(ctx); err != nil {
		t.Fatalf("seed hotels: %v", err)
	}
	want := []string{"hotel:1", "hotel:2", "hotel:3", "hotel:4"}
	if len(w.ops) != len(want) {
		t.Fatalf("got %v", w.ops)
	}
	for i := range want {
		if w.ops[i] != want[i] {
			t.Fatalf("got %v, want %v", w.ops, want)
		}
	}

	w.ops = nil
	if err := s.SeedRooms(ctx, "2"); err != nil {
		t.Fatalf("seed rooms: %v", err)
	}
	want = []string{"room:4", "room:5", "room:6"}
	for i := range want {
		if len(w.ops) != len(want) || w.ops[i] != want[i] {
			t.Fatalf("got %v, want %v", w.ops, want)
		}
	}
	if err := s.SeedRooms(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
