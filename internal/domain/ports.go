package domain

import (
	"context"
	"time"
)

// CatalogRepository is the read side of the hotel/room catalog.
type CatalogRepository interface {
	ListHotels(ctx context.Context) ([]Hotel, error)
	GetHotel(ctx context.Context, id string) (Hotel, error)
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRoomsByHotel(ctx context.Context, hotelID string) ([]Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
}

// CatalogWriter is implemented by stores the seeder can load.
type CatalogWriter interface {
	UpsertHotel(ctx context.Context, h Hotel) error
	UpsertRoom(ctx context.Context, r Room) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// SubmissionStore keeps booking flow state between requests.
type SubmissionStore interface {
	Save(ctx context.Context, s Submission, ttl time.Duration) error
	Load(ctx context.Context, id string) (Submission, error)
}

// BookingNotifier receives confirmed bookings.
type BookingNotifier interface {
	BookingConfirmed(ctx context.Context, c Confirmation, d Draft) error
}
