package memory

import (
	"context"
	"fmt"

	"checkin_syria/internal/domain"
)

// Catalog is a read-only, in-process catalog repository.
// It never mutates after New, so it is safe for concurrent readers.
type Catalog struct {
	hotels   []domain.Hotel
	rooms    []domain.Room
	hotelIdx map[string]int
	roomIdx  map[string]int
}

func New(c domain.Catalog) *Catalog {
	out := &Catalog{
		hotels:   cloneHotels(c.Hotels),
		rooms:    cloneRooms(c.Rooms),
		hotelIdx: make(map[string]int, len(c.Hotels)),
		roomIdx:  make(map[string]int, len(c.Rooms)),
	}
	for i, h := range out.hotels {
		out.hotelIdx[h.ID] = i
	}
	for i, r := range out.rooms {
		out.roomIdx[r.ID] = i
	}
	return out
}

func (c *Catalog) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return cloneHotels(c.hotels), nil
}

func (c *Catalog) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	i, ok := c.hotelIdx[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return cloneHotels(c.hotels[i : i+1])[0], nil
}

func (c *Catalog) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	i, ok := c.roomIdx[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return cloneRooms(c.rooms[i : i+1])[0], nil
}

func (c *Catalog) ListRoomsByHotel(ctx context.Context, hotelID string) ([]domain.Room, error) {
	out := []domain.Room{}
	for _, r := range c.rooms {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return cloneRooms(out), nil
}

func (c *Catalog) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return cloneRooms(c.rooms), nil
}

// Validate checks the hotel<->room references in both directions.
// The returned problems are descriptive; callers decide whether they are fatal.
func Validate(c domain.Catalog) []string {
	var problems []string
	hotels := make(map[string]domain.Hotel, len(c.Hotels))
	for _, h := range c.Hotels {
		hotels[h.ID] = h
	}
	owned := make(map[string]string, len(c.Rooms))
	for _, r := range c.Rooms {
		owned[r.ID] = r.HotelID
		if _, ok := hotels[r.HotelID]; !ok {
			problems = append(problems, fmt.Sprintf("room %s references unknown hotel %s", r.ID, r.HotelID))
		}
	}
	for _, h := range c.Hotels {
		for _, rid := range h.Rooms {
			owner, ok := owned[rid]
			switch {
			case !ok:
				problems = append(problems, fmt.Sprintf("hotel %s lists unknown room %s", h.ID, rid))
			case owner != h.ID:
				problems = append(problems, fmt.Sprintf("hotel %s lists room %s owned by hotel %s", h.ID, rid, owner))
			}
		}
	}
	return problems
}

func cloneHotels(in []domain.Hotel) []domain.Hotel {
	out := make([]domain.Hotel, len(in))
	for i, h := range in {
		h.Images = append([]string(nil), h.Images...)
		h.Amenities = append([]string(nil), h.Amenities...)
		h.Rooms = append([]string(nil), h.Rooms...)
		out[i] = h
	}
	return out
}

func cloneRooms(in []domain.Room) []domain.Room {
	out := make([]domain.Room, len(in))
	for i, r := range in {
		r.Images = append([]string(nil), r.Images...)
		out[i] = r
	}
	return out
}
