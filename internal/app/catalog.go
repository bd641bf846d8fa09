package app

import (
	"context"
	"fmt"
	"time"

	"checkin_syria/internal/domain"
)

// CatalogService is the catalog accessor: read-through cached lookups
// over whichever repository backs the catalog.
type CatalogService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *CatalogService) ttl() int { return int(s.cacheTTL.Seconds()) }

func (s *CatalogService) GetHotelByID(ctx context.Context, id string) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if ok, _ := s.cacheGet(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("hotel %s: %w", id, err)
	}
	s.cacheSet(ctx, key, h)
	return h, nil
}

func (s *CatalogService) GetRoomByID(ctx context.Context, id string) (domain.Room, error) {
	key := roomKey(id)
	var r domain.Room
	if ok, _ := s.cacheGet(ctx, key, &r); ok {
		return r, nil
	}
	r, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return domain.Room{}, fmt.Errorf("room %s: %w", id, err)
	}
	s.cacheSet(ctx, key, r)
	return r, nil
}

// GetRoomsByHotelID returns the hotel's rooms in store order; empty when none match.
func (s *CatalogService) GetRoomsByHotelID(ctx context.Context, hotelID string) ([]domain.Room, error) {
	key := hotelRoomsKey(hotelID)
	var rs []domain.Room
	if ok, _ := s.cacheGet(ctx, key, &rs); ok {
		return rs, nil
	}
	rs, err := s.repo.ListRoomsByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		rs = []domain.Room{}
	}
	s.cacheSet(ctx, key, rs)
	return copyRooms(rs), nil
}

func (s *CatalogService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	var hs []domain.Hotel
	if ok, _ := s.cacheGet(ctx, hotelsKey, &hs); ok {
		return hs, nil
	}
	hs, err := s.repo.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, hotelsKey, hs)
	return copyHotels(hs), nil
}

func (s *CatalogService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.repo.ListRooms(ctx)
}

// Locations lists each distinct hotel location once, in catalog order.
func (s *CatalogService) Locations(ctx context.Context) ([]string, error) {
	hs, err := s.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	return UniqueLocations(hs), nil
}

// Invalidate drops every cached entry that could mention the hotel.
func (s *CatalogService) Invalidate(ctx context.Context, h domain.Hotel) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, hotelsKey)
	_ = s.cache.Del(ctx, hotelKey(h.ID))
	_ = s.cache.Del(ctx, hotelRoomsKey(h.ID))
	for _, rid := range h.Rooms {
		_ = s.cache.Del(ctx, roomKey(rid))
	}
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, dst any) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	return s.cache.Get(ctx, key, dst)
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, v, s.ttl())
}

const hotelsKey = "catalog:hotels"

func hotelKey(id string) string      { return "catalog:hotel:" + id }
func roomKey(id string) string       { return "catalog:room:" + id }
func hotelRoomsKey(id string) string { return "catalog:hotel_rooms:" + id }

// copy slices so callers can't mutate what a cache fake is holding
func copyRooms(in []domain.Room) []domain.Room {
	out := make([]domain.Room, len(in))
	copy(out, in)
	return out
}

func copyHotels(in []domain.Hotel) []domain.Hotel {
	out := make([]domain.Hotel, len(in))
	copy(out, in)
	return out
}
