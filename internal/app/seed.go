package app

import (
	"context"
	"fmt"

	"checkin_syria/internal/domain"
)

// SeedService copies catalog hotels (parent first, then their rooms) into a
// writable store and evicts anything cached for them.
type SeedService struct {
	src     domain.Catalog
	dst     domain.CatalogWriter
	catalog *CatalogService
}

func NewSeedService(src domain.Catalog, dst domain.CatalogWriter, c *CatalogService) *SeedService {
	return &SeedService{src: src, dst: dst, catalog: c}
}

func (s *SeedService) HotelIDs() []string {
	ids := make([]string, 0, len(s.src.Hotels))
	for _, h := range s.src.Hotels {
		ids = append(ids, h.ID)
	}
	return ids
}

func (s *SeedService) hotel(id string) (domain.Hotel, error) {
	for _, h := range s.src.Hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, fmt.Errorf("seed hotel %s: %w", id, domain.ErrNotFound)
}

// SeedHotels upserts every hotel row in catalog order. Storage that orders by
// insertion then lists hotels the way the source catalog does.
func (s *SeedService) SeedHotels(ctx context.Context) error {
	for _, h := range s.src.Hotels {
		if err := s.dst.UpsertHotel(ctx, h); err != nil {
			return fmt.Errorf("upsert hotel %s: %w", h.ID, err)
		}
	}
	return nil
}

// SeedRooms upserts one hotel's rooms in catalog order. The hotel row must
// already exist.
func (s *SeedService) SeedRooms(ctx context.Context, id string) error {
	hotel, err := s.hotel(id)
	if err != nil {
		return err
	}
	for _, r := range s.src.Rooms {
		if r.HotelID != id {
			continue
		}
		if err := s.dst.UpsertRoom(ctx, r); err != nil {
			return fmt.Errorf("upsert room %s: %w", r.ID, err)
		}
	}
	if s.catalog != nil {
		s.catalog.Invalidate(ctx, hotel)
	}
	return nil
}

func (s *SeedService) SeedHotel(ctx context.Context, id string) error {
	hotel, err := s.hotel(id)
	if err != nil {
		return err
	}
	// Parent upsert first to satisfy the rooms FK.
	if err := s.dst.UpsertHotel(ctx, hotel); err != nil {
		return fmt.Errorf("upsert hotel %s: %w", id, err)
	}
	return s.SeedRooms(ctx, id)
}
