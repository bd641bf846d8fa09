package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"checkin_syria/internal/domain"
)

func valJSON(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	imgs, err := valJSON(h.Images)
	if err != nil {
		return err
	}
	amen, err := valJSON(h.Amenities)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID, h.Name, h.Description, h.Location, h.Price, h.Rating, imgs, amen,
	)
	return err
}

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	imgs, err := valJSON(rm.Images)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertRoomSQL,
		rm.ID, rm.HotelID, rm.Name, rm.Description, rm.Price, rm.Capacity, rm.Available, imgs,
	)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHotel(s scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var imgs, amen []byte
	if err := s.Scan(&h.ID, &h.Name, &h.Description, &h.Location, &h.Price, &h.Rating, &imgs, &amen); err != nil {
		return domain.Hotel{}, err
	}
	if err := json.Unmarshal(imgs, &h.Images); err != nil {
		return domain.Hotel{}, fmt.Errorf("hotel %s images: %w", h.ID, err)
	}
	if err := json.Unmarshal(amen, &h.Amenities); err != nil {
		return domain.Hotel{}, fmt.Errorf("hotel %s amenities: %w", h.ID, err)
	}
	return h, nil
}

func scanRoom(s scanner) (domain.Room, error) {
	var rm domain.Room
	var imgs []byte
	if err := s.Scan(&rm.ID, &rm.HotelID, &rm.Name, &rm.Description, &rm.Price, &rm.Capacity, &rm.Available, &imgs); err != nil {
		return domain.Room{}, err
	}
	if err := json.Unmarshal(imgs, &rm.Images); err != nil {
		return domain.Room{}, fmt.Errorf("room %s images: %w", rm.ID, err)
	}
	return rm, nil
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	owned, err := r.roomIDs(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		h.Rooms = owned[h.ID]
		if h.Rooms == nil {
			h.Rooms = []string{}
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	rows, err := r.db.QueryContext(ctx, roomIDsByHotelSQL, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	defer rows.Close()
	h.Rooms = []string{}
	for rows.Next() {
		var rid string
		if err := rows.Scan(&rid); err != nil {
			return domain.Hotel{}, err
		}
		h.Rooms = append(h.Rooms, rid)
	}
	return h, rows.Err()
}

func (r *Repo) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, getRoomSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Room{}, domain.ErrNotFound
		}
		return domain.Room{}, err
	}
	return rm, nil
}

func (r *Repo) ListRoomsByHotel(ctx context.Context, hotelID string) ([]domain.Room, error) {
	return r.queryRooms(ctx, listRoomsByHotelSQL, hotelID)
}

func (r *Repo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return r.queryRooms(ctx, listRoomsSQL)
}

func (r *Repo) queryRooms(ctx context.Context, q string, args ...any) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) roomIDs(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, roomIDsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string][]string{}
	for rows.Next() {
		var hid, rid string
		if err := rows.Scan(&hid, &rid); err != nil {
			return nil, err
		}
		out[hid] = append(out[hid], rid)
	}
	return out, rows.Err()
}
