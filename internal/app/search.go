package app

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"checkin_syria/internal/domain"
)

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 500
)

// Criteria is one session's filter state. The zero value is not the
// default; use DefaultCriteria.
type Criteria struct {
	Query     string   `json:"search"`
	MinPrice  float64  `json:"minPrice"`
	MaxPrice  float64  `json:"maxPrice"`
	MinRating *float64 `json:"minRating,omitempty"`
	Locations []string `json:"locations"`
}

func DefaultCriteria() Criteria {
	return Criteria{MinPrice: DefaultMinPrice, MaxPrice: DefaultMaxPrice, Locations: []string{}}
}

// ClearCriteria resets every criterion ("Clear all").
func ClearCriteria() Criteria { return DefaultCriteria() }

// Filter returns the hotels satisfying every active criterion, in input order.
// It recomputes from scratch on each call.
func Filter(hotels []domain.Hotel, c Criteria) []domain.Hotel {
	q := strings.ToLower(c.Query)
	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if q != "" && !matchesText(h, q) {
			continue
		}
		if h.Price < c.MinPrice || h.Price > c.MaxPrice {
			continue
		}
		if c.MinRating != nil && h.Rating < *c.MinRating {
			continue
		}
		if len(c.Locations) > 0 && !slices.Contains(c.Locations, h.Location) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func matchesText(h domain.Hotel, q string) bool {
	return strings.Contains(strings.ToLower(h.Name), q) ||
		strings.Contains(strings.ToLower(h.Location), q) ||
		strings.Contains(strings.ToLower(h.Description), q)
}

// ToggleLocation adds loc to the selection, or removes it when already selected.
// The input slice is left untouched.
func ToggleLocation(selected []string, loc string) []string {
	if slices.Contains(selected, loc) {
		out := make([]string, 0, len(selected))
		for _, s := range selected {
			if s != loc {
				out = append(out, s)
			}
		}
		return out
	}
	out := make([]string, 0, len(selected)+1)
	out = append(out, selected...)
	return append(out, loc)
}

func UniqueLocations(hotels []domain.Hotel) []string {
	seen := make(map[string]struct{}, len(hotels))
	out := []string{}
	for _, h := range hotels {
		if _, ok := seen[h.Location]; ok {
			continue
		}
		seen[h.Location] = struct{}{}
		out = append(out, h.Location)
	}
	return out
}

// ParseCriteria reads criteria from query parameters, starting from the defaults.
// Accepts search (or q), min_price, max_price, min_rating and repeated location.
func ParseCriteria(v url.Values) (Criteria, error) {
	c := DefaultCriteria()
	c.Query = v.Get("search")
	if c.Query == "" {
		c.Query = v.Get("q")
	}

	num := func(key string) (*float64, error) {
		s := strings.TrimSpace(v.Get(key))
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number", domain.ErrBadCriteria, key)
		}
		return &f, nil
	}

	if p, err := num("min_price"); err != nil {
		return Criteria{}, err
	} else if p != nil {
		c.MinPrice = *p
	}
	if p, err := num("max_price"); err != nil {
		return Criteria{}, err
	} else if p != nil {
		c.MaxPrice = *p
	}
	if c.MinPrice > c.MaxPrice {
		return Criteria{}, fmt.Errorf("%w: min_price exceeds max_price", domain.ErrBadCriteria)
	}
	r, err := num("min_rating")
	if err != nil {
		return Criteria{}, err
	}
	if r != nil && *r > 5 {
		return Criteria{}, fmt.Errorf("%w: min_rating must be between 0 and 5", domain.ErrBadCriteria)
	}
	c.MinRating = r

	for _, loc := range v["location"] {
		if loc != "" && !slices.Contains(c.Locations, loc) {
			c.Locations = append(c.Locations, loc)
		}
	}
	return c, nil
}
