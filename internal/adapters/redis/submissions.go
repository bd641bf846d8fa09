package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"checkin_syria/internal/domain"
)

// Submissions stores booking flow state as JSON under "submission:<id>".
type Submissions struct{ c *redis.Client }

func NewSubmissions(c *redis.Client) *Submissions { return &Submissions{c: c} }

func submissionKey(id string) string { return "submission:" + id }

func (s *Submissions) Save(ctx context.Context, sub domain.Submission, ttl time.Duration) error {
	b, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission %s: %w", sub.ID, err)
	}
	return s.c.Set(ctx, submissionKey(sub.ID), b, ttl).Err()
}

func (s *Submissions) Load(ctx context.Context, id string) (domain.Submission, error) {
	b, err := s.c.Get(ctx, submissionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Submission{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Submission{}, err
	}
	var sub domain.Submission
	if err := json.Unmarshal(b, &sub); err != nil {
		return domain.Submission{}, fmt.Errorf("decode submission %s: %w", id, err)
	}
	return sub, nil
}
