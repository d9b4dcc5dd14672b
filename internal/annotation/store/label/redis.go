package label

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"swipetree/internal/annotation/models"
	"swipetree/pkg/platform/sentinel"
)

var (
	redisOpDurationMs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swipetree_label_redis_duration_ms",
		Help:    "Latency of Redis label operations in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	}, []string{"op"})
)

const (
	// Redis key prefix for labels
	labelKeyPrefix = "label:"
)

// Redis stores each label as a JSON document under label:<id>.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed label store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func observe(op string, start time.Time) {
	redisOpDurationMs.WithLabelValues(op).Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}

// FindByID returns the label for id or sentinel.ErrNotFound.
func (s *Redis) FindByID(ctx context.Context, id string) (*models.Label, error) {
	defer observe("get", time.Now())

	raw, err := s.client.Get(ctx, labelKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("label %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get label %s: %w: %w", id, sentinel.ErrUnavailable, err)
	}
	var l models.Label
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("decode label %s: %w", id, err)
	}
	return &l, nil
}

// FindMany fetches all ids with one MGET. Missing ids are skipped.
func (s *Redis) FindMany(ctx context.Context, ids []string) (map[string]models.Label, error) {
	defer observe("mget", time.Now())

	out := make(map[string]models.Label, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = labelKeyPrefix + id
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget labels: %w: %w", sentinel.ErrUnavailable, err)
	}
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var l models.Label
		if err := json.Unmarshal([]byte(str), &l); err != nil {
			return nil, fmt.Errorf("decode label %s: %w", ids[i], err)
		}
		out[ids[i]] = l
	}
	return out, nil
}

// Upsert writes the label without expiry.
func (s *Redis) Upsert(ctx context.Context, l *models.Label) error {
	defer observe("set", time.Now())

	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode label %s: %w", l.ID, err)
	}
	if err := s.client.Set(ctx, labelKeyPrefix+l.ID, raw, 0).Err(); err != nil {
		return fmt.Errorf("set label %s: %w: %w", l.ID, sentinel.ErrUnavailable, err)
	}
	return nil
}
