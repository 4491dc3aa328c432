package redis

import (
	"context"
	"fmt"

	"novusarc/placement/internal/metrics"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "seq:"

// SequenceRepo allocates with INCR, which creates missing keys at 1.
type SequenceRepo struct {
	client goredis.Cmdable
}

func NewSequenceRepo(client goredis.Cmdable) *SequenceRepo {
	return &SequenceRepo{client: client}
}

func (r *SequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	n, err := r.client.Incr(ctx, keyPrefix+name).Result()
	if err != nil {
		metrics.SequenceAllocations.WithLabelValues("redis", "error").Inc()
		return 0, fmt.Errorf("next %s: %w", name, err)
	}
	metrics.SequenceAllocations.WithLabelValues("redis", "ok").Inc()
	return n, nil
}
