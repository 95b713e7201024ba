package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const driftQueueKey = "greenstamp:drift:queue"

// DriftRef marks an entity whose aggregate counters may have drifted
// because a bump failed after the proof row committed.
type DriftRef struct {
	Kind string `json:"kind"` // user, ngo, category
	ID   string `json:"id"`
}

// DriftService queues aggregate-counter drift markers in redis for the
// reconciliation job to pick up.
type DriftService struct {
	rdb *redis.Client
}

func NewDriftService(redisClient *redis.Client) *DriftService {
	return &DriftService{
		rdb: redisClient,
	}
}

func (s *DriftService) Enqueue(ctx context.Context, ref DriftRef) error {

	jsonstr, err := json.Marshal(ref)
	if err != nil {
		return err
	}

	err = s.rdb.LPush(ctx, driftQueueKey, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Drain removes and returns every queued drift marker.
func (s *DriftService) Drain(ctx context.Context) ([]DriftRef, error) {
	var refs []DriftRef
	for {
		raw, err := s.rdb.RPop(ctx, driftQueueKey).Result()
		if err == redis.Nil {
			return refs, nil
		}
		if err != nil {
			return refs, err
		}

		var ref DriftRef
		if err := json.Unmarshal([]byte(raw), &ref); err != nil {
			continue
		}
		refs = append(refs, ref)
	}
}
