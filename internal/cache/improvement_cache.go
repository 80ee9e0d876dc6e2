package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"readiness/internal/model"
)

// Variant counter fields
const (
	CounterStarted   = "started"
	CounterCompleted = "completed"
	CounterAbandoned = "abandoned"
)

// ImprovementCache holds variant assignments per user and live counters per variant
type ImprovementCache interface {
	SetAssignment(ctx context.Context, userID string, assignment *model.VariantAssignment) error
	GetAssignment(ctx context.Context, t model.AssessmentType, userID string) (*model.VariantAssignment, error)
	Increment(ctx context.Context, t model.AssessmentType, variantID, counter string) error
	Counters(ctx context.Context, t model.AssessmentType, variantID string) (map[string]int64, error)
}

type improvementCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewImprovementCache creates a cache whose assignments expire after ttl. Counters never expire.
func NewImprovementCache(client *redis.Client, ttl time.Duration) ImprovementCache {
	return &improvementCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *improvementCache) assignmentKey(t model.AssessmentType, userID string) string {
	return fmt.Sprintf("variant:%s:user:%s", t, userID)
}

func (c *improvementCache) countersKey(t model.AssessmentType, variantID string) string {
	return fmt.Sprintf("variant:%s:%s:stats", t, variantID)
}

func (c *improvementCache) SetAssignment(ctx context.Context, userID string, assignment *model.VariantAssignment) error {
	data, err := json.Marshal(assignment)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.assignmentKey(assignment.AssessmentType, userID), data, c.ttl).Err()
}

func (c *improvementCache) GetAssignment(ctx context.Context, t model.AssessmentType, userID string) (*model.VariantAssignment, error) {
	data, err := c.client.Get(ctx, c.assignmentKey(t, userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var assignment model.VariantAssignment
	if err := json.Unmarshal([]byte(data), &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (c *improvementCache) Increment(ctx context.Context, t model.AssessmentType, variantID, counter string) error {
	return c.client.HIncrBy(ctx, c.countersKey(t, variantID), counter, 1).Err()
}

// Counters returns all counters of a variant; missing counters read as zero
func (c *improvementCache) Counters(ctx context.Context, t model.AssessmentType, variantID string) (map[string]int64, error) {
	raw, err := c.client.HGetAll(ctx, c.countersKey(t, variantID)).Result()
	if err != nil {
		return nil, err
	}
	counters := map[string]int64{
		CounterStarted:   0,
		CounterCompleted: 0,
		CounterAbandoned: 0,
	}
	for field, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("counter %s: %w", field, err)
		}
		counters[field] = n
	}
	return counters, nil
}
