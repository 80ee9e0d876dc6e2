package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"readiness/internal/model"
)

// PersonaCache tracks how completed sessions distribute over personas, one ZSET per assessment type
type PersonaCache interface {
	Increment(ctx context.Context, t model.AssessmentType, persona model.PersonaType) error
	Distribution(ctx context.Context, t model.AssessmentType) (*model.PersonaDistribution, error)
}

type personaCache struct {
	client *redis.Client
}

// NewPersonaCache creates a new persona distribution cache
func NewPersonaCache(client *redis.Client) PersonaCache {
	return &personaCache{
		client: client,
	}
}

func (c *personaCache) key(t model.AssessmentType) string {
	return fmt.Sprintf("assessment:%s:personas", t)
}

func (c *personaCache) Increment(ctx context.Context, t model.AssessmentType, persona model.PersonaType) error {
	return c.client.ZIncrBy(ctx, c.key(t), 1, string(persona)).Err()
}

// Distribution returns personas ordered by count, most frequent first
func (c *personaCache) Distribution(ctx context.Context, t model.AssessmentType) (*model.PersonaDistribution, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(t), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	dist := &model.PersonaDistribution{
		AssessmentType: t,
		Personas:       make([]model.PersonaCount, len(results)),
	}
	for i, z := range results {
		count := int(z.Score)
		dist.Personas[i] = model.PersonaCount{
			Persona: model.PersonaType(z.Member.(string)),
			Count:   count,
		}
		dist.Total += count
	}
	if dist.Total > 0 {
		for i := range dist.Personas {
			dist.Personas[i].Share = float64(dist.Personas[i].Count) / float64(dist.Total)
		}
	}
	return dist, nil
}
