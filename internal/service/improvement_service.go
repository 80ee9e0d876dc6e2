package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"readiness/internal/cache"
	"readiness/internal/model"
	"readiness/internal/repository"
)

const (
	defaultVariantCacheSize = 64
	defaultVariantCacheTTL  = 5 * time.Minute
)

type variantEntry struct {
	variants []*model.Variant
	storedAt time.Time
}

// ImprovementService runs A/B variants per assessment type and collects completion feedback
type ImprovementService struct {
	variantRepo repository.VariantRepo
	eventRepo   repository.EventRepo
	cache       cache.ImprovementCache
	logger      *slog.Logger
	variants    *lru.Cache[model.AssessmentType, variantEntry]
	ttl         time.Duration
	now         func() time.Time
}

// NewImprovementService creates a new improvement service. Active variants are
// kept in process for ttl; size bounds the number of assessment types cached.
func NewImprovementService(
	variantRepo repository.VariantRepo,
	eventRepo repository.EventRepo,
	improvementCache cache.ImprovementCache,
	size int,
	ttl time.Duration,
	logger *slog.Logger,
) (*ImprovementService, error) {
	if size <= 0 {
		size = defaultVariantCacheSize
	}
	if ttl <= 0 {
		ttl = defaultVariantCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	variants, err := lru.New[model.AssessmentType, variantEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create variant cache: %w", err)
	}
	return &ImprovementService{
		variantRepo: variantRepo,
		eventRepo:   eventRepo,
		cache:       improvementCache,
		logger:      logger,
		variants:    variants,
		ttl:         ttl,
		now:         time.Now,
	}, nil
}

// activeVariants returns the active variants of t, served from the LRU while fresh
func (s *ImprovementService) activeVariants(ctx context.Context, t model.AssessmentType) ([]*model.Variant, error) {
	entry, ok := s.variants.Get(t)
	if ok && s.now().Sub(entry.storedAt) < s.ttl {
		return entry.variants, nil
	}

	variants, err := s.variantRepo.ListByType(ctx, t, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}

	s.variants.Add(t, variantEntry{variants: variants, storedAt: s.now()})
	return variants, nil
}

// Invalidate drops the cached variants of t
func (s *ImprovementService) Invalidate(t model.AssessmentType) {
	s.variants.Remove(t)
}

// Assign pins key (a user id, or the session id for anonymous respondents) to a
// variant of t and counts the start. It returns nil when t has no active variants.
func (s *ImprovementService) Assign(ctx context.Context, t model.AssessmentType, key string) (*model.VariantAssignment, *model.Variant, error) {
	variants, err := s.activeVariants(ctx, t)
	if err != nil {
		return nil, nil, err
	}
	if len(variants) == 0 {
		return nil, nil, nil
	}

	var chosen *model.Variant
	existing, err := s.cache.GetAssignment(ctx, t, key)
	if err != nil {
		s.logger.Warn("failed to read variant assignment", "type", t, "error", err)
	}
	if existing != nil {
		chosen = findVariant(variants, existing.VariantID)
	}
	if chosen == nil {
		chosen = pickVariant(variants, string(t)+":"+key)
	}

	assignment := &model.VariantAssignment{
		VariantID:      chosen.ID,
		Name:           chosen.Name,
		AssessmentType: t,
	}
	if existing == nil || existing.VariantID != chosen.ID {
		if err := s.cache.SetAssignment(ctx, key, assignment); err != nil {
			s.logger.Warn("failed to store variant assignment", "type", t, "error", err)
		}
	}
	if err := s.cache.Increment(ctx, t, chosen.ID, cache.CounterStarted); err != nil {
		s.logger.Warn("failed to count variant start", "variant", chosen.ID, "error", err)
	}
	return assignment, chosen, nil
}

// Variant returns an active variant of t by id, nil if it is unknown or inactive
func (s *ImprovementService) Variant(ctx context.Context, t model.AssessmentType, id string) (*model.Variant, error) {
	if id == "" {
		return nil, nil
	}
	variants, err := s.activeVariants(ctx, t)
	if err != nil {
		return nil, err
	}
	return findVariant(variants, id), nil
}

// Variants lists every variant of t, including inactive ones
func (s *ImprovementService) Variants(ctx context.Context, t model.AssessmentType) ([]*model.Variant, error) {
	variants, err := s.variantRepo.ListByType(ctx, t, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	return variants, nil
}

// RecordCompletion stores the completion event and bumps the variant counter
func (s *ImprovementService) RecordCompletion(ctx context.Context, event *model.CompletionEvent) error {
	if err := s.eventRepo.Insert(ctx, event); err != nil {
		return fmt.Errorf("failed to store completion event: %w", err)
	}
	if event.VariantID == "" {
		return nil
	}
	return s.cache.Increment(ctx, event.AssessmentType, event.VariantID, cache.CounterCompleted)
}

// RecordAbandon bumps the abandoned counter of a variant
func (s *ImprovementService) RecordAbandon(ctx context.Context, t model.AssessmentType, variantID string) error {
	if variantID == "" {
		return nil
	}
	return s.cache.Increment(ctx, t, variantID, cache.CounterAbandoned)
}

// Stats returns the counters of every variant of t
func (s *ImprovementService) Stats(ctx context.Context, t model.AssessmentType) ([]model.VariantStats, error) {
	variants, err := s.Variants(ctx, t)
	if err != nil {
		return nil, err
	}

	stats := make([]model.VariantStats, 0, len(variants))
	for _, v := range variants {
		counters, err := s.cache.Counters(ctx, t, v.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read counters for %s: %w", v.ID, err)
		}
		st := model.VariantStats{
			VariantID: v.ID,
			Name:      v.Name,
			Started:   counters[cache.CounterStarted],
			Completed: counters[cache.CounterCompleted],
			Abandoned: counters[cache.CounterAbandoned],
		}
		if st.Started > 0 {
			st.CompletionRate = float64(st.Completed) / float64(st.Started)
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func findVariant(variants []*model.Variant, id string) *model.Variant {
	for _, v := range variants {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// pickVariant maps key onto the cumulative weights. Non-positive weights never
// win unless every weight is non-positive, in which case variants share equally.
// Weights above model.MaxVariantWeight count as the maximum.
func pickVariant(variants []*model.Variant, key string) *model.Variant {
	var total uint64
	for _, v := range variants {
		total += variantWeight(v)
	}

	h := fnv.New32a()
	h.Write([]byte(key))
	sum := uint64(h.Sum32())

	if total == 0 {
		return variants[sum%uint64(len(variants))]
	}
	point := sum % total
	for _, v := range variants {
		w := variantWeight(v)
		if w == 0 {
			continue
		}
		if point < w {
			return v
		}
		point -= w
	}
	return variants[len(variants)-1]
}

func variantWeight(v *model.Variant) uint64 {
	switch {
	case v.Weight <= 0:
		return 0
	case v.Weight > model.MaxVariantWeight:
		return model.MaxVariantWeight
	default:
		return uint64(v.Weight)
	}
}
