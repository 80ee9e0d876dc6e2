package service

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness/internal/cache"
	"readiness/internal/model"
)

func testVariants() []*model.Variant {
	return []*model.Variant{
		{ID: "v-control", AssessmentType: model.AssessmentQuestionnaire, Name: "control", Weight: 3, Active: true},
		{ID: "v-plain", AssessmentType: model.AssessmentQuestionnaire, Name: "plain-language", Weight: 1, Active: true},
		{ID: "v-off", AssessmentType: model.AssessmentQuestionnaire, Name: "retired", Weight: 5, Active: false},
		{ID: "v-zero", AssessmentType: model.AssessmentQuestionnaire, Name: "paused", Weight: 0, Active: true},
	}
}

func newImprovement(repo *fakeVariantRepo) (*ImprovementService, *fakeImprovementCache, *fakeEventRepo) {
	c := newFakeImprovementCache()
	events := &fakeEventRepo{}
	svc, err := NewImprovementService(repo, events, c, 4, time.Minute, discardLogger())
	if err != nil {
		panic(err)
	}
	return svc, c, events
}

func TestPickVariant(t *testing.T) {
	variants := testVariants()
	active := []*model.Variant{variants[0], variants[1], variants[3]}

	counts := map[string]int{}
	for i := 0; i < 400; i++ {
		key := fmt.Sprintf("questionnaire:user-%d", i)
		v := pickVariant(active, key)
		assert.Same(t, v, pickVariant(active, key), "assignment is deterministic")
		counts[v.ID]++
	}
	assert.Zero(t, counts["v-zero"])
	assert.Greater(t, counts["v-control"], counts["v-plain"])

	unweighted := []*model.Variant{{ID: "a"}, {ID: "b"}}
	assert.NotNil(t, pickVariant(unweighted, "anything"))
}

func TestPickVariant_HugeWeights(t *testing.T) {
	huge := []*model.Variant{
		{ID: "a", Weight: math.MaxInt},
		{ID: "b", Weight: math.MaxInt},
		{ID: "c", Weight: math.MaxInt},
	}

	counts := map[string]int{}
	for i := 0; i < 300; i++ {
		key := fmt.Sprintf("visual_pattern:user-%d", i)
		v := pickVariant(huge, key)
		require.NotNil(t, v)
		assert.Same(t, v, pickVariant(huge, key))
		counts[v.ID]++
	}
	assert.Len(t, counts, 3, "oversized weights are capped, so every variant still wins some keys")
	assert.Equal(t, uint64(model.MaxVariantWeight), variantWeight(huge[0]))
}

func TestNewImprovementService_DefaultsCacheSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		svc, err := NewImprovementService(&fakeVariantRepo{variants: testVariants()}, &fakeEventRepo{}, newFakeImprovementCache(), size, 0, nil)
		require.NoError(t, err)

		_, variant, err := svc.Assign(context.Background(), model.AssessmentQuestionnaire, "user-1")
		require.NoError(t, err)
		require.NotNil(t, variant)
	}
}

func TestImprovementService_Assign(t *testing.T) {
	ctx := context.Background()
	repo := &fakeVariantRepo{variants: testVariants()}
	svc, counters, _ := newImprovement(repo)

	first, variant, err := svc.Assign(ctx, model.AssessmentQuestionnaire, "user-1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, variant.ID, first.VariantID)
	assert.Contains(t, []string{"v-control", "v-plain"}, first.VariantID)

	again, _, err := svc.Assign(ctx, model.AssessmentQuestionnaire, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, int64(2), counters.counters["questionnaire/"+first.VariantID][cache.CounterStarted])

	// a stored assignment wins over the hash while its variant is active
	require.NoError(t, counters.SetAssignment(ctx, "user-2", &model.VariantAssignment{VariantID: "v-plain", AssessmentType: model.AssessmentQuestionnaire}))
	pinned, _, err := svc.Assign(ctx, model.AssessmentQuestionnaire, "user-2")
	require.NoError(t, err)
	assert.Equal(t, "v-plain", pinned.VariantID)

	require.NoError(t, counters.SetAssignment(ctx, "user-3", &model.VariantAssignment{VariantID: "v-off", AssessmentType: model.AssessmentQuestionnaire}))
	moved, _, err := svc.Assign(ctx, model.AssessmentQuestionnaire, "user-3")
	require.NoError(t, err)
	assert.NotEqual(t, "v-off", moved.VariantID)

	none, v, err := svc.Assign(ctx, model.AssessmentBehavioral, "user-1")
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.Nil(t, v)
}

func TestImprovementService_CachesActiveVariants(t *testing.T) {
	ctx := context.Background()
	repo := &fakeVariantRepo{variants: testVariants()}
	svc, _, _ := newImprovement(repo)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		_, err := svc.Variant(ctx, model.AssessmentQuestionnaire, "v-control")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.lists)

	now = now.Add(2 * time.Minute)
	v, err := svc.Variant(ctx, model.AssessmentQuestionnaire, "v-control")
	require.NoError(t, err)
	assert.Equal(t, "control", v.Name)
	assert.Equal(t, 2, repo.lists)

	svc.Invalidate(model.AssessmentQuestionnaire)
	v, err = svc.Variant(ctx, model.AssessmentQuestionnaire, "v-off")
	require.NoError(t, err)
	assert.Nil(t, v, "inactive variants are not served")
	assert.Equal(t, 3, repo.lists)
}

func TestImprovementService_Stats(t *testing.T) {
	ctx := context.Background()
	repo := &fakeVariantRepo{variants: testVariants()}
	svc, counters, events := newImprovement(repo)

	for i := 0; i < 4; i++ {
		require.NoError(t, counters.Increment(ctx, model.AssessmentQuestionnaire, "v-control", cache.CounterStarted))
	}
	require.NoError(t, svc.RecordCompletion(ctx, &model.CompletionEvent{
		SessionID:      "session-1",
		AssessmentType: model.AssessmentQuestionnaire,
		VariantID:      "v-control",
		Persona:        model.PersonaCatalyst,
	}))
	require.NoError(t, svc.RecordAbandon(ctx, model.AssessmentQuestionnaire, "v-control"))
	require.NoError(t, svc.RecordAbandon(ctx, model.AssessmentQuestionnaire, ""))
	assert.Len(t, events.events, 1)

	stats, err := svc.Stats(ctx, model.AssessmentQuestionnaire)
	require.NoError(t, err)
	require.Len(t, stats, 4, "inactive variants still report")
	assert.Equal(t, model.VariantStats{
		VariantID:      "v-control",
		Name:           "control",
		Started:        4,
		Completed:      1,
		Abandoned:      1,
		CompletionRate: 0.25,
	}, stats[0])
	assert.Zero(t, stats[1].CompletionRate)
}
