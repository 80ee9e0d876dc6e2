package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness/internal/model"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSessionCache(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewSessionCache(client, time.Hour)
	ctx := context.Background()

	got, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	session := model.NewSession("session-1", "user-1", model.AssessmentScenarioBased, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	session, err = session.WithResponse(model.AssessmentResponse{
		QuestionID:    "sc_001",
		QuestionType:  model.QuestionScenarioSelection,
		ResponseValue: model.ResponseValue{Text: "Commission a study", Selection: &model.ChoiceSelection{ChoiceID: "a", PersonaAlignment: []model.PersonaType{model.PersonaArchitect}}},
	}, "")
	require.NoError(t, err)
	record := &model.SessionRecord{Session: session, UserContext: model.UserContext{Industry: "finance"}, VariantID: "v-1"}

	require.NoError(t, c.Set(ctx, record))
	assert.True(t, mr.Exists("assessment:session:session-1"))
	assert.Equal(t, time.Hour, mr.TTL("assessment:session:session-1"))

	got, err = c.Get(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "session-1", got.ID)
	assert.Equal(t, "v-1", got.VariantID)
	assert.Equal(t, "finance", got.UserContext.Industry)
	require.Len(t, got.Session.Responses, 1)
	assert.Equal(t, "a", got.Session.Responses[0].ResponseValue.Selection.ChoiceID)

	mr.FastForward(2 * time.Hour)
	got, err = c.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, got, "entry should expire")

	require.NoError(t, c.Set(ctx, record))
	require.NoError(t, c.Delete(ctx, "session-1"))
	assert.False(t, mr.Exists("assessment:session:session-1"))
}

func TestSessionCache_CorruptEntry(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewSessionCache(client, time.Hour)
	require.NoError(t, mr.Set("assessment:session:bad", "{not json"))

	_, err := c.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestPersonaCache(t *testing.T) {
	_, client := newTestClient(t)
	c := NewPersonaCache(client)
	ctx := context.Background()

	dist, err := c.Distribution(ctx, model.AssessmentQuestionnaire)
	require.NoError(t, err)
	assert.Zero(t, dist.Total)
	assert.Empty(t, dist.Personas)

	for _, p := range []model.PersonaType{model.PersonaArchitect, model.PersonaExplorer, model.PersonaArchitect, model.PersonaArchitect} {
		require.NoError(t, c.Increment(ctx, model.AssessmentQuestionnaire, p))
	}
	require.NoError(t, c.Increment(ctx, model.AssessmentVisualPattern, model.PersonaObserver))

	dist, err = c.Distribution(ctx, model.AssessmentQuestionnaire)
	require.NoError(t, err)
	assert.Equal(t, 4, dist.Total)
	assert.Equal(t, []model.PersonaCount{
		{Persona: model.PersonaArchitect, Count: 3, Share: 0.75},
		{Persona: model.PersonaExplorer, Count: 1, Share: 0.25},
	}, dist.Personas)
}

func TestImprovementCache(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewImprovementCache(client, 24*time.Hour)
	ctx := context.Background()

	got, err := c.GetAssignment(ctx, model.AssessmentQuestionnaire, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	assignment := &model.VariantAssignment{VariantID: "v-2", Name: "plain-language", AssessmentType: model.AssessmentQuestionnaire}
	require.NoError(t, c.SetAssignment(ctx, "user-1", assignment))
	assert.Equal(t, 24*time.Hour, mr.TTL("variant:questionnaire:user:user-1"))

	got, err = c.GetAssignment(ctx, model.AssessmentQuestionnaire, "user-1")
	require.NoError(t, err)
	assert.Equal(t, assignment, got)

	counters, err := c.Counters(ctx, model.AssessmentQuestionnaire, "v-2")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{CounterStarted: 0, CounterCompleted: 0, CounterAbandoned: 0}, counters)

	require.NoError(t, c.Increment(ctx, model.AssessmentQuestionnaire, "v-2", CounterStarted))
	require.NoError(t, c.Increment(ctx, model.AssessmentQuestionnaire, "v-2", CounterStarted))
	require.NoError(t, c.Increment(ctx, model.AssessmentQuestionnaire, "v-2", CounterCompleted))

	counters, err = c.Counters(ctx, model.AssessmentQuestionnaire, "v-2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counters[CounterStarted])
	assert.Equal(t, int64(1), counters[CounterCompleted])
	assert.Zero(t, counters[CounterAbandoned])
	assert.False(t, mr.Exists("variant:questionnaire:v-1:stats"))
}
