package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"readiness/internal/model"
)

var started = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// toDoc round-trips v through BSON so it can be served as a mock cursor batch
func toDoc(t *testing.T, v interface{}) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func sampleRecord() *model.SessionRecord {
	session := model.NewSession("session-1", "user-1", model.AssessmentQuestionnaire, started)
	session, _ = session.WithResponse(model.AssessmentResponse{
		QuestionID:    "sa_001",
		QuestionType:  model.QuestionMultipleChoice,
		ResponseValue: model.TextValue("I make final strategic decisions for my organization"),
	}, "kenyan")
	return &model.SessionRecord{
		Session:     session,
		UserContext: model.UserContext{UserID: "user-1", Industry: "technology", CulturalContext: []string{"kenyan"}},
		VariantID:   "variant-a",
	}
}

func TestSessionRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create keys record by session id", func(mt *mtest.T) {
		repo := NewSessionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		record := sampleRecord()
		require.NoError(t, repo.Create(ctx, record))
		assert.Equal(t, "session-1", record.ID)
		assert.False(t, record.UpdatedAt.IsZero())

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		assert.Equal(t, "insert", evt.CommandName)
		assert.Equal(t, "session-1", evt.Command.Lookup("documents", "0", "_id").StringValue())
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewSessionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := repo.Create(ctx, sampleRecord())
		assert.ErrorIs(t, err, ErrDuplicateSession)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewSessionRepo(mt.DB)
		stored := sampleRecord()
		stored.ID = stored.Session.ID
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "readiness.sessions", mtest.FirstBatch, toDoc(t, stored)))

		got, err := repo.GetByID(ctx, "session-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "session-1", got.Session.ID)
		assert.Equal(t, 1, got.Session.CurrentQuestionIndex)
		assert.Equal(t, "variant-a", got.VariantID)
		assert.Equal(t, "technology", got.UserContext.Industry)
		assert.Equal(t, []string{"kenyan"}, got.Session.CulturalAdaptations)
		require.Len(t, got.Session.Responses, 1)
		assert.Equal(t, "sa_001", got.Session.Responses[0].QuestionID)
		assert.Equal(t, "I make final strategic decisions for my organization", got.Session.Responses[0].ResponseValue.Text)
		assert.True(t, started.Equal(got.Session.StartTime))
	})

	mt.Run("get missing returns nil", func(mt *mtest.T) {
		repo := NewSessionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "readiness.sessions", mtest.FirstBatch))

		got, err := repo.GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	mt.Run("update filters on expected index", func(mt *mtest.T) {
		repo := NewSessionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(t, repo.Update(ctx, sampleRecord(), 0))

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		assert.Equal(t, "update", evt.CommandName)
		filter := evt.Command.Lookup("updates", "0", "q")
		assert.Equal(t, "session-1", filter.Document().Lookup("_id").StringValue())
		assert.Equal(t, int32(0), filter.Document().Lookup("session.currentQuestionIndex").Int32())
		assert.Equal(t, string(model.SessionInProgress), filter.Document().Lookup("session.status").StringValue())
	})

	mt.Run("update detects concurrent change", func(mt *mtest.T) {
		repo := NewSessionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(ctx, sampleRecord(), 0)
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
	})

	mt.Run("list by user", func(mt *mtest.T) {
		repo := NewSessionRepo(mt.DB)
		first, second := sampleRecord(), sampleRecord()
		second.Session.ID = "session-2"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "readiness.sessions", mtest.FirstBatch, toDoc(t, first), toDoc(t, second)))

		got, err := repo.ListByUser(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "session-2", got[1].Session.ID)
	})
}

func TestResultRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	result := &model.AssessmentResult{
		SessionID:      "session-1",
		UserID:         "user-1",
		AssessmentType: model.AssessmentScenarioBased,
		Prediction: model.PersonaPrediction{
			Persona:    model.PersonaArchitect,
			Confidence: 0.8,
			Scores:     map[model.PersonaType]float64{model.PersonaArchitect: 4, model.PersonaCatalyst: 1},
		},
		QuestionCount:   5,
		DurationMinutes: 7,
		CompletedAt:     started.Add(7 * time.Minute),
	}

	mt.Run("save upserts", func(mt *mtest.T) {
		repo := NewResultRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(t, repo.Save(ctx, result))

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		assert.True(t, evt.Command.Lookup("updates", "0", "upsert").Boolean())
	})

	mt.Run("get by session", func(mt *mtest.T) {
		repo := NewResultRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "readiness.results", mtest.FirstBatch, toDoc(t, result)))

		got, err := repo.GetBySessionID(ctx, "session-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.PersonaArchitect, got.Prediction.Persona)
		assert.Equal(t, 4.0, got.Prediction.Scores[model.PersonaArchitect])
		assert.Equal(t, 5, got.QuestionCount)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := NewResultRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "readiness.results", mtest.FirstBatch))

		got, err := repo.GetBySessionID(ctx, "session-9")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	mt.Run("list by user propagates errors", func(mt *mtest.T) {
		repo := NewResultRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query", Name: "BadValue"}))

		_, err := repo.ListByUser(ctx, "user-1")
		assert.Error(t, err)
	})
}

func TestVariantRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("upsert assigns id", func(mt *mtest.T) {
		repo := NewVariantRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		variant := &model.Variant{AssessmentType: model.AssessmentQuestionnaire, Name: "control", Weight: 1, Active: true}
		id, err := repo.Upsert(ctx, variant)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, variant.ID)
		assert.False(t, variant.CreatedAt.IsZero())
	})

	mt.Run("list active by type", func(mt *mtest.T) {
		repo := NewVariantRepo(mt.DB)
		control := model.Variant{ID: "v-1", AssessmentType: model.AssessmentQuestionnaire, Name: "control", Weight: 1, Active: true, CreatedAt: started}
		plain := model.Variant{
			ID: "v-2", AssessmentType: model.AssessmentQuestionnaire, Name: "plain-language", Weight: 1, Active: true, CreatedAt: started.Add(time.Hour),
			TextOverrides: map[string]string{"sa_001": "Who makes the big calls where you work?"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "readiness.variants", mtest.FirstBatch, toDoc(t, control), toDoc(t, plain)))

		got, err := repo.ListByType(ctx, model.AssessmentQuestionnaire, true)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "control", got[0].Name)
		assert.Equal(t, "Who makes the big calls where you work?", got[1].TextOverrides["sa_001"])

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		assert.True(t, evt.Command.Lookup("filter", "active").Boolean())
	})
}

func TestEventRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert assigns id", func(mt *mtest.T) {
		repo := NewEventRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		event := &model.CompletionEvent{SessionID: "session-1", AssessmentType: model.AssessmentVisualPattern, Persona: model.PersonaExplorer}
		require.NoError(t, repo.Insert(ctx, event))
		assert.NotEmpty(t, event.ID)
	})

	mt.Run("list applies limit", func(mt *mtest.T) {
		repo := NewEventRepo(mt.DB)
		event := model.CompletionEvent{ID: "e-1", SessionID: "session-1", AssessmentType: model.AssessmentVisualPattern, Persona: model.PersonaExplorer, CompletedAt: started}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "readiness.completion_events", mtest.FirstBatch, toDoc(t, event)))

		got, err := repo.ListByType(ctx, model.AssessmentVisualPattern, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.PersonaExplorer, got[0].Persona)

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		assert.Equal(t, int64(10), evt.Command.Lookup("limit").Int64())
	})
}
