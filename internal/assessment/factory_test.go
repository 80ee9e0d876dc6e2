package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness/internal/model"
)

func TestFactory_RecommendAssessmentType(t *testing.T) {
	history := []string{"questionnaire"}
	tests := []struct {
		name string
		uc   model.UserContext
		want model.AssessmentType
	}{
		{"first assessment", model.UserContext{}, model.AssessmentQuestionnaire},
		{"first assessment wins over culture", model.UserContext{CulturalContext: []string{"kenyan"}, Industry: "technology"}, model.AssessmentQuestionnaire},
		{"kenyan", model.UserContext{AssessmentHistory: history, CulturalContext: []string{"Kenyan"}}, model.AssessmentScenarioBased},
		{"east african", model.UserContext{AssessmentHistory: history, CulturalContext: []string{"urban", "east_african_coastal"}}, model.AssessmentScenarioBased},
		{"culture wins over industry", model.UserContext{AssessmentHistory: history, CulturalContext: []string{"kenyan"}, Industry: "technology"}, model.AssessmentScenarioBased},
		{"technology", model.UserContext{AssessmentHistory: history, Industry: "Technology"}, model.AssessmentVisualPattern},
		{"fallback", model.UserContext{AssessmentHistory: history, Industry: "finance"}, model.AssessmentQuestionnaire},
	}
	f := NewFactory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.RecommendAssessmentType(tt.uc))
		})
	}
}

func TestFactory_CreateAssessment(t *testing.T) {
	f := NewFactory()
	for _, kind := range f.GetAvailableTypes() {
		t.Run(string(kind), func(t *testing.T) {
			session := model.NewSession("s-1", "u-1", kind, fixedTime)
			o, err := f.CreateAssessment(kind, model.UserContext{}, session)
			require.NoError(t, err)
			assert.Equal(t, kind, o.Strategy().Type())
			require.NoError(t, o.Initialize())
			assert.NotNil(t, o.CurrentQuestion())
		})
	}

	_, err := f.CreateAssessment("adaptive_quiz", model.UserContext{}, model.Session{})
	require.ErrorIs(t, err, ErrUnsupportedAssessmentType)
	assert.EqualError(t, err, "unsupported assessment type: adaptive_quiz")
}

func TestFactory_Metadata(t *testing.T) {
	f := NewFactory()
	assert.Equal(t, []model.AssessmentType{
		model.AssessmentQuestionnaire,
		model.AssessmentScenarioBased,
		model.AssessmentConversational,
		model.AssessmentVisualPattern,
		model.AssessmentBehavioral,
	}, f.GetAvailableTypes())

	for _, kind := range f.GetAvailableTypes() {
		meta, err := f.GetAssessmentMetadata(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, meta.Type)
		assert.NotEmpty(t, meta.Name)
		assert.NotEmpty(t, meta.EstimatedDuration)
	}

	_, err := f.GetAssessmentMetadata("nope")
	require.ErrorIs(t, err, ErrUnsupportedAssessmentType)
	assert.Len(t, f.Catalog(), 5)
}
