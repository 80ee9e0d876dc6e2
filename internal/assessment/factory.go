package assessment

import (
	"fmt"
	"strings"

	"readiness/internal/model"
)

var assessmentCatalog = []model.AssessmentMetadata{
	{
		Type:                model.AssessmentQuestionnaire,
		Name:                "Strategic Readiness Questionnaire",
		Description:         "Structured questions on authority, influence, resources and AI familiarity that adapt to your answers",
		EstimatedDuration:   "8-12 minutes",
		Difficulty:          "easy",
		CulturalAdaptations: true,
	},
	{
		Type:                model.AssessmentScenarioBased,
		Name:                "Business Scenario Assessment",
		Description:         "Choose how you would act in realistic multi-stakeholder business situations",
		EstimatedDuration:   "12-15 minutes",
		Difficulty:          "medium",
		CulturalAdaptations: true,
	},
	{
		Type:                model.AssessmentConversational,
		Name:                "Conversational Assessment",
		Description:         "Answer open questions in your own words, with follow-ups when more detail helps",
		EstimatedDuration:   "15-20 minutes",
		Difficulty:          "medium",
		CulturalAdaptations: true,
	},
	{
		Type:                model.AssessmentVisualPattern,
		Name:                "Visual Pattern Assessment",
		Description:         "Pick the diagrams and patterns that match how you work, from simple to complex",
		EstimatedDuration:   "6-10 minutes",
		Difficulty:          "easy",
		CulturalAdaptations: true,
	},
	{
		Type:                model.AssessmentBehavioral,
		Name:                "Behavioral Adaptive Assessment",
		Description:         "Classifies from how you answer as well as what you answer",
		EstimatedDuration:   "10-15 minutes",
		Difficulty:          "medium",
		CulturalAdaptations: false,
	},
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithSignalExtractor replaces the keyword extractor used by conversational assessments
func WithSignalExtractor(e SignalExtractor) FactoryOption {
	return func(f *Factory) { f.extractor = e }
}

// Factory creates strategies and answers catalog questions
type Factory struct {
	extractor SignalExtractor
}

// NewFactory returns a factory using KeywordExtractor unless an option replaces it
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{extractor: KeywordExtractor{}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewStrategy returns a fresh strategy for t
func (f *Factory) NewStrategy(t model.AssessmentType, uc model.UserContext) (Strategy, error) {
	switch t {
	case model.AssessmentQuestionnaire:
		return NewQuestionnaireStrategy(uc), nil
	case model.AssessmentScenarioBased:
		return NewScenarioStrategy(uc), nil
	case model.AssessmentConversational:
		return NewConversationalStrategy(uc, f.extractor), nil
	case model.AssessmentVisualPattern:
		return NewVisualStrategy(uc), nil
	case model.AssessmentBehavioral:
		return NewBehavioralStrategy(uc), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAssessmentType, t)
	}
}

// CreateAssessment binds a fresh strategy for t to an orchestrator over session.
// The orchestrator still needs Initialize.
func (f *Factory) CreateAssessment(t model.AssessmentType, uc model.UserContext, session model.Session) (*Orchestrator, error) {
	strategy, err := f.NewStrategy(t, uc)
	if err != nil {
		return nil, err
	}
	return NewOrchestrator(strategy, uc, session), nil
}

// RecommendAssessmentType picks a modality from the user's context. First matching rule wins.
func (f *Factory) RecommendAssessmentType(uc model.UserContext) model.AssessmentType {
	switch {
	case len(uc.AssessmentHistory) == 0:
		return model.AssessmentQuestionnaire
	case uc.HasCulturalContext("kenyan", "east_african"):
		return model.AssessmentScenarioBased
	case strings.EqualFold(uc.NormalizedIndustry(), "technology"):
		return model.AssessmentVisualPattern
	default:
		return model.AssessmentQuestionnaire
	}
}

// GetAssessmentMetadata returns the catalog entry for t
func (f *Factory) GetAssessmentMetadata(t model.AssessmentType) (model.AssessmentMetadata, error) {
	for _, m := range assessmentCatalog {
		if m.Type == t {
			return m, nil
		}
	}
	return model.AssessmentMetadata{}, fmt.Errorf("%w: %s", ErrUnsupportedAssessmentType, t)
}

// GetAvailableTypes lists every supported modality in catalog order
func (f *Factory) GetAvailableTypes() []model.AssessmentType {
	types := make([]model.AssessmentType, len(assessmentCatalog))
	for i, m := range assessmentCatalog {
		types[i] = m.Type
	}
	return types
}

// Catalog returns the metadata of every supported modality
func (f *Factory) Catalog() []model.AssessmentMetadata {
	return append([]model.AssessmentMetadata(nil), assessmentCatalog...)
}
