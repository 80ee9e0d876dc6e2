package assessment

import (
	"fmt"

	"readiness/internal/model"
)

// ScenarioStrategy presents one multi-stakeholder business scenario per turn and
// classifies from the persona alignment of the chosen responses.
type ScenarioStrategy struct {
	userContext model.UserContext
	scenarios   map[string]businessScenario
	plan        []model.Question
	tally       alignmentTally
}

// NewScenarioStrategy returns a strategy over the scenario bank with an empty persona tally
func NewScenarioStrategy(uc model.UserContext) *ScenarioStrategy {
	byID := make(map[string]businessScenario, len(scenarioBank))
	for _, sc := range scenarioBank {
		byID[sc.ID] = sc
	}
	return &ScenarioStrategy{
		userContext: uc,
		scenarios:   byID,
		tally:       newAlignmentTally(),
	}
}

// Type reports scenario_based
func (s *ScenarioStrategy) Type() model.AssessmentType {
	return model.AssessmentScenarioBased
}

func (s *ScenarioStrategy) InitializeQuestions() []model.Question {
	s.plan = make([]model.Question, 0, len(scenarioBank))
	for _, sc := range scenarioBank {
		s.plan = append(s.plan, sc.question())
	}
	return cloneQuestions(s.plan)
}

// ProcessResponse records the chosen option's id, reasoning, implications and alignment
func (s *ScenarioStrategy) ProcessResponse(resp model.AssessmentResponse, current model.Question) (model.AssessmentResponse, error) {
	sc, ok := s.scenarios[current.ID]
	if !ok {
		return model.AssessmentResponse{}, fmt.Errorf("%w: unknown scenario %q", ErrInvalidResponse, current.ID)
	}
	choice, err := resolveChoice(sc.Choices, resp.ResponseValue)
	if err != nil {
		return model.AssessmentResponse{}, err
	}
	s.tally.add(choice)
	return recordChoice(resp, choice), nil
}

// DetermineNextQuestion returns the first scenario not yet answered
func (s *ScenarioStrategy) DetermineNextQuestion(responses []model.AssessmentResponse, index int) *model.Question {
	return firstUnanswered(s.plan, responses)
}

func (s *ScenarioStrategy) PredictPersona() model.PersonaPrediction {
	return s.tally.predict()
}
