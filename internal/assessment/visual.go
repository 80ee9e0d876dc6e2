package assessment

import (
	"fmt"
	"sort"

	"readiness/internal/model"
)

// VisualStrategy presents visual patterns from simple to complex, limited to
// patterns relevant to the user's industry.
type VisualStrategy struct {
	userContext model.UserContext
	patterns    map[string]visualPattern
	plan        []model.Question
	tally       alignmentTally
}

// NewVisualStrategy returns a strategy over the visual pattern bank. Patterns are filtered
// by the industry in uc when the plan is built.
func NewVisualStrategy(uc model.UserContext) *VisualStrategy {
	byID := make(map[string]visualPattern, len(visualBank))
	for _, p := range visualBank {
		byID[p.ID] = p
	}
	return &VisualStrategy{
		userContext: uc,
		patterns:    byID,
		tally:       newAlignmentTally(),
	}
}

// Type reports visual_pattern
func (s *VisualStrategy) Type() model.AssessmentType {
	return model.AssessmentVisualPattern
}

func (s *VisualStrategy) InitializeQuestions() []model.Question {
	industry := s.userContext.NormalizedIndustry()
	var relevant []visualPattern
	for _, p := range visualBank {
		if p.relevantTo(industry) {
			relevant = append(relevant, p)
		}
	}
	sort.SliceStable(relevant, func(i, j int) bool {
		return complexityRank[relevant[i].Complexity] < complexityRank[relevant[j].Complexity]
	})

	s.plan = make([]model.Question, 0, len(relevant))
	for _, p := range relevant {
		s.plan = append(s.plan, p.question())
	}
	return cloneQuestions(s.plan)
}

func (s *VisualStrategy) ProcessResponse(resp model.AssessmentResponse, current model.Question) (model.AssessmentResponse, error) {
	p, ok := s.patterns[current.ID]
	if !ok {
		return model.AssessmentResponse{}, fmt.Errorf("%w: unknown pattern %q", ErrInvalidResponse, current.ID)
	}
	choice, err := resolveChoice(p.Choices, resp.ResponseValue)
	if err != nil {
		return model.AssessmentResponse{}, err
	}
	s.tally.add(choice)
	return recordChoice(resp, choice), nil
}

// DetermineNextQuestion returns the first unanswered pattern, so lower tiers finish first
func (s *VisualStrategy) DetermineNextQuestion(responses []model.AssessmentResponse, index int) *model.Question {
	return firstUnanswered(s.plan, responses)
}

func (s *VisualStrategy) PredictPersona() model.PersonaPrediction {
	return s.tally.predict()
}

// ApplyIndustryAdaptations frames general patterns in the user's industry
func (s *VisualStrategy) ApplyIndustryAdaptations(q model.Question) model.Question {
	industry := s.userContext.NormalizedIndustry()
	if q.IndustrySpecific || industry == "" {
		return q
	}
	q.Text = q.Text + " Answer with your " + industry + " work in mind."
	return q
}
