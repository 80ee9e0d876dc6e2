package assessment

import (
	"sort"
	"strings"

	"readiness/internal/model"
)

const (
	maxIndustryQuestions = 3
	adaptiveBudget       = 3
)

type questionnaireTotals struct {
	Authority float64
	Influence float64
	Resources float64
}

func (t *questionnaireTotals) add(o questionnaireTotals) {
	t.Authority += o.Authority
	t.Influence += o.Influence
	t.Resources += o.Resources
}

// QuestionnaireStrategy runs the structured questionnaire. Role, authority scale,
// team size and budget answers feed running totals that are thresholded into a persona.
type QuestionnaireStrategy struct {
	userContext model.UserContext
	totals      questionnaireTotals
	scored      int
	planned     map[string]bool
	injected    int
}

// NewQuestionnaireStrategy returns a strategy whose plan is tailored to the industry and role in uc
func NewQuestionnaireStrategy(uc model.UserContext) *QuestionnaireStrategy {
	return &QuestionnaireStrategy{
		userContext: uc,
		planned:     make(map[string]bool),
	}
}

// Type reports questionnaire
func (s *QuestionnaireStrategy) Type() model.AssessmentType {
	return model.AssessmentQuestionnaire
}

// InitializeQuestions returns the authority and influence questions, the first AI
// question and up to three questions for the user's industry.
func (s *QuestionnaireStrategy) InitializeQuestions() []model.Question {
	var plan []model.Question
	for _, q := range questionnaireBank {
		if q.Category == categoryAuthority || q.Category == categoryInfluence || q.ID == questionAIFamiliar {
			plan = append(plan, q.Clone())
		}
	}

	industry := s.userContext.NormalizedIndustry()
	added := 0
	for _, q := range questionnaireBank {
		if added == maxIndustryQuestions || industry == "" {
			break
		}
		if q.IndustrySpecific && containsFold(q.Industries, industry) {
			plan = append(plan, q.Clone())
			added++
		}
	}

	s.planned = make(map[string]bool, len(plan))
	for _, q := range plan {
		s.planned[q.ID] = true
	}
	return plan
}

func (s *QuestionnaireStrategy) ProcessResponse(resp model.AssessmentResponse, current model.Question) (model.AssessmentResponse, error) {
	value := resp.ResponseValue
	switch current.ID {
	case questionRole:
		s.totals.add(roleWeights[value.Text])
		s.scored++
	case questionAuthority:
		n, _ := value.Float()
		s.totals.Authority += n
		s.scored++
	case questionTeamSize:
		s.totals.add(teamSizeWeights[value.Text])
		s.scored++
	case questionBudget:
		s.totals.add(budgetWeights[value.Text])
		s.scored++
	}
	return resp.Clone(), nil
}

func (s *QuestionnaireStrategy) DetermineNextQuestion(responses []model.AssessmentResponse, index int) *model.Question {
	return s.selectAdaptiveQuestion(answeredSet(responses))
}

// selectAdaptiveQuestion prefers unanswered questions tagged for the current leading
// persona, then back-fills the category with the fewest answers. Questions outside the
// initial plan count against the adaptive budget.
func (s *QuestionnaireStrategy) selectAdaptiveQuestion(answered map[string]bool) *model.Question {
	leader := s.PredictPersona().Persona
	for _, q := range questionnaireBank {
		if !answered[q.ID] && q.RequiredFor(leader) && s.allowed(q) {
			return s.pick(q)
		}
	}

	counts := make(map[string]int, len(backfillCategories))
	for id := range answered {
		counts[categoryOf(id)]++
	}
	categories := append([]string(nil), backfillCategories...)
	sort.SliceStable(categories, func(i, j int) bool {
		return counts[categories[i]] < counts[categories[j]]
	})

	for _, category := range categories {
		for _, q := range questionnaireBank {
			if q.Category == category && !answered[q.ID] && s.allowed(q) {
				return s.pick(q)
			}
		}
	}
	return nil
}

func (s *QuestionnaireStrategy) allowed(q model.Question) bool {
	if q.IndustrySpecific {
		return s.planned[q.ID]
	}
	return s.planned[q.ID] || s.injected < adaptiveBudget
}

func (s *QuestionnaireStrategy) pick(q model.Question) *model.Question {
	if !s.planned[q.ID] {
		s.injected++
		s.planned[q.ID] = true
	}
	c := q.Clone()
	return &c
}

// PredictPersona thresholds the running totals
func (s *QuestionnaireStrategy) PredictPersona() model.PersonaPrediction {
	t := s.totals
	var persona model.PersonaType
	switch {
	case t.Authority >= 8 && t.Resources >= 4:
		persona = model.PersonaArchitect
	case t.Authority >= 6 && t.Influence >= 3:
		persona = model.PersonaCatalyst
	case t.Authority >= 4 || t.Influence >= 3:
		persona = model.PersonaContributor
	case t.Authority >= 2:
		persona = model.PersonaExplorer
	default:
		persona = model.PersonaObserver
	}
	return model.PersonaPrediction{
		Persona:    persona,
		Confidence: float64(s.scored) / 4,
	}
}

// ApplyIndustryAdaptations names the industry in generic organization questions
func (s *QuestionnaireStrategy) ApplyIndustryAdaptations(q model.Question) model.Question {
	industry := s.userContext.NormalizedIndustry()
	if q.IndustrySpecific || industry == "" || !strings.Contains(q.Text, "your organization") {
		return q
	}
	q.Text = strings.Replace(q.Text, "your organization", "your "+industry+" organization", 1)
	return q
}

func categoryOf(id string) string {
	if i := strings.IndexByte(id, '_'); i > 0 {
		return id[:i]
	}
	return id
}
