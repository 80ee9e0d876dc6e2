package assessment

import (
	"fmt"
	"math"
	"strings"
	"time"

	"readiness/internal/model"
)

// Orchestrator drives one session through a strategy: it sequences questions,
// validates submissions, tracks progress and applies cultural/industry adaptations.
// It is not safe for concurrent use.
type Orchestrator struct {
	strategy    Strategy
	userContext model.UserContext
	session     model.Session
	questions   []model.Question
	initialized bool
}

// NewOrchestrator binds a strategy to a session. Call Initialize before use.
func NewOrchestrator(strategy Strategy, uc model.UserContext, session model.Session) *Orchestrator {
	return &Orchestrator{
		strategy:    strategy,
		userContext: uc,
		session:     session.Clone(),
	}
}

// Initialize builds the question plan and replays any recorded responses so the
// strategy state and adaptive injections match the original run.
func (o *Orchestrator) Initialize() error {
	if o.initialized {
		return nil
	}
	if o.session.CurrentQuestionIndex != len(o.session.Responses) {
		return fmt.Errorf("%w: index %d with %d responses", ErrSessionCorrupt,
			o.session.CurrentQuestionIndex, len(o.session.Responses))
	}

	questions := cloneQuestions(o.strategy.InitializeQuestions())
	for i, recorded := range o.session.Responses {
		if i >= len(questions) || questions[i].ID != recorded.QuestionID {
			return fmt.Errorf("%w: response %d answers %q", ErrSessionCorrupt, i, recorded.QuestionID)
		}
		if _, err := o.strategy.ProcessResponse(recorded, questions[i]); err != nil {
			return fmt.Errorf("%w: replay of %q: %v", ErrSessionCorrupt, recorded.QuestionID, err)
		}
		if next := o.strategy.DetermineNextQuestion(o.session.Responses[:i+1], i+1); next != nil {
			questions = injectQuestion(questions, *next, i+1)
		}
	}

	o.questions = questions
	o.initialized = true
	return nil
}

// Session returns a copy of the current session value
func (o *Orchestrator) Session() model.Session {
	return o.session.Clone()
}

// Strategy returns the bound strategy
func (o *Orchestrator) Strategy() Strategy {
	return o.strategy
}

// UserContext returns the context the session is adapted to
func (o *Orchestrator) UserContext() model.UserContext {
	return o.userContext
}

// Questions returns a copy of the current plan, answered entries first
func (o *Orchestrator) Questions() []model.Question {
	return cloneQuestions(o.questions)
}

// CurrentQuestion returns the adapted question at the current index, or nil when
// the plan is exhausted or the session is closed.
func (o *Orchestrator) CurrentQuestion() *model.PresentedQuestion {
	idx := o.session.CurrentQuestionIndex
	if !o.initialized || o.session.Status.Terminal() || idx >= len(o.questions) {
		return nil
	}

	adapted, tag := o.ApplyAdaptations(o.questions[idx])
	total := len(o.questions)
	return &model.PresentedQuestion{
		Question: adapted,
		Progress: model.Progress{
			Current:    idx + 1,
			Total:      total,
			Percentage: percentage(idx+1, total),
		},
		CulturalContext: tag,
		Industry:        o.userContext.Industry,
	}
}

// Progress reports how many questions have been answered out of the current plan
func (o *Orchestrator) Progress() model.Progress {
	answered := len(o.session.Responses)
	total := len(o.questions)
	return model.Progress{
		Current:    answered,
		Total:      total,
		Percentage: percentage(answered, total),
	}
}

// SubmitResponse validates resp against the current question, records it and
// applies the strategy's adaptive branch. Nothing changes when an error is returned.
func (o *Orchestrator) SubmitResponse(resp model.AssessmentResponse) (*model.PresentedQuestion, error) {
	if !o.initialized {
		return nil, ErrNoActiveSession
	}
	if o.session.Status.Terminal() {
		return nil, model.ErrSessionClosed
	}
	idx := o.session.CurrentQuestionIndex
	if idx >= len(o.questions) {
		return nil, fmt.Errorf("%w: no question is pending", ErrInvalidResponse)
	}
	current := o.questions[idx]
	if err := ValidateResponse(resp, current); err != nil {
		return nil, err
	}

	_, tag := o.ApplyAdaptations(current)
	stamped := o.stamp(resp, tag)

	processed, err := o.strategy.ProcessResponse(stamped, current)
	if err != nil {
		return nil, err
	}
	next, err := o.session.WithResponse(processed, tag)
	if err != nil {
		return nil, err
	}

	questions := o.questions
	if q := o.strategy.DetermineNextQuestion(next.Responses, next.CurrentQuestionIndex); q != nil {
		questions = injectQuestion(questions, *q, next.CurrentQuestionIndex)
	}

	o.session = next
	o.questions = questions
	return o.CurrentQuestion(), nil
}

// ApplyAdaptations returns an adapted copy of q and the cultural tag that was applied.
// The first entry of the user's cultural context with an adaptation wins.
func (o *Orchestrator) ApplyAdaptations(q model.Question) (model.Question, string) {
	adapted := q.Clone()
	tag := ""
	for _, ctx := range o.userContext.CulturalContext {
		key := strings.ToLower(strings.TrimSpace(ctx))
		if text, ok := adapted.CulturalAdaptations[key]; ok {
			adapted.Text = text
			tag = key
			break
		}
	}
	if ia, ok := o.strategy.(IndustryAdapter); ok && o.userContext.NormalizedIndustry() != "" {
		adapted = ia.ApplyIndustryAdaptations(adapted)
	}
	return adapted, tag
}

func (o *Orchestrator) complete(now time.Time) error {
	if o.CurrentQuestion() != nil {
		return ErrAssessmentIncomplete
	}
	next, err := o.session.Complete(now)
	if err != nil {
		return err
	}
	o.session = next
	return nil
}

func (o *Orchestrator) abandon(now time.Time) error {
	next, err := o.session.Abandon(now)
	if err != nil {
		return err
	}
	o.session = next
	return nil
}

func (o *Orchestrator) stamp(resp model.AssessmentResponse, tag string) model.AssessmentResponse {
	stamped := resp.Clone()
	if tag == "" && o.userContext.Industry == "" {
		return stamped
	}
	if stamped.Metadata == nil {
		stamped.Metadata = make(map[string]string, 2)
	}
	if tag != "" {
		stamped.Metadata[model.MetaCulturalContext] = tag
	}
	if o.userContext.Industry != "" {
		stamped.Metadata[model.MetaIndustry] = o.userContext.NormalizedIndustry()
	}
	return stamped
}

// injectQuestion places q at index without disturbing answered entries. A pending
// copy further down the plan is moved forward; an answered or already-current copy
// leaves the plan untouched.
func injectQuestion(questions []model.Question, q model.Question, index int) []model.Question {
	for i := 0; i < len(questions) && i <= index; i++ {
		if questions[i].ID == q.ID {
			return questions
		}
	}

	out := make([]model.Question, 0, len(questions)+1)
	out = append(out, questions...)
	for j := index + 1; j < len(out); j++ {
		if out[j].ID == q.ID {
			out = append(out[:j], out[j+1:]...)
			break
		}
	}
	if index >= len(out) {
		return append(out, q.Clone())
	}
	out = append(out, model.Question{})
	copy(out[index+1:], out[index:])
	out[index] = q.Clone()
	return out
}

func cloneQuestions(qs []model.Question) []model.Question {
	out := make([]model.Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

func percentage(current, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(current) / float64(total) * 100))
	if p > 100 {
		return 100
	}
	return p
}
