package assessment

import (
	"time"

	"github.com/google/uuid"

	"readiness/internal/model"
)

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithClock overrides time.Now
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the session id generator
func WithIDGenerator(newID func() string) EngineOption {
	return func(e *Engine) { e.newID = newID }
}

// Engine holds one active session and its orchestrator. Use one engine per
// request; it is not safe for concurrent use.
type Engine struct {
	factory *Factory
	now     func() time.Time
	newID   func() string
	active  *Orchestrator
}

// NewEngine returns an engine with no active session. A nil factory means NewFactory().
func NewEngine(factory *Factory, opts ...EngineOption) *Engine {
	if factory == nil {
		factory = NewFactory()
	}
	e := &Engine{
		factory: factory,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartAssessment creates a session and returns it with the first question.
// An empty sessionID gets a generated one.
func (e *Engine) StartAssessment(t model.AssessmentType, uc model.UserContext, sessionID string) (model.Session, *model.PresentedQuestion, error) {
	if sessionID == "" {
		sessionID = e.newID()
	}
	session := model.NewSession(sessionID, uc.UserID, t, e.now().UTC())

	orch, err := e.factory.CreateAssessment(t, uc, session)
	if err != nil {
		return model.Session{}, nil, err
	}
	if err := orch.Initialize(); err != nil {
		return model.Session{}, nil, err
	}
	e.active = orch
	return orch.Session(), orch.CurrentQuestion(), nil
}

// ResumeAssessment rebuilds the strategy for a persisted session and returns the current question
func (e *Engine) ResumeAssessment(session model.Session, uc model.UserContext) (*model.PresentedQuestion, error) {
	orch, err := e.factory.CreateAssessment(session.AssessmentType, uc, session)
	if err != nil {
		return nil, err
	}
	if err := orch.Initialize(); err != nil {
		return nil, err
	}
	e.active = orch
	return orch.CurrentQuestion(), nil
}

// SubmitResponse forwards resp to the active session
func (e *Engine) SubmitResponse(resp model.AssessmentResponse) (*model.PresentedQuestion, error) {
	if e.active == nil {
		return nil, ErrNoActiveSession
	}
	return e.active.SubmitResponse(resp)
}

// CurrentQuestion returns the adapted current question, nil when none remain
func (e *Engine) CurrentQuestion() (*model.PresentedQuestion, error) {
	if e.active == nil {
		return nil, ErrNoActiveSession
	}
	return e.active.CurrentQuestion(), nil
}

// GetProgress reports answered questions over the current plan
func (e *Engine) GetProgress() (model.Progress, error) {
	if e.active == nil {
		return model.Progress{}, ErrNoActiveSession
	}
	return e.active.Progress(), nil
}

// IsComplete reports whether the session is completed or has no question left
func (e *Engine) IsComplete() bool {
	if e.active == nil {
		return false
	}
	s := e.active.session
	if s.Status == model.SessionCompleted {
		return true
	}
	return s.Status == model.SessionInProgress && e.active.CurrentQuestion() == nil
}

// Session returns the active session value
func (e *Engine) Session() (model.Session, error) {
	if e.active == nil {
		return model.Session{}, ErrNoActiveSession
	}
	return e.active.Session(), nil
}

// Complete closes a session whose questions are exhausted
func (e *Engine) Complete() (model.Session, error) {
	if e.active == nil {
		return model.Session{}, ErrNoActiveSession
	}
	if err := e.active.complete(e.now().UTC()); err != nil {
		return model.Session{}, err
	}
	return e.active.Session(), nil
}

// Abandon closes the session without a result
func (e *Engine) Abandon() (model.Session, error) {
	if e.active == nil {
		return model.Session{}, ErrNoActiveSession
	}
	if err := e.active.abandon(e.now().UTC()); err != nil {
		return model.Session{}, err
	}
	return e.active.Session(), nil
}

// Result summarizes the active session: persona prediction and response pattern
func (e *Engine) Result() (model.AssessmentResult, error) {
	if e.active == nil {
		return model.AssessmentResult{}, ErrNoActiveSession
	}
	s := e.active.session
	completedAt := e.now().UTC()
	if s.CompletionTime != nil {
		completedAt = *s.CompletionTime
	}
	return model.AssessmentResult{
		SessionID:       s.ID,
		UserID:          s.UserID,
		AssessmentType:  s.AssessmentType,
		Prediction:      e.active.strategy.PredictPersona(),
		Pattern:         AnalyzeResponsePattern(s.Responses),
		QuestionCount:   len(s.Responses),
		DurationMinutes: s.DurationMinutes,
		CompletedAt:     completedAt,
	}, nil
}
