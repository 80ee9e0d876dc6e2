package model

import (
	"errors"
	"math"
	"time"
)

// ErrSessionClosed is returned when a completed or abandoned session is asked to change
var ErrSessionClosed = errors.New("session is no longer in progress")

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionAbandoned  SessionStatus = "abandoned"
)

// Terminal reports whether no further transition is allowed
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionAbandoned
}

// Session is an immutable value: every transition returns a new Session.
// CurrentQuestionIndex == len(Responses) after each processed submission.
type Session struct {
	ID                   string               `json:"id" bson:"_id"`
	UserID               string               `json:"userId" bson:"userId"`
	AssessmentType       AssessmentType       `json:"assessmentType" bson:"assessmentType"`
	Status               SessionStatus        `json:"status" bson:"status"`
	StartTime            time.Time            `json:"startTime" bson:"startTime"`
	CompletionTime       *time.Time           `json:"completionTime,omitempty" bson:"completionTime,omitempty"`
	DurationMinutes      int                  `json:"durationMinutes,omitempty" bson:"durationMinutes,omitempty"`
	CurrentQuestionIndex int                  `json:"currentQuestionIndex" bson:"currentQuestionIndex"`
	Responses            []AssessmentResponse `json:"responses" bson:"responses"`
	CulturalAdaptations  []string             `json:"culturalAdaptations" bson:"culturalAdaptations"`
}

// NewSession starts an in-progress session
func NewSession(id, userID string, t AssessmentType, start time.Time) Session {
	return Session{
		ID:                  id,
		UserID:              userID,
		AssessmentType:      t,
		Status:              SessionInProgress,
		StartTime:           start,
		Responses:           []AssessmentResponse{},
		CulturalAdaptations: []string{},
	}
}

// Clone deep-copies the session
func (s Session) Clone() Session {
	c := s
	if s.CompletionTime != nil {
		t := *s.CompletionTime
		c.CompletionTime = &t
	}
	c.Responses = make([]AssessmentResponse, len(s.Responses))
	for i, r := range s.Responses {
		c.Responses[i] = r.Clone()
	}
	c.CulturalAdaptations = append([]string{}, s.CulturalAdaptations...)
	return c
}

// WithResponse appends r and advances the index. The culturalTag, when set, is recorded once.
func (s Session) WithResponse(r AssessmentResponse, culturalTag string) (Session, error) {
	if s.Status.Terminal() {
		return s, ErrSessionClosed
	}
	next := s.Clone()
	next.Responses = append(next.Responses, r.Clone())
	next.CurrentQuestionIndex = len(next.Responses)
	if culturalTag != "" && !containsString(next.CulturalAdaptations, culturalTag) {
		next.CulturalAdaptations = append(next.CulturalAdaptations, culturalTag)
	}
	return next, nil
}

// Complete moves the session to completed and records its duration
func (s Session) Complete(now time.Time) (Session, error) {
	if s.Status.Terminal() {
		return s, ErrSessionClosed
	}
	next := s.Clone()
	next.Status = SessionCompleted
	next.CompletionTime = &now
	next.DurationMinutes = int(math.Round(now.Sub(s.StartTime).Minutes()))
	return next, nil
}

// Abandon moves the session to abandoned
func (s Session) Abandon(now time.Time) (Session, error) {
	if s.Status.Terminal() {
		return s, ErrSessionClosed
	}
	next := s.Clone()
	next.Status = SessionAbandoned
	next.CompletionTime = &now
	return next, nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
