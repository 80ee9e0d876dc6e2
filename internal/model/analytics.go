package model

import "time"

// PersonaCount is one row of the persona distribution for an assessment type
type PersonaCount struct {
	Persona PersonaType `json:"persona"`
	Count   int         `json:"count"`
	Share   float64     `json:"share"` // 0-1 of all completions
}

// PersonaDistribution summarizes completed sessions for one assessment type
type PersonaDistribution struct {
	AssessmentType AssessmentType `json:"assessmentType"`
	Total          int            `json:"total"`
	Personas       []PersonaCount `json:"personas"`
}

// Event types pushed over the websocket feeds
const (
	EventQuestionAnswered    = "question_answered"
	EventAssessmentStarted   = "assessment_started"
	EventAssessmentCompleted = "assessment_completed"
	EventAssessmentAbandoned = "assessment_abandoned"
)

// ProgressEvent is the payload broadcast when a session moves
type ProgressEvent struct {
	Type           string             `json:"type"`
	SessionID      string             `json:"sessionId"`
	AssessmentType AssessmentType     `json:"assessmentType"`
	Progress       Progress           `json:"progress"`
	NextQuestion   *PresentedQuestion `json:"nextQuestion,omitempty"`
	Persona        PersonaType        `json:"persona,omitempty"`
	At             time.Time          `json:"at"`
}
