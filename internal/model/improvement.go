package model

import "time"

// MaxVariantWeight is the largest weight a variant may carry
const MaxVariantWeight = 10000

// Variant is an A/B arm of an assessment type. Overrides replace question text by id.
type Variant struct {
	ID             string            `json:"id" bson:"_id"`
	AssessmentType AssessmentType    `json:"assessmentType" bson:"assessmentType" yaml:"assessmentType"`
	Name           string            `json:"name" bson:"name" yaml:"name"`
	Weight         int               `json:"weight" bson:"weight" yaml:"weight"`
	Active         bool              `json:"active" bson:"active" yaml:"active"`
	TextOverrides  map[string]string `json:"textOverrides,omitempty" bson:"textOverrides,omitempty" yaml:"textOverrides"`
	CreatedAt      time.Time         `json:"createdAt" bson:"createdAt" yaml:"-"`
}

// VariantAssignment pins a user to a variant
type VariantAssignment struct {
	VariantID      string         `json:"variantId"`
	Name           string         `json:"name"`
	AssessmentType AssessmentType `json:"assessmentType"`
}

// CompletionEvent is recorded for every completed session
type CompletionEvent struct {
	ID              string         `json:"id" bson:"_id"`
	SessionID       string         `json:"sessionId" bson:"sessionId"`
	UserID          string         `json:"userId" bson:"userId"`
	AssessmentType  AssessmentType `json:"assessmentType" bson:"assessmentType"`
	VariantID       string         `json:"variantId,omitempty" bson:"variantId,omitempty"`
	Persona         PersonaType    `json:"persona" bson:"persona"`
	Confidence      float64        `json:"confidence" bson:"confidence"`
	QuestionCount   int            `json:"questionCount" bson:"questionCount"`
	DurationMinutes int            `json:"durationMinutes" bson:"durationMinutes"`
	CompletedAt     time.Time      `json:"completedAt" bson:"completedAt"`
}

// VariantStats are the live counters for one variant
type VariantStats struct {
	VariantID      string  `json:"variantId"`
	Name           string  `json:"name"`
	Started        int64   `json:"started"`
	Completed      int64   `json:"completed"`
	Abandoned      int64   `json:"abandoned"`
	CompletionRate float64 `json:"completionRate"`
}
