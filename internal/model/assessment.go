package model

import "time"

// AssessmentType is the modality a session runs in
type AssessmentType string

const (
	AssessmentQuestionnaire   AssessmentType = "questionnaire"
	AssessmentScenarioBased   AssessmentType = "scenario_based"
	AssessmentConversational  AssessmentType = "conversational"
	AssessmentVisualPattern   AssessmentType = "visual_pattern"
	AssessmentBehavioral      AssessmentType = "behavioral"
)

// AssessmentMetadata is the static catalog entry for a modality
type AssessmentMetadata struct {
	Type                AssessmentType `json:"type"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	EstimatedDuration   string         `json:"estimatedDuration"`
	Difficulty          string         `json:"difficulty"`
	CulturalAdaptations bool           `json:"culturalAdaptations"`
}

// AssessmentResult is stored once a session completes
type AssessmentResult struct {
	SessionID       string            `json:"sessionId" bson:"_id"`
	UserID          string            `json:"userId" bson:"userId"`
	AssessmentType  AssessmentType    `json:"assessmentType" bson:"assessmentType"`
	Prediction      PersonaPrediction `json:"prediction" bson:"prediction"`
	Pattern         ResponsePattern   `json:"pattern" bson:"pattern"`
	QuestionCount   int               `json:"questionCount" bson:"questionCount"`
	DurationMinutes int               `json:"durationMinutes" bson:"durationMinutes"`
	VariantID       string            `json:"variantId,omitempty" bson:"variantId,omitempty"`
	CompletedAt     time.Time         `json:"completedAt" bson:"completedAt"`
}

// SessionRecord is the persisted unit: the session plus what is needed to resume it
type SessionRecord struct {
	ID          string      `json:"-" bson:"_id"`
	Session     Session     `json:"session" bson:"session"`
	UserContext UserContext `json:"userContext" bson:"userContext"`
	VariantID   string      `json:"variantId,omitempty" bson:"variantId,omitempty"`
	UpdatedAt   time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// StartAssessmentRequest is the body of POST /v1/assessments
type StartAssessmentRequest struct {
	AssessmentType AssessmentType `json:"assessmentType"`
	UserContext    UserContext    `json:"userContext"`
	SessionID      string         `json:"sessionId,omitempty"`
}

// StartAssessmentResponse is returned when a session starts
type StartAssessmentResponse struct {
	Session       Session            `json:"session"`
	FirstQuestion *PresentedQuestion `json:"firstQuestion"`
	Token         string             `json:"token"`
	Variant       *VariantAssignment `json:"variant,omitempty"`
}

// SubmitResponseResult is returned after a response is accepted
type SubmitResponseResult struct {
	NextQuestion *PresentedQuestion `json:"nextQuestion"`
	Progress     Progress           `json:"progress"`
	Done         bool               `json:"done"`
	Result       *AssessmentResult  `json:"result,omitempty"`
}

// RecommendationResponse is returned by POST /v1/assessments/recommend
type RecommendationResponse struct {
	Recommended AssessmentType     `json:"recommended"`
	Metadata    AssessmentMetadata `json:"metadata"`
}
