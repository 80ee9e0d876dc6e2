package assessment

import "readiness/internal/model"

// Strategy is the modality-specific half of an assessment. The orchestrator owns
// sequencing and validation; a strategy owns its bank, its scoring state and its
// adaptive branching.
//
// Implementations must be deterministic: the same sequence of ProcessResponse and
// DetermineNextQuestion calls yields the same questions and the same prediction.
// Resume depends on it.
type Strategy interface {
	Type() model.AssessmentType

	// InitializeQuestions builds the initial plan from the bank
	InitializeQuestions() []model.Question

	// ProcessResponse scores resp against current and returns the value to record.
	// It must reject a response before touching any internal state.
	ProcessResponse(resp model.AssessmentResponse, current model.Question) (model.AssessmentResponse, error)

	// DetermineNextQuestion may return a question to place at index. nil keeps the plan as is.
	DetermineNextQuestion(responses []model.AssessmentResponse, index int) *model.Question

	PredictPersona() model.PersonaPrediction
}

// IndustryAdapter is implemented by strategies that rephrase questions per industry
type IndustryAdapter interface {
	ApplyIndustryAdaptations(q model.Question) model.Question
}
