package assessment

import (
	"fmt"
	"math"

	"readiness/internal/model"
)

// minAnswerWords is the length below which a turn gets a follow-up
const minAnswerWords = 10

// ConversationalStrategy classifies from free-text answers. Short answers, or
// answers that miss every trigger word, get one follow-up before the next turn.
type ConversationalStrategy struct {
	userContext model.UserContext
	extractor   SignalExtractor
	turns       map[string]conversationTurn
	signals     map[model.PersonaType]float64
	totalSignal float64
}

// NewConversationalStrategy returns a free-text strategy. A nil extractor means KeywordExtractor.
func NewConversationalStrategy(uc model.UserContext, extractor SignalExtractor) *ConversationalStrategy {
	if extractor == nil {
		extractor = KeywordExtractor{}
	}
	byID := make(map[string]conversationTurn, len(conversationBank))
	for _, t := range conversationBank {
		byID[t.ID] = t
	}
	return &ConversationalStrategy{
		userContext: uc,
		extractor:   extractor,
		turns:       byID,
		signals:     make(map[model.PersonaType]float64),
	}
}

// Type reports conversational
func (s *ConversationalStrategy) Type() model.AssessmentType {
	return model.AssessmentConversational
}

func (s *ConversationalStrategy) InitializeQuestions() []model.Question {
	plan := make([]model.Question, 0, len(conversationBank))
	for _, t := range conversationBank {
		plan = append(plan, t.question())
	}
	return plan
}

// ProcessResponse attaches the extracted analysis to the answer text
func (s *ConversationalStrategy) ProcessResponse(resp model.AssessmentResponse, current model.Question) (model.AssessmentResponse, error) {
	turnID := current.ID
	if current.ParentID != "" {
		turnID = current.ParentID
	}
	turn, ok := s.turns[turnID]
	if !ok {
		return model.AssessmentResponse{}, fmt.Errorf("%w: unknown conversation turn %q", ErrInvalidResponse, current.ID)
	}

	analysis := s.extractor.Extract(resp.ResponseValue.Text, turn.Keywords, turn.Triggers)
	for _, p := range analysis.PersonaSignals {
		s.signals[p]++
		s.totalSignal++
	}

	recorded := resp.Clone()
	recorded.ResponseValue = model.ResponseValue{
		Text:         resp.ResponseValue.Text,
		Conversation: &analysis,
	}
	return recorded, nil
}

// DetermineNextQuestion returns the follow-up for the last main turn when the
// answer was too short or missed every trigger word. Follow-ups never chain.
func (s *ConversationalStrategy) DetermineNextQuestion(responses []model.AssessmentResponse, index int) *model.Question {
	if len(responses) == 0 {
		return nil
	}
	last := responses[len(responses)-1]
	turn, ok := s.turns[last.QuestionID]
	if !ok {
		return nil
	}
	analysis := last.ResponseValue.Conversation
	if analysis == nil {
		return nil
	}
	if analysis.WordCount >= minAnswerWords && analysis.TriggerMatched {
		return nil
	}
	q := turn.followUpQuestion()
	return &q
}

func (s *ConversationalStrategy) PredictPersona() model.PersonaPrediction {
	if s.totalSignal == 0 {
		return model.PersonaPrediction{Persona: model.PersonaObserver}
	}
	persona, score := leadingPersona(s.signals)
	scores := make(map[model.PersonaType]float64, len(s.signals))
	for p, v := range s.signals {
		scores[p] = v
	}
	return model.PersonaPrediction{
		Persona:    persona,
		Confidence: math.Min(score/s.totalSignal, 1),
		Scores:     scores,
	}
}
