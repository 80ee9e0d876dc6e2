package assessment

import (
	"math"

	"readiness/internal/model"
)

const (
	confirmThreshold   = 0.7
	minObservations    = 3
	rangeWidthFloor    = 10.0
	confidenceDivisor  = 12.0
	inRangeScore       = 3.0
	maxProximityScore  = 2.0
	baseEngagement     = 5.0
	maxEngagement      = 10.0
	baseConfidence     = 5.0
	fastResponseSecs   = 10.0
	slowResponseSecs   = 90.0
	deepResponseSecs   = 45.0
	steadyResponseSecs = 20.0
)

var engagementTypeBonus = map[model.QuestionType]float64{
	model.QuestionBehavioralObservation: 3,
	model.QuestionTextInput:             2,
	model.QuestionScaleRating:           1,
	model.QuestionScenarioSelection:     1,
	model.QuestionVisualPattern:         1,
}

// observation is the telemetry recorded for one response
type observation struct {
	responseTime       float64
	hasResponseTime    bool
	engagementDepth    float64
	decisionConfidence float64
}

// BehavioralStrategy classifies from interaction telemetry rather than answer content
type BehavioralStrategy struct {
	userContext  model.UserContext
	observations []observation
	confirmed    map[model.PersonaType]bool
}

// NewBehavioralStrategy returns a strategy that scores how the respondent answers as well as what
func NewBehavioralStrategy(uc model.UserContext) *BehavioralStrategy {
	return &BehavioralStrategy{
		userContext: uc,
		confirmed:   make(map[model.PersonaType]bool),
	}
}

// Type reports behavioral
func (s *BehavioralStrategy) Type() model.AssessmentType {
	return model.AssessmentBehavioral
}

func (s *BehavioralStrategy) InitializeQuestions() []model.Question {
	return cloneQuestions(behavioralBank)
}

func (s *BehavioralStrategy) ProcessResponse(resp model.AssessmentResponse, current model.Question) (model.AssessmentResponse, error) {
	s.observations = append(s.observations, observe(resp, current))
	return resp.Clone(), nil
}

// DetermineNextQuestion asks a confirming question for the likely persona when the
// classification is still uncertain. Each persona is confirmed at most once.
func (s *BehavioralStrategy) DetermineNextQuestion(responses []model.AssessmentResponse, index int) *model.Question {
	if len(s.observations) < minObservations {
		return nil
	}
	prediction := s.PredictPersona()
	if prediction.Confidence >= confirmThreshold || s.confirmed[prediction.Persona] {
		return nil
	}
	q, ok := confirmQuestions[prediction.Persona]
	if !ok {
		return nil
	}
	s.confirmed[prediction.Persona] = true
	c := q.Clone()
	return &c
}

func (s *BehavioralStrategy) PredictPersona() model.PersonaPrediction {
	return scoreObservations(s.observations)
}

func observe(resp model.AssessmentResponse, q model.Question) observation {
	obs := observation{}
	rt, ok := resp.ResponseTime()
	if ok {
		obs.responseTime = rt
		obs.hasResponseTime = true
	}

	engagement := baseEngagement + engagementTypeBonus[q.Type]
	if ok {
		switch {
		case rt >= deepResponseSecs:
			engagement += 2
		case rt >= steadyResponseSecs:
			engagement++
		}
	}
	obs.engagementDepth = math.Min(engagement, maxEngagement)

	confidence := baseConfidence
	if ok {
		switch {
		case rt < fastResponseSecs:
			confidence += 2
		case rt > slowResponseSecs:
			confidence -= 2
		}
	}
	tokens := tokenize(resp.ResponseValue.Text)
	confidence += float64(countPhrases(tokens, confidenceMarkers))
	confidence -= float64(countPhrases(tokens, uncertaintyMarkers))
	obs.decisionConfidence = math.Max(1, math.Min(confidence, 10))
	return obs
}

// scoreObservations compares the mean of each metric with every persona's ranges
func scoreObservations(observations []observation) model.PersonaPrediction {
	if len(observations) == 0 {
		return model.PersonaPrediction{Persona: model.PersonaObserver}
	}

	var rtSum, engSum, confSum float64
	rtCount := 0
	for _, o := range observations {
		if o.hasResponseTime {
			rtSum += o.responseTime
			rtCount++
		}
		engSum += o.engagementDepth
		confSum += o.decisionConfidence
	}
	n := float64(len(observations))
	engMean, confMean := engSum/n, confSum/n

	scores := make(map[model.PersonaType]float64, len(behavioralProfiles))
	for _, p := range behavioralProfiles {
		score := rangeScore(engMean, p.EngagementDepth) + rangeScore(confMean, p.DecisionConfidence)
		if rtCount > 0 {
			score += rangeScore(rtSum/float64(rtCount), p.ResponseTime)
		}
		scores[p.Persona] = score
	}

	persona, best := leadingPersona(scores)
	return model.PersonaPrediction{
		Persona:    persona,
		Confidence: math.Min(best/confidenceDivisor, 1),
		Scores:     scores,
	}
}

func rangeScore(v float64, r metricRange) float64 {
	if v >= r.Min && v <= r.Max {
		return inRangeScore
	}
	dist := r.Min - v
	if v > r.Max {
		dist = v - r.Max
	}
	width := math.Max(r.Max-r.Min, rangeWidthFloor)
	return math.Max(0, maxProximityScore*(1-dist/width))
}
