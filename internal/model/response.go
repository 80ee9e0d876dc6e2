package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Sentiment buckets used by the conversational analysis
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// ChoiceSelection is recorded instead of the raw choice text for scenario and visual answers
type ChoiceSelection struct {
	ChoiceID         string        `json:"choiceId" bson:"choiceId"`
	Reasoning        string        `json:"reasoning" bson:"reasoning"`
	Implications     []string      `json:"implications" bson:"implications"`
	PersonaAlignment []PersonaType `json:"personaAlignment" bson:"personaAlignment"`
}

// ConversationAnalysis is the signal set extracted from one free-text turn
type ConversationAnalysis struct {
	KeywordMatches []string          `json:"keywordMatches" bson:"keywordMatches"`
	Sentiment      string            `json:"sentiment" bson:"sentiment"`
	PersonaSignals []PersonaType     `json:"personaSignals" bson:"personaSignals"`
	Insights       map[string]string `json:"insights,omitempty" bson:"insights,omitempty"`
	WordCount      int               `json:"wordCount" bson:"wordCount"`
	TriggerMatched bool              `json:"triggerMatched" bson:"triggerMatched"`
}

// ResponseValue holds a string, a number, or a structured enrichment.
// On the wire a bare JSON string or number is accepted as well as an object.
type ResponseValue struct {
	Text         string                `json:"text,omitempty" bson:"text,omitempty"`
	Number       *float64              `json:"number,omitempty" bson:"number,omitempty"`
	Selection    *ChoiceSelection      `json:"selection,omitempty" bson:"selection,omitempty"`
	Conversation *ConversationAnalysis `json:"conversation,omitempty" bson:"conversation,omitempty"`
}

// TextValue builds a string response value
func TextValue(s string) ResponseValue {
	return ResponseValue{Text: s}
}

// NumberValue builds a numeric response value
func NumberValue(n float64) ResponseValue {
	return ResponseValue{Number: &n}
}

// Float returns the numeric value, parsing Text when no number was sent
func (v ResponseValue) Float() (float64, bool) {
	if v.Number != nil {
		return *v.Number, isFinite(*v.Number)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsEmpty reports whether nothing meaningful was answered
func (v ResponseValue) IsEmpty() bool {
	return strings.TrimSpace(v.Text) == "" && v.Number == nil && v.Selection == nil
}

type responseValueAlias ResponseValue

// MarshalJSON emits plain values as bare JSON scalars
func (v ResponseValue) MarshalJSON() ([]byte, error) {
	if v.Selection == nil && v.Conversation == nil {
		if v.Number != nil && v.Text == "" {
			return json.Marshal(*v.Number)
		}
		if v.Number == nil {
			return json.Marshal(v.Text)
		}
	}
	return json.Marshal(responseValueAlias(v))
}

// UnmarshalJSON accepts a string, a number or an object
func (v *ResponseValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = ResponseValue{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = ResponseValue{Text: s}
		return nil
	case '{':
		var alias responseValueAlias
		if err := json.Unmarshal(trimmed, &alias); err != nil {
			return err
		}
		*v = ResponseValue(alias)
		return nil
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*v = ResponseValue{Number: &n}
		return nil
	}
}

// AssessmentResponse is one recorded answer. Once appended to a session it is never edited.
type AssessmentResponse struct {
	QuestionID          string            `json:"questionId" bson:"questionId"`
	QuestionType        QuestionType      `json:"questionType" bson:"questionType"`
	ResponseValue       ResponseValue     `json:"responseValue" bson:"responseValue"`
	ResponseTimeSeconds *float64          `json:"responseTimeSeconds,omitempty" bson:"responseTimeSeconds,omitempty"`
	Metadata            map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// Metadata keys stamped by the orchestrator
const (
	MetaCulturalContext = "culturalContext"
	MetaIndustry        = "industry"
)

// ResponseTime returns the latency in seconds if it was captured
func (r AssessmentResponse) ResponseTime() (float64, bool) {
	if r.ResponseTimeSeconds == nil {
		return 0, false
	}
	return *r.ResponseTimeSeconds, true
}

// Clone copies the response so callers cannot alias slices or maps held by a session
func (r AssessmentResponse) Clone() AssessmentResponse {
	c := r
	if r.ResponseTimeSeconds != nil {
		t := *r.ResponseTimeSeconds
		c.ResponseTimeSeconds = &t
	}
	if r.Metadata != nil {
		c.Metadata = make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			c.Metadata[k] = v
		}
	}
	if r.ResponseValue.Number != nil {
		n := *r.ResponseValue.Number
		c.ResponseValue.Number = &n
	}
	if s := r.ResponseValue.Selection; s != nil {
		sel := *s
		sel.Implications = append([]string(nil), s.Implications...)
		sel.PersonaAlignment = append([]PersonaType(nil), s.PersonaAlignment...)
		c.ResponseValue.Selection = &sel
	}
	if a := r.ResponseValue.Conversation; a != nil {
		conv := *a
		conv.KeywordMatches = append([]string(nil), a.KeywordMatches...)
		conv.PersonaSignals = append([]PersonaType(nil), a.PersonaSignals...)
		if a.Insights != nil {
			conv.Insights = make(map[string]string, len(a.Insights))
			for k, v := range a.Insights {
				conv.Insights[k] = v
			}
		}
		c.ResponseValue.Conversation = &conv
	}
	return c
}
