package model

// QuestionType defines how a question is presented and validated
type QuestionType string

const (
	QuestionMultipleChoice        QuestionType = "multiple_choice"
	QuestionScaleRating           QuestionType = "scale_rating"
	QuestionTextInput             QuestionType = "text_input"
	QuestionScenarioSelection     QuestionType = "scenario_selection"
	QuestionVisualPattern         QuestionType = "visual_pattern"
	QuestionBehavioralObservation QuestionType = "behavioral_observation"
)

// ScaleRange bounds a scale_rating answer (inclusive)
type ScaleRange struct {
	Min    int      `json:"min" bson:"min"`
	Max    int      `json:"max" bson:"max"`
	Labels []string `json:"labels,omitempty" bson:"labels,omitempty"`
}

// Question is a bank entry. Bank entries are never mutated; presentation works on Clone().
type Question struct {
	ID                  string            `json:"id" bson:"id"`
	Type                QuestionType      `json:"type" bson:"type"`
	Text                string            `json:"text" bson:"text"`
	Options             []string          `json:"options,omitempty" bson:"options,omitempty"`
	ScaleRange          *ScaleRange       `json:"scaleRange,omitempty" bson:"scaleRange,omitempty"`
	CulturalAdaptations map[string]string `json:"culturalAdaptations,omitempty" bson:"culturalAdaptations,omitempty"` // context tag -> text
	IndustrySpecific    bool              `json:"industrySpecific" bson:"industrySpecific"`
	Industries          []string          `json:"industries,omitempty" bson:"industries,omitempty"` // lower-case industry tags
	Category            string            `json:"category,omitempty" bson:"category,omitempty"`
	RequiredForPersona  []PersonaType     `json:"requiredForPersona,omitempty" bson:"requiredForPersona,omitempty"`
	ParentID            string            `json:"parentId,omitempty" bson:"parentId,omitempty"` // set on synthesized follow-ups
}

// Clone returns a deep copy safe to adapt
func (q Question) Clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	if q.ScaleRange != nil {
		sr := *q.ScaleRange
		if q.ScaleRange.Labels != nil {
			sr.Labels = append([]string(nil), q.ScaleRange.Labels...)
		}
		c.ScaleRange = &sr
	}
	if q.CulturalAdaptations != nil {
		c.CulturalAdaptations = make(map[string]string, len(q.CulturalAdaptations))
		for k, v := range q.CulturalAdaptations {
			c.CulturalAdaptations[k] = v
		}
	}
	if q.Industries != nil {
		c.Industries = append([]string(nil), q.Industries...)
	}
	if q.RequiredForPersona != nil {
		c.RequiredForPersona = append([]PersonaType(nil), q.RequiredForPersona...)
	}
	return c
}

// RequiredFor reports whether the question is tagged as needed to confirm persona p
func (q Question) RequiredFor(p PersonaType) bool {
	for _, rp := range q.RequiredForPersona {
		if rp == p {
			return true
		}
	}
	return false
}

// HasOption reports whether value is one of the question's options
func (q Question) HasOption(value string) bool {
	for _, o := range q.Options {
		if o == value {
			return true
		}
	}
	return false
}

// Progress describes the position of the presented question
type Progress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// PresentedQuestion is an adapted question ready to be shown to a respondent
type PresentedQuestion struct {
	Question        Question `json:"question"`
	Progress        Progress `json:"progress"`
	CulturalContext string   `json:"culturalContext,omitempty"` // adaptation tag applied, if any
	Industry        string   `json:"industry,omitempty"`
}
