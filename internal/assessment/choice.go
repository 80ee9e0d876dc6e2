package assessment

import (
	"fmt"
	"math"
	"strings"

	"readiness/internal/model"
)

// Choice is one selectable answer of a scenario or visual pattern
type Choice struct {
	ID               string
	Text             string
	Reasoning        string
	Implications     []string
	PersonaAlignment []model.PersonaType
}

func (c Choice) selection() *model.ChoiceSelection {
	return &model.ChoiceSelection{
		ChoiceID:         c.ID,
		Reasoning:        c.Reasoning,
		Implications:     append([]string(nil), c.Implications...),
		PersonaAlignment: append([]model.PersonaType(nil), c.PersonaAlignment...),
	}
}

// resolveChoice finds the selected choice by recorded selection id, by choice text
// or id, or by a zero-based numeric index.
func resolveChoice(choices []Choice, value model.ResponseValue) (Choice, error) {
	if value.Selection != nil {
		for _, c := range choices {
			if c.ID == value.Selection.ChoiceID {
				return c, nil
			}
		}
	}
	if text := strings.TrimSpace(value.Text); text != "" {
		for _, c := range choices {
			if c.Text == text || strings.EqualFold(c.ID, text) {
				return c, nil
			}
		}
	}
	if value.Number != nil {
		n := *value.Number
		if n == math.Trunc(n) && n >= 0 && int(n) < len(choices) {
			return choices[int(n)], nil
		}
	}
	return Choice{}, fmt.Errorf("%w: selection does not match any choice", ErrInvalidResponse)
}

// recordChoice replaces the raw answer with the choice text and its selection details
func recordChoice(resp model.AssessmentResponse, c Choice) model.AssessmentResponse {
	recorded := resp.Clone()
	recorded.ResponseValue = model.ResponseValue{
		Text:      c.Text,
		Selection: c.selection(),
	}
	return recorded
}

func choiceTexts(choices []Choice) []string {
	texts := make([]string, len(choices))
	for i, c := range choices {
		texts[i] = c.Text
	}
	return texts
}

// alignmentTally counts persona alignment over selected choices
type alignmentTally struct {
	counts   map[model.PersonaType]float64
	selected int
}

func newAlignmentTally() alignmentTally {
	return alignmentTally{counts: make(map[model.PersonaType]float64)}
}

func (t *alignmentTally) add(c Choice) {
	for _, p := range c.PersonaAlignment {
		t.counts[p]++
	}
	t.selected++
}

func (t alignmentTally) predict() model.PersonaPrediction {
	if t.selected == 0 {
		return model.PersonaPrediction{Persona: model.PersonaObserver}
	}
	persona, score := leadingPersona(t.counts)
	scores := make(map[model.PersonaType]float64, len(t.counts))
	for p, v := range t.counts {
		scores[p] = v
	}
	return model.PersonaPrediction{
		Persona:    persona,
		Confidence: math.Min(score/float64(t.selected), 1),
		Scores:     scores,
	}
}

func firstUnanswered(plan []model.Question, responses []model.AssessmentResponse) *model.Question {
	answered := answeredSet(responses)
	for _, q := range plan {
		if !answered[q.ID] {
			c := q.Clone()
			return &c
		}
	}
	return nil
}
