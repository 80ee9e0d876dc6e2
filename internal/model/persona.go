package model

// PersonaType is the closed set of readiness classifications, ordered high to low
type PersonaType string

const (
	PersonaArchitect   PersonaType = "Strategic Architect"
	PersonaCatalyst    PersonaType = "Strategic Catalyst"
	PersonaContributor PersonaType = "Strategic Contributor"
	PersonaExplorer    PersonaType = "Strategic Explorer"
	PersonaObserver    PersonaType = "Strategic Observer"
)

// Personas lists every persona from highest to lowest authority/readiness.
// Tie-breaks across the engine resolve toward the earlier entry.
var Personas = []PersonaType{
	PersonaArchitect,
	PersonaCatalyst,
	PersonaContributor,
	PersonaExplorer,
	PersonaObserver,
}

// Valid reports whether p is one of the known personas
func (p PersonaType) Valid() bool {
	for _, known := range Personas {
		if p == known {
			return true
		}
	}
	return false
}

// PersonaPrediction is a strategy's current classification
type PersonaPrediction struct {
	Persona    PersonaType             `json:"persona" bson:"persona"`
	Confidence float64                 `json:"confidence" bson:"confidence"` // 0-1
	Scores     map[PersonaType]float64 `json:"scores,omitempty" bson:"scores,omitempty"`
}

// ResponsePattern is derived from a response list and never persisted on its own
type ResponsePattern struct {
	AverageResponseTime     float64        `json:"averageResponseTime" bson:"averageResponseTime"`
	ConsistencyScore        float64        `json:"consistencyScore" bson:"consistencyScore"` // 0-1
	EngagementLevel         float64        `json:"engagementLevel" bson:"engagementLevel"`   // 0-1
	PreferredQuestionTypes  []QuestionType `json:"preferredQuestionTypes" bson:"preferredQuestionTypes"`
	CulturalAdaptationsUsed []string       `json:"culturalAdaptationsUsed" bson:"culturalAdaptationsUsed"`
}
