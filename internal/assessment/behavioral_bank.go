package assessment

import "readiness/internal/model"

// Metric ranges per persona. Inside a range scores 3; outside decays toward 0.
type metricRange struct {
	Min float64
	Max float64
}

type behavioralProfile struct {
	Persona            model.PersonaType
	ResponseTime       metricRange
	EngagementDepth    metricRange
	DecisionConfidence metricRange
}

var behavioralProfiles = []behavioralProfile{
	{model.PersonaArchitect, metricRange{10, 30}, metricRange{6, 8}, metricRange{8, 10}},
	{model.PersonaCatalyst, metricRange{15, 45}, metricRange{7, 10}, metricRange{6, 8}},
	{model.PersonaContributor, metricRange{20, 60}, metricRange{5, 8}, metricRange{5, 7}},
	{model.PersonaExplorer, metricRange{30, 90}, metricRange{6, 9}, metricRange{3, 6}},
	{model.PersonaObserver, metricRange{45, 180}, metricRange{1, 5}, metricRange{1, 4}},
}

var (
	confidenceMarkers  = []string{"definitely", "certainly", "absolutely", "confident", "clearly", "always", "without doubt", "i know"}
	uncertaintyMarkers = []string{"maybe", "perhaps", "not sure", "unsure", "might", "possibly", "i think", "probably", "i guess"}
)

var behavioralBank = []model.Question{
	{
		ID:      "bh_001",
		Type:    model.QuestionMultipleChoice,
		Text:    "A new AI tool is available to your team today. What is your first move?",
		Options: []string{"Roll it out", "Try it myself", "Ask around first", "Wait for guidance"},
		CulturalAdaptations: map[string]string{
			"kenyan": "A new AI tool, like the ones banks and telcos are launching, is available to your team today. What is your first move?",
		},
	},
	{
		ID:         "bh_002",
		Type:       model.QuestionScaleRating,
		Text:       "How quickly do you usually make decisions about new tools?",
		ScaleRange: &model.ScaleRange{Min: 1, Max: 10, Labels: []string{"Very slowly", "Immediately"}},
	},
	{
		ID:   "bh_003",
		Type: model.QuestionBehavioralObservation,
		Text: "Walk us through how you would decide whether to automate a weekly report.",
	},
	{
		ID:   "bh_004",
		Type: model.QuestionTextInput,
		Text: "What would make you confident that an AI recommendation is right?",
	},
	{
		ID:      "bh_005",
		Type:    model.QuestionMultipleChoice,
		Text:    "Your manager asks for an AI plan by Friday. How do you feel?",
		Options: []string{"Ready", "Energized", "Stretched", "Overwhelmed"},
	},
	{
		ID:   "bh_006",
		Type: model.QuestionBehavioralObservation,
		Text: "Describe a time you changed your mind about a technology decision.",
		CulturalAdaptations: map[string]string{
			"east_african": "Describe a time you or your community changed your mind about a technology.",
		},
	},
}

// confirmQuestions probe the likely persona when confidence is low
var confirmQuestions = map[model.PersonaType]model.Question{
	model.PersonaArchitect: {
		ID: "bh_confirm_architect", Type: model.QuestionTextInput, Category: "confirm",
		Text: "Tell us about the last budget or strategy decision you signed off on.",
	},
	model.PersonaCatalyst: {
		ID: "bh_confirm_catalyst", Type: model.QuestionTextInput, Category: "confirm",
		Text: "Tell us about a change you persuaded other teams to adopt.",
	},
	model.PersonaContributor: {
		ID: "bh_confirm_contributor", Type: model.QuestionTextInput, Category: "confirm",
		Text: "Tell us about a project where you turned a plan into a working result.",
	},
	model.PersonaExplorer: {
		ID: "bh_confirm_explorer", Type: model.QuestionTextInput, Category: "confirm",
		Text: "What have you been learning about recently, and why?",
	},
	model.PersonaObserver: {
		ID: "bh_confirm_observer", Type: model.QuestionTextInput, Category: "confirm",
		Text: "What would you need to see before getting involved in a new technology?",
	},
}
