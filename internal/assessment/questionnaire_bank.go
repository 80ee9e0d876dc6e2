package assessment

import "readiness/internal/model"

// Questionnaire categories, keyed by id prefix
const (
	categoryAuthority = "sa"
	categoryInfluence = "oi"
	categoryResources = "rr"
	categoryAI        = "ai"
	categoryIndustry  = "industry"
)

// backfillCategories is the tie-break order when choosing the least covered category
var backfillCategories = []string{categoryAuthority, categoryInfluence, categoryResources, categoryAI}

// Answers with scoring weight
const (
	roleFinalDecision  = "I make final strategic decisions for my organization"
	roleInfluence      = "I significantly influence strategic decisions"
	roleContribute     = "I contribute input to strategic decisions"
	roleImplement      = "I implement strategies defined by others"
	roleExploring      = "I am still exploring how strategy works where I am"
	teamSolo           = "Just me"
	teamSmall          = "2-10 people"
	teamMedium         = "11-50 people"
	teamLarge          = "More than 50 people"
	budgetNone         = "No dedicated budget"
	budgetSmall        = "Less than $50K"
	budgetMedium       = "$50K - $250K"
	budgetLarge        = "$250K - $1M"
	budgetEnterprise   = "Over $1M"
	questionRole       = "sa_001"
	questionAuthority  = "sa_002"
	questionTeamSize   = "rr_001"
	questionBudget     = "rr_002"
	questionAIFamiliar = "ai_001"
)

var seniorPersonas = []model.PersonaType{model.PersonaArchitect, model.PersonaCatalyst, model.PersonaContributor}

var questionnaireBank = []model.Question{
	{
		ID:   questionRole,
		Type: model.QuestionMultipleChoice,
		Text: "Which statement best describes your role in strategic decisions at your organization?",
		Options: []string{
			roleFinalDecision,
			roleInfluence,
			roleContribute,
			roleImplement,
			roleExploring,
		},
		CulturalAdaptations: map[string]string{
			"kenyan":       "Thinking about how decisions are made in your organization (including any chama or family business you run), which statement fits your role best?",
			"east_african": "Thinking about how decisions are taken in your organization and community, which statement fits your role best?",
		},
		Category: categoryAuthority,
	},
	{
		ID:         questionAuthority,
		Type:       model.QuestionScaleRating,
		Text:       "How much authority do you have to approve new technology initiatives?",
		ScaleRange: &model.ScaleRange{Min: 1, Max: 5, Labels: []string{"None", "Little", "Some", "Significant", "Full"}},
		CulturalAdaptations: map[string]string{
			"kenyan": "If a new technology idea came up tomorrow, how much say would you have in approving it?",
		},
		Category:           categoryAuthority,
		RequiredForPersona: seniorPersonas,
	},
	{
		ID:      "oi_001",
		Type:    model.QuestionMultipleChoice,
		Text:    "How often do colleagues ask for your view on technology direction?",
		Options: []string{"Rarely", "Sometimes", "Often", "Almost always"},
		CulturalAdaptations: map[string]string{
			"east_african": "How often do colleagues or community members come to you for advice on technology?",
		},
		Category:           categoryInfluence,
		RequiredForPersona: []model.PersonaType{model.PersonaCatalyst},
	},
	{
		ID:         "oi_002",
		Type:       model.QuestionScaleRating,
		Text:       "How comfortable are you championing change across teams?",
		ScaleRange: &model.ScaleRange{Min: 1, Max: 5, Labels: []string{"Not at all", "Slightly", "Moderately", "Very", "Extremely"}},
		Category:   categoryInfluence,
	},
	{
		ID:      questionTeamSize,
		Type:    model.QuestionMultipleChoice,
		Text:    "How many people report to you directly or indirectly?",
		Options: []string{teamSolo, teamSmall, teamMedium, teamLarge},
		CulturalAdaptations: map[string]string{
			"kenyan": "How many people work under you, including casual or seasonal staff?",
		},
		Category:           categoryResources,
		RequiredForPersona: seniorPersonas,
	},
	{
		ID:      questionBudget,
		Type:    model.QuestionMultipleChoice,
		Text:    "What annual budget do you control for technology and innovation?",
		Options: []string{budgetNone, budgetSmall, budgetMedium, budgetLarge, budgetEnterprise},
		CulturalAdaptations: map[string]string{
			"kenyan": "Roughly what yearly budget (in USD equivalent) do you control for technology and new ideas?",
		},
		Category:           categoryResources,
		RequiredForPersona: seniorPersonas,
	},
	{
		ID:      questionAIFamiliar,
		Type:    model.QuestionMultipleChoice,
		Text:    "How familiar are you with AI tools in your daily work?",
		Options: []string{"Never used them", "Tried them a few times", "Use them weekly", "Use them daily", "I build or deploy them"},
		CulturalAdaptations: map[string]string{
			"east_african": "How familiar are you with AI tools such as chat assistants or M-Pesa fraud alerts in your daily work?",
		},
		Category:           categoryAI,
		RequiredForPersona: []model.PersonaType{model.PersonaExplorer, model.PersonaObserver},
	},
	{
		ID:                 "ai_002",
		Type:               model.QuestionTextInput,
		Text:               "Describe one process in your organization you would most like AI to improve.",
		Category:           categoryAI,
		RequiredForPersona: []model.PersonaType{model.PersonaExplorer, model.PersonaObserver},
	},
	{
		ID:               "tech_001",
		Type:             model.QuestionMultipleChoice,
		Text:             "How is software delivery organized in your company?",
		Options:          []string{"Outsourced", "Small in-house team", "Several product teams", "Platform and product teams"},
		IndustrySpecific: true,
		Industries:       []string{"technology"},
		Category:         categoryIndustry,
	},
	{
		ID:               "tech_002",
		Type:             model.QuestionScaleRating,
		Text:             "How mature is your data infrastructure for machine learning workloads?",
		ScaleRange:       &model.ScaleRange{Min: 1, Max: 5},
		IndustrySpecific: true,
		Industries:       []string{"technology"},
		Category:         categoryIndustry,
	},
	{
		ID:               "tech_003",
		Type:             model.QuestionMultipleChoice,
		Text:             "Where do AI features sit on your product roadmap?",
		Options:          []string{"Not planned", "Being researched", "Next two quarters", "Already shipping"},
		IndustrySpecific: true,
		Industries:       []string{"technology"},
		Category:         categoryIndustry,
	},
	{
		ID:               "tech_004",
		Type:             model.QuestionTextInput,
		Text:             "Which engineering bottleneck would AI assistance remove first?",
		IndustrySpecific: true,
		Industries:       []string{"technology"},
		Category:         categoryIndustry,
	},
	{
		ID:               "fin_001",
		Type:             model.QuestionMultipleChoice,
		Text:             "How does regulation shape your technology decisions?",
		Options:          []string{"Barely", "We check with compliance", "Compliance signs off every change", "Regulators review major changes"},
		IndustrySpecific: true,
		Industries:       []string{"finance", "financial services", "banking"},
		Category:         categoryIndustry,
	},
	{
		ID:               "fin_002",
		Type:             model.QuestionScaleRating,
		Text:             "How ready is your risk team to evaluate AI-driven decisions?",
		ScaleRange:       &model.ScaleRange{Min: 1, Max: 5},
		IndustrySpecific: true,
		Industries:       []string{"finance", "financial services", "banking"},
		Category:         categoryIndustry,
	},
	{
		ID:               "health_001",
		Type:             model.QuestionMultipleChoice,
		Text:             "Where would AI help your patients or clinicians most?",
		Options:          []string{"Scheduling", "Diagnostics support", "Records and documentation", "Patient follow-up"},
		IndustrySpecific: true,
		Industries:       []string{"healthcare", "health"},
		Category:         categoryIndustry,
	},
	{
		ID:               "health_002",
		Type:             model.QuestionScaleRating,
		Text:             "How digitized are your patient records today?",
		ScaleRange:       &model.ScaleRange{Min: 1, Max: 5},
		IndustrySpecific: true,
		Industries:       []string{"healthcare", "health"},
		Category:         categoryIndustry,
	},
	{
		ID:               "agri_001",
		Type:             model.QuestionMultipleChoice,
		Text:             "Which part of your agricultural operation produces the most data?",
		Options:          []string{"Planting and inputs", "Weather and soil", "Harvest and storage", "Sales and logistics"},
		IndustrySpecific: true,
		Industries:       []string{"agriculture"},
		Category:         categoryIndustry,
		CulturalAdaptations: map[string]string{
			"kenyan": "Which part of your farm or cooperative produces the most records or data?",
		},
	},
}

// roleWeights maps sa_001 answers to authority and influence points
var roleWeights = map[string]questionnaireTotals{
	roleFinalDecision: {Authority: 5, Influence: 2},
	roleInfluence:     {Authority: 3, Influence: 3},
	roleContribute:    {Authority: 2, Influence: 1},
	roleImplement:     {Authority: 1},
	roleExploring:     {},
}

var teamSizeWeights = map[string]questionnaireTotals{
	teamSolo:   {},
	teamSmall:  {Resources: 1, Influence: 1},
	teamMedium: {Resources: 1, Influence: 2},
	teamLarge:  {Resources: 2, Influence: 2},
}

var budgetWeights = map[string]questionnaireTotals{
	budgetNone:       {},
	budgetSmall:      {Resources: 1},
	budgetMedium:     {Resources: 2},
	budgetLarge:      {Resources: 3},
	budgetEnterprise: {Resources: 3},
}
