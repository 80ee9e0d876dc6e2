package assessment

import "readiness/internal/model"

type businessScenario struct {
	ID                  string
	Title               string
	Situation           string
	Stakeholders        []string
	CulturalAdaptations map[string]string
	Choices             []Choice
}

var scenarioBank = []businessScenario{
	{
		ID:           "sc_001",
		Title:        "Customer service backlog",
		Situation:    "Your customer service queue has doubled in three months. The operations lead wants more staff, finance wants costs flat, and a vendor is pitching an AI chat assistant. What do you do?",
		Stakeholders: []string{"operations lead", "finance", "vendor"},
		CulturalAdaptations: map[string]string{
			"kenyan":       "Customer calls and WhatsApp messages have doubled in three months. Your operations lead wants more staff, finance wants costs flat, and a Nairobi vendor is pitching an AI chat assistant. What do you do?",
			"east_african": "Customer messages have doubled in three months across your regional branches. Operations wants more staff, finance wants costs flat, and a vendor offers an AI chat assistant. What do you do?",
		},
		Choices: []Choice{
			{
				ID:               "sc_001_a",
				Text:             "Approve a funded pilot of the assistant with clear success metrics and own the decision",
				Reasoning:        "Commits budget and accountability to a measured trial",
				Implications:     []string{"budget allocated", "executive ownership", "measurable outcome"},
				PersonaAlignment: []model.PersonaType{model.PersonaArchitect},
			},
			{
				ID:               "sc_001_b",
				Text:             "Bring operations and finance together and build the case for a pilot",
				Reasoning:        "Aligns competing stakeholders before committing",
				Implications:     []string{"cross-team alignment", "shared business case"},
				PersonaAlignment: []model.PersonaType{model.PersonaCatalyst, model.PersonaContributor},
			},
			{
				ID:               "sc_001_c",
				Text:             "Ask to join the evaluation team and test the assistant on real tickets",
				Reasoning:        "Contributes hands-on evidence to the decision",
				Implications:     []string{"practical evaluation", "team involvement"},
				PersonaAlignment: []model.PersonaType{model.PersonaContributor, model.PersonaExplorer},
			},
			{
				ID:               "sc_001_d",
				Text:             "Wait to see how similar companies get on before taking a position",
				Reasoning:        "Avoids risk until others have proven the approach",
				Implications:     []string{"delayed decision", "low exposure"},
				PersonaAlignment: []model.PersonaType{model.PersonaObserver},
			},
		},
	},
	{
		ID:           "sc_002",
		Title:        "Data sharing request",
		Situation:    "A partner proposes pooling customer data to train a shared forecasting model. Legal is cautious, sales is enthusiastic, and IT says the data is messy. How do you respond?",
		Stakeholders: []string{"partner", "legal", "sales", "IT"},
		CulturalAdaptations: map[string]string{
			"kenyan": "A partner proposes pooling customer data to train a shared forecasting model. Legal raises the Data Protection Act, sales is enthusiastic, and IT says the data is messy. How do you respond?",
		},
		Choices: []Choice{
			{
				ID:               "sc_002_a",
				Text:             "Set the data governance terms yourself and sign off on a limited agreement",
				Reasoning:        "Uses decision rights to unblock while bounding risk",
				Implications:     []string{"governance defined", "agreement signed"},
				PersonaAlignment: []model.PersonaType{model.PersonaArchitect},
			},
			{
				ID:               "sc_002_b",
				Text:             "Champion the idea with leadership and get legal and IT to agree on safeguards",
				Reasoning:        "Drives adoption through influence rather than authority",
				Implications:     []string{"leadership sponsorship", "safeguards agreed"},
				PersonaAlignment: []model.PersonaType{model.PersonaCatalyst},
			},
			{
				ID:               "sc_002_c",
				Text:             "Volunteer to clean up the data so the team is ready if it goes ahead",
				Reasoning:        "Prepares the groundwork others will depend on",
				Implications:     []string{"data quality improved", "readiness"},
				PersonaAlignment: []model.PersonaType{model.PersonaContributor},
			},
			{
				ID:               "sc_002_d",
				Text:             "Read up on data partnerships before forming a view",
				Reasoning:        "Builds understanding first",
				Implications:     []string{"learning", "no immediate action"},
				PersonaAlignment: []model.PersonaType{model.PersonaExplorer, model.PersonaObserver},
			},
		},
	},
	{
		ID:           "sc_003",
		Title:        "Automation and jobs",
		Situation:    "An automation proposal would remove most manual data entry. Team members are worried about their roles and a union representative has asked for a meeting. What is your move?",
		Stakeholders: []string{"team members", "union representative", "management"},
		CulturalAdaptations: map[string]string{
			"east_african": "An automation proposal would remove most manual data entry. Staff are worried about their livelihoods and elders in the community have asked to discuss it. What is your move?",
		},
		Choices: []Choice{
			{
				ID:               "sc_003_a",
				Text:             "Decide on a reskilling plan, fund it and announce the rollout timeline",
				Reasoning:        "Pairs the change with committed investment in people",
				Implications:     []string{"reskilling budget", "clear timeline"},
				PersonaAlignment: []model.PersonaType{model.PersonaArchitect, model.PersonaCatalyst},
			},
			{
				ID:               "sc_003_b",
				Text:             "Run listening sessions and become the voice for the change across teams",
				Reasoning:        "Builds trust and momentum for the transformation",
				Implications:     []string{"trust", "change advocacy"},
				PersonaAlignment: []model.PersonaType{model.PersonaCatalyst},
			},
			{
				ID:               "sc_003_c",
				Text:             "Document the current process so the team can help shape the new one",
				Reasoning:        "Keeps the team involved in implementation",
				Implications:     []string{"process documentation", "team input"},
				PersonaAlignment: []model.PersonaType{model.PersonaContributor},
			},
			{
				ID:               "sc_003_d",
				Text:             "Stay out of it until management makes a decision",
				Reasoning:        "Defers to others",
				Implications:     []string{"no involvement"},
				PersonaAlignment: []model.PersonaType{model.PersonaObserver},
			},
		},
	},
	{
		ID:           "sc_004",
		Title:        "Competitor launch",
		Situation:    "A competitor has launched an AI-powered pricing feature and customers are asking about it. Your board meets next week. What do you bring to the table?",
		Stakeholders: []string{"board", "customers", "product team"},
		Choices: []Choice{
			{
				ID:               "sc_004_a",
				Text:             "A costed plan for our own feature with a go or no-go recommendation",
				Reasoning:        "Frames a decision the board can act on",
				Implications:     []string{"strategic plan", "investment request"},
				PersonaAlignment: []model.PersonaType{model.PersonaArchitect},
			},
			{
				ID:               "sc_004_b",
				Text:             "A coalition of product and sales leaders ready to back a response",
				Reasoning:        "Shows organizational momentum",
				Implications:     []string{"stakeholder support", "momentum"},
				PersonaAlignment: []model.PersonaType{model.PersonaCatalyst},
			},
			{
				ID:               "sc_004_c",
				Text:             "A quick prototype the team built to show what is possible",
				Reasoning:        "Demonstrates capability through delivery",
				Implications:     []string{"prototype", "delivery evidence"},
				PersonaAlignment: []model.PersonaType{model.PersonaContributor, model.PersonaExplorer},
			},
			{
				ID:               "sc_004_d",
				Text:             "Questions about what the feature actually does",
				Reasoning:        "Seeks to understand before acting",
				Implications:     []string{"research"},
				PersonaAlignment: []model.PersonaType{model.PersonaExplorer},
			},
		},
	},
	{
		ID:           "sc_005",
		Title:        "Failed pilot",
		Situation:    "An AI pilot missed its targets. The sponsor wants to stop, the team believes it needs two more months, and finance wants a recommendation. What do you advise?",
		Stakeholders: []string{"sponsor", "project team", "finance"},
		CulturalAdaptations: map[string]string{
			"kenyan": "An AI pilot missed its targets. The sponsor wants to stop, the team believes it needs two more months before the next harvest season, and finance wants a recommendation. What do you advise?",
		},
		Choices: []Choice{
			{
				ID:               "sc_005_a",
				Text:             "Extend with a reduced budget and a hard stop if the next milestone is missed",
				Reasoning:        "Balances sunk cost against learning with firm governance",
				Implications:     []string{"conditional funding", "milestone governance"},
				PersonaAlignment: []model.PersonaType{model.PersonaArchitect},
			},
			{
				ID:               "sc_005_b",
				Text:             "Make the case to the sponsor using what the team learned",
				Reasoning:        "Uses influence to keep the initiative alive",
				Implications:     []string{"sponsor persuasion", "lessons shared"},
				PersonaAlignment: []model.PersonaType{model.PersonaCatalyst, model.PersonaContributor},
			},
			{
				ID:               "sc_005_c",
				Text:             "Write up what went wrong so the next attempt goes better",
				Reasoning:        "Captures learning for future work",
				Implications:     []string{"retrospective", "knowledge capture"},
				PersonaAlignment: []model.PersonaType{model.PersonaExplorer},
			},
			{
				ID:               "sc_005_d",
				Text:             "Accept the sponsor's call",
				Reasoning:        "Follows the existing authority",
				Implications:     []string{"project stopped"},
				PersonaAlignment: []model.PersonaType{model.PersonaObserver},
			},
		},
	},
}

func (s businessScenario) question() model.Question {
	q := model.Question{
		ID:       s.ID,
		Type:     model.QuestionScenarioSelection,
		Text:     s.Situation,
		Options:  choiceTexts(s.Choices),
		Category: "scenario",
	}
	if len(s.CulturalAdaptations) > 0 {
		q.CulturalAdaptations = make(map[string]string, len(s.CulturalAdaptations))
		for k, v := range s.CulturalAdaptations {
			q.CulturalAdaptations[k] = v
		}
	}
	return q
}
