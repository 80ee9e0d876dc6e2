package assessment

import "readiness/internal/model"

const followUpSuffix = "_followup"

type conversationTurn struct {
	ID                  string
	Prompt              string
	FollowUp            string
	Keywords            []string
	Triggers            []string
	CulturalAdaptations map[string]string
}

var conversationBank = []conversationTurn{
	{
		ID:       "cv_001",
		Prompt:   "Tell us about your role and the decisions you are responsible for.",
		FollowUp: "Could you say more about which decisions you make yourself and which you pass to others?",
		Keywords: []string{"decide", "approve", "budget", "strategy", "manage", "lead", "report"},
		Triggers: []string{"decide", "decision", "approve", "responsible", "lead", "manage", "owner", "i own"},
		CulturalAdaptations: map[string]string{
			"kenyan":       "Tell us about your role, including any family business or chama you help run, and the decisions you are responsible for.",
			"east_african": "Tell us about your role in your organization and community and the decisions you are responsible for.",
		},
	},
	{
		ID:       "cv_002",
		Prompt:   "Describe the team you work with and how it is organized.",
		FollowUp: "Roughly how many people are involved, and how do you work together day to day?",
		Keywords: []string{"team", "people", "staff", "department", "remote", "office"},
		Triggers: []string{"team", "people", "staff", "members", "report", "department"},
	},
	{
		ID:       "cv_003",
		Prompt:   "How does your organization usually decide to adopt a new technology?",
		FollowUp: "Can you walk us through the last time a new tool was adopted and who signed off?",
		Keywords: []string{"board", "committee", "budget", "pilot", "vendor", "approval"},
		Triggers: []string{"approve", "approval", "committee", "board", "budget", "pilot", "test", "consensus", "decide"},
		CulturalAdaptations: map[string]string{
			"east_african": "How does your organization, or the elders and leaders around it, usually decide to adopt a new technology?",
		},
	},
	{
		ID:       "cv_004",
		Prompt:   "What experience have you had with AI tools so far?",
		FollowUp: "Which AI tools have you tried, and what happened when you used them?",
		Keywords: []string{"chatgpt", "automation", "model", "data", "copilot", "assistant"},
		Triggers: []string{"artificial intelligence", "machine learning", "genai", "llm", "chatgpt", "automat", "model", "tool", "pilot", "never"},
	},
	{
		ID:       "cv_005",
		Prompt:   "When would you like to see AI delivering results for your team, and what would success look like?",
		FollowUp: "What would you need to see in the next few months to call it a success?",
		Keywords: []string{"revenue", "cost", "time", "customers", "quality"},
		Triggers: []string{"month", "quarter", "year", "soon", "immediately", "weeks", "success"},
	},
}

func (t conversationTurn) question() model.Question {
	q := model.Question{
		ID:       t.ID,
		Type:     model.QuestionTextInput,
		Text:     t.Prompt,
		Category: "conversation",
	}
	if len(t.CulturalAdaptations) > 0 {
		q.CulturalAdaptations = make(map[string]string, len(t.CulturalAdaptations))
		for k, v := range t.CulturalAdaptations {
			q.CulturalAdaptations[k] = v
		}
	}
	return q
}

func (t conversationTurn) followUpQuestion() model.Question {
	return model.Question{
		ID:       t.ID + followUpSuffix,
		Type:     model.QuestionTextInput,
		Text:     t.FollowUp,
		Category: "conversation",
		ParentID: t.ID,
	}
}
