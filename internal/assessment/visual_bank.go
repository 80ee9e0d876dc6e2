package assessment

import "readiness/internal/model"

// Complexity tiers, presented in this order
const (
	complexitySimple   = "simple"
	complexityModerate = "moderate"
	complexityComplex  = "complex"
)

var complexityRank = map[string]int{
	complexitySimple:   0,
	complexityModerate: 1,
	complexityComplex:  2,
}

type visualPattern struct {
	ID                  string
	Prompt              string
	Complexity          string
	Industries          []string // empty means relevant everywhere
	CulturalAdaptations map[string]string
	Choices             []Choice
}

var visualBank = []visualPattern{
	{
		ID:         "vp_001",
		Prompt:     "Which picture looks most like how decisions move through your organization?",
		Complexity: complexitySimple,
		Choices: []Choice{
			{ID: "vp_001_a", Text: "A single arrow from the top down", Reasoning: "Centralized decision ownership", Implications: []string{"clear authority"}, PersonaAlignment: []model.PersonaType{model.PersonaArchitect}},
			{ID: "vp_001_b", Text: "A hub with spokes to many teams", Reasoning: "Connector between groups", Implications: []string{"broad influence"}, PersonaAlignment: []model.PersonaType{model.PersonaCatalyst}},
			{ID: "vp_001_c", Text: "A chain of linked boxes", Reasoning: "Sequential hand-offs where each part delivers", Implications: []string{"execution focus"}, PersonaAlignment: []model.PersonaType{model.PersonaContributor}},
			{ID: "vp_001_d", Text: "Scattered dots with no lines", Reasoning: "Unclear or unknown flow", Implications: []string{"low visibility"}, PersonaAlignment: []model.PersonaType{model.PersonaExplorer, model.PersonaObserver}},
		},
	},
	{
		ID:         "vp_004",
		Prompt:     "This chart shows three teams adopting a new tool at different speeds. Where would you step in?",
		Complexity: complexityModerate,
		Choices: []Choice{
			{ID: "vp_004_a", Text: "Reallocate budget to the slowest team", Reasoning: "Directs resources to the constraint", Implications: []string{"resource control"}, PersonaAlignment: []model.PersonaType{model.PersonaArchitect}},
			{ID: "vp_004_b", Text: "Pair the fastest team with the slowest", Reasoning: "Spreads adoption through peers", Implications: []string{"peer influence"}, PersonaAlignment: []model.PersonaType{model.PersonaCatalyst}},
			{ID: "vp_004_c", Text: "Help the middle team finish their rollout", Reasoning: "Contributes where progress is closest", Implications: []string{"hands-on support"}, PersonaAlignment: []model.PersonaType{model.PersonaContributor}},
			{ID: "vp_004_d", Text: "Watch for another month before acting", Reasoning: "Gathers more signal first", Implications: []string{"delay"}, PersonaAlignment: []model.PersonaType{model.PersonaObserver}},
		},
	},
	{
		ID:         "vp_002",
		Prompt:     "Pick the shape that best matches your appetite for new technology.",
		Complexity: complexitySimple,
		CulturalAdaptations: map[string]string{
			"kenyan": "Pick the shape that best matches how quickly you take up new technology, like the move to mobile money.",
		},
		Choices: []Choice{
			{ID: "vp_002_a", Text: "A steep upward curve", Reasoning: "Early and decisive adoption", Implications: []string{"early adopter"}, PersonaAlignment: []model.PersonaType{model.PersonaArchitect, model.PersonaCatalyst}},
			{ID: "vp_002_b", Text: "A staircase", Reasoning: "Steady, planned adoption", Implications: []string{"incremental"}, PersonaAlignment: []model.PersonaType{model.PersonaContributor}},
			{ID: "vp_002_c", Text: "A winding path", Reasoning: "Curious, exploratory adoption", Implications: []string{"experimentation"}, PersonaAlignment: []model.PersonaType{model.PersonaExplorer}},
			{ID: "vp_002_d", Text: "A flat line", Reasoning: "Little movement", Implications: []string{"wait and see"}, PersonaAlignment: []model.PersonaType{model.PersonaObserver}},
		},
	},
	{
		ID:         "vp_005",
		Prompt:     "This deployment pipeline diagram has a bottleneck at code review. Which fix would you push for?",
		Complexity: complexityModerate,
		Industries: []string{"technology"},
		Choices: []Choice{
			{ID: "vp_005_a", Text: "Mandate AI-assisted review across all teams", Reasoning: "Sets direction with authority", Implications: []string{"policy change"}, PersonaAlignment: []model.PersonaType{model.PersonaArchitect}},
			{ID: "vp_005_b", Text: "Run a trial with one team and share the results widely", Reasoning: "Builds evidence to persuade", Implications: []string{"advocacy"}, PersonaAlignment: []model.PersonaType{model.PersonaCatalyst}},
			{ID: "vp_005_c", Text: "Take on more reviews myself", Reasoning: "Direct contribution", Implications: []string{"personal effort"}, PersonaAlignment: []model.PersonaType{model.PersonaContributor}},
			{ID: "vp_005_d", Text: "Research how other companies solved it", Reasoning: "Learning before acting", Implications: []string{"research"}, PersonaAlignment: []model.PersonaType{model.PersonaExplorer}},
		},
	},
	{
		ID:         "vp_003",
		Prompt:     "Which of these dashboards would you want on your wall?",
		Complexity: complexitySimple,
		Choices: []Choice{
			{ID: "vp_003_a", Text: "Revenue and cost against targets", Reasoning: "Accountable for outcomes", Implications: []string{"financial ownership"}, PersonaAlignment: []model.PersonaType{model.PersonaArchitect}},
			{ID: "vp_003_b", Text: "Adoption across departments", Reasoning: "Tracks change momentum", Implications: []string{"change tracking"}, PersonaAlignment: []model.PersonaType{model.PersonaCatalyst}},
			{ID: "vp_003_c", Text: "My team's task board", Reasoning: "Focused on delivery", Implications: []string{"execution"}, PersonaAlignment: []model.PersonaType{model.PersonaContributor}},
			{ID: "vp_003_d", Text: "Industry news feed", Reasoning: "Keeps an eye on the landscape", Implications: []string{"awareness"}, PersonaAlignment: []model.PersonaType{model.PersonaExplorer, model.PersonaObserver}},
		},
	},
	{
		ID:         "vp_006",
		Prompt:     "This network map shows information flowing between partners, regulators and customers. Where is the biggest opportunity?",
		Complexity: complexityComplex,
		CulturalAdaptations: map[string]string{
			"east_african": "This network map shows information flowing between partners, county regulators, cooperatives and customers. Where is the biggest opportunity?",
		},
		Choices: []Choice{
			{ID: "vp_006_a", Text: "Restructure the whole network around a shared platform", Reasoning: "System-level redesign", Implications: []string{"platform strategy"}, PersonaAlignment: []model.PersonaType{model.PersonaArchitect}},
			{ID: "vp_006_b", Text: "Strengthen the partner links that carry the most trust", Reasoning: "Works through relationships", Implications: []string{"relationship leverage"}, PersonaAlignment: []model.PersonaType{model.PersonaCatalyst}},
			{ID: "vp_006_c", Text: "Automate the customer-facing link", Reasoning: "Concrete improvement in one area", Implications: []string{"targeted delivery"}, PersonaAlignment: []model.PersonaType{model.PersonaContributor}},
			{ID: "vp_006_d", Text: "I would need more information to say", Reasoning: "Uncertain", Implications: []string{"information gap"}, PersonaAlignment: []model.PersonaType{model.PersonaObserver}},
		},
	},
	{
		ID:         "vp_007",
		Prompt:     "This risk heat map shows credit models drifting in two regions. How do you respond?",
		Complexity: complexityComplex,
		Industries: []string{"finance", "financial services", "banking"},
		Choices: []Choice{
			{ID: "vp_007_a", Text: "Freeze the affected models and commission a review", Reasoning: "Exercises control", Implications: []string{"risk governance"}, PersonaAlignment: []model.PersonaType{model.PersonaArchitect}},
			{ID: "vp_007_b", Text: "Convene risk and data teams to agree a fix", Reasoning: "Coordinates across functions", Implications: []string{"alignment"}, PersonaAlignment: []model.PersonaType{model.PersonaCatalyst}},
			{ID: "vp_007_c", Text: "Rerun the validation checks myself", Reasoning: "Hands-on analysis", Implications: []string{"technical contribution"}, PersonaAlignment: []model.PersonaType{model.PersonaContributor}},
			{ID: "vp_007_d", Text: "Learn how model drift is usually handled", Reasoning: "Builds knowledge", Implications: []string{"learning"}, PersonaAlignment: []model.PersonaType{model.PersonaExplorer}},
		},
	},
}

func (p visualPattern) relevantTo(industry string) bool {
	return industry == "" || len(p.Industries) == 0 || containsFold(p.Industries, industry)
}

func (p visualPattern) question() model.Question {
	q := model.Question{
		ID:               p.ID,
		Type:             model.QuestionVisualPattern,
		Text:             p.Prompt,
		Options:          choiceTexts(p.Choices),
		IndustrySpecific: len(p.Industries) > 0,
		Industries:       append([]string(nil), p.Industries...),
		Category:         p.Complexity,
	}
	if len(p.CulturalAdaptations) > 0 {
		q.CulturalAdaptations = make(map[string]string, len(p.CulturalAdaptations))
		for k, v := range p.CulturalAdaptations {
			q.CulturalAdaptations[k] = v
		}
	}
	return q
}
