package assessment

import (
	"strconv"

	"readiness/internal/model"
)

// SignalExtractor turns one free-text answer into persona signals and insights.
// KeywordExtractor is the rule-based default.
type SignalExtractor interface {
	Extract(text string, keywords, triggers []string) model.ConversationAnalysis
}

// Insight keys set by KeywordExtractor
const (
	InsightAuthorityLevel = "authorityLevel"
	InsightTeamSize       = "teamSize"
	InsightDecisionStyle  = "decisionStyle"
	InsightAIExperience   = "aiExperience"
	InsightTimeline       = "timeline"
)

// personaFamilies are disjoint keyword families, one per persona. Entries match
// as substrings, so stems like "explor" also cover inflected forms.
var personaFamilies = []struct {
	persona model.PersonaType
	words   []string
}{
	{model.PersonaArchitect, []string{"ceo", "cfo", "chief executive", "chief technology", "chief financial", "founder", "board", "executive", "owner", "final say", "final decision", "i decide"}},
	{model.PersonaCatalyst, []string{"influence", "transformation", "champion", "advocate", "persuade", "evangelist", "change agent", "drive change"}},
	{model.PersonaContributor, []string{"team", "implement", "execute", "deliver", "support", "contribute", "hands on", "hands-on"}},
	{model.PersonaExplorer, []string{"learn", "curious", "explor", "experiment", "interested"}},
	{model.PersonaObserver, []string{"not sure", "observe", "watching", "unsure", "wait and see", "skeptical", "sceptical"}},
}

var (
	positiveWords = []string{"excited", "great", "good", "love", "opportunit", "confident", "positive", "helpful", "promising", "enjoy", "success"}
	negativeWords = []string{"worried", "concern", "bad", "i hate", "dislike", "risk", "fear", "difficult", "problem", "frustrat", "expensive", "fail"}
)

type insightRule struct {
	value   string
	phrases []string
}

var (
	authorityRules = []insightRule{
		{"high", []string{"ceo", "cfo", "chief", "founder", "director", "head of", "executive", "owner", "vice president", "final say", "i decide"}},
		{"medium", []string{"manager", "lead", "supervisor", "recommend", "coordinator"}},
		{"low", []string{"assistant", "junior", "an intern", "internship", "analyst", "follow instructions", "implement"}},
	}
	decisionStyleRules = []insightRule{
		{"data_driven", []string{"data", "metrics", "evidence", "analysis", "numbers"}},
		{"collaborative", []string{"consensus", "together", "committee", "discuss", "collaborat"}},
		{"intuitive", []string{"gut feel", "instinct", "i feel", "intuition"}},
		{"directive", []string{"decide", "mandate", "i direct", "approve"}},
	}
	aiExperienceRules = []insightRule{
		{"none", []string{"never", "no experience", "haven't", "have not"}},
		{"advanced", []string{"deployed", "built", "production", "integrated", "trained"}},
		{"exploring", []string{"tried", "chatgpt", "experimenting", "pilot", "testing", "playing"}},
	}
	timelineRules = []insightRule{
		{"immediate", []string{"right now", "immediately", "asap", "weeks", "this month"}},
		{"short_term", []string{"month", "quarter", "half year"}},
		{"long_term", []string{"year", "eventually", "someday", "long term"}},
	}
	soloPhrases = []string{"just me", "alone", "myself", "solo"}
)

// KeywordExtractor matches fixed word lists as lower-cased substrings. The word
// count is taken over tokens.
type KeywordExtractor struct{}

// Extract analyses one free-text answer
func (KeywordExtractor) Extract(text string, keywords, triggers []string) model.ConversationAnalysis {
	lower := normalizeText(text)
	tokens := tokenize(lower)
	analysis := model.ConversationAnalysis{
		KeywordMatches: []string{},
		PersonaSignals: []model.PersonaType{},
		Insights:       map[string]string{},
		WordCount:      len(tokens),
	}

	for _, kw := range keywords {
		if containsSubstring(lower, kw) {
			analysis.KeywordMatches = append(analysis.KeywordMatches, kw)
		}
	}
	analysis.TriggerMatched = containsAnySubstring(lower, triggers)

	pos, neg := countSubstrings(lower, positiveWords), countSubstrings(lower, negativeWords)
	switch {
	case pos > neg:
		analysis.Sentiment = model.SentimentPositive
	case neg > pos:
		analysis.Sentiment = model.SentimentNegative
	default:
		analysis.Sentiment = model.SentimentNeutral
	}

	for _, family := range personaFamilies {
		if containsAnySubstring(lower, family.words) {
			analysis.PersonaSignals = append(analysis.PersonaSignals, family.persona)
		}
	}

	setInsight(analysis.Insights, InsightAuthorityLevel, lower, authorityRules)
	setInsight(analysis.Insights, InsightDecisionStyle, lower, decisionStyleRules)
	setInsight(analysis.Insights, InsightAIExperience, lower, aiExperienceRules)
	setInsight(analysis.Insights, InsightTimeline, lower, timelineRules)
	if size := teamSizeBucket(lower, tokens); size != "" {
		analysis.Insights[InsightTeamSize] = size
	}
	return analysis
}

func setInsight(insights map[string]string, key string, text string, rules []insightRule) {
	for _, r := range rules {
		if containsAnySubstring(text, r.phrases) {
			insights[key] = r.value
			return
		}
	}
}

// teamSizeBucket reads the first number in the answer as a head count
func teamSizeBucket(text string, tokens []string) string {
	if containsAnySubstring(text, soloPhrases) {
		return "solo"
	}
	for _, t := range tokens {
		n, err := strconv.Atoi(t)
		if err != nil {
			continue
		}
		switch {
		case n <= 1:
			return "solo"
		case n <= 10:
			return "small"
		case n <= 50:
			return "medium"
		default:
			return "large"
		}
	}
	return ""
}
