package model

import "strings"

// UserContext is supplied by the caller and read-only for the engine
type UserContext struct {
	UserID            string   `json:"userId,omitempty" bson:"userId,omitempty"`
	Industry          string   `json:"industry,omitempty" bson:"industry,omitempty"`
	GeographicRegion  string   `json:"geographicRegion,omitempty" bson:"geographicRegion,omitempty"`
	CulturalContext   []string `json:"culturalContext,omitempty" bson:"culturalContext,omitempty"` // ordered, first match wins
	PreferredLanguage string   `json:"preferredLanguage,omitempty" bson:"preferredLanguage,omitempty"`
	AssessmentHistory []string `json:"assessmentHistory,omitempty" bson:"assessmentHistory,omitempty"`
}

// NormalizedIndustry returns the lower-cased, trimmed industry tag
func (c UserContext) NormalizedIndustry() string {
	return strings.ToLower(strings.TrimSpace(c.Industry))
}

// HasCulturalContext reports whether any context tag contains one of the given fragments
func (c UserContext) HasCulturalContext(fragments ...string) bool {
	for _, tag := range c.CulturalContext {
		lower := strings.ToLower(tag)
		for _, f := range fragments {
			if strings.Contains(lower, f) {
				return true
			}
		}
	}
	return false
}
