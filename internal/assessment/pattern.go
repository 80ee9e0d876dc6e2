package assessment

import (
	"math"
	"sort"

	"readiness/internal/model"
)

// optimalResponseSeconds is the latency treated as fully engaged
const optimalResponseSeconds = 30.0

// AnalyzeResponsePattern aggregates latency, consistency and engagement over responses
func AnalyzeResponsePattern(responses []model.AssessmentResponse) model.ResponsePattern {
	pattern := model.ResponsePattern{
		PreferredQuestionTypes:  []model.QuestionType{},
		CulturalAdaptationsUsed: []string{},
	}
	if len(responses) == 0 {
		return pattern
	}

	var times []float64
	complete := 0
	for _, r := range responses {
		if t, ok := r.ResponseTime(); ok {
			times = append(times, t)
		}
		if !r.ResponseValue.IsEmpty() {
			complete++
		}
	}

	mean, stdev := meanStdev(times)
	pattern.AverageResponseTime = mean
	pattern.ConsistencyScore = consistency(times, mean, stdev)

	factors := []float64{float64(complete) / float64(len(responses))}
	if len(times) > 0 {
		factors = append(factors, math.Max(0, 1-math.Abs(mean-optimalResponseSeconds)/optimalResponseSeconds))
	}
	sum := 0.0
	for _, f := range factors {
		sum += f
	}
	pattern.EngagementLevel = sum / float64(len(factors))

	pattern.PreferredQuestionTypes = rankQuestionTypes(responses)
	pattern.CulturalAdaptationsUsed = culturalTagsUsed(responses)
	return pattern
}

func meanStdev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	sq := 0.0
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

func consistency(times []float64, mean, stdev float64) float64 {
	switch {
	case len(times) == 0:
		return 0
	case len(times) == 1 || mean == 0:
		return 1
	}
	return math.Max(0, 1-math.Min(stdev/mean, 1))
}

func rankQuestionTypes(responses []model.AssessmentResponse) []model.QuestionType {
	counts := make(map[model.QuestionType]int)
	var order []model.QuestionType
	for _, r := range responses {
		if _, seen := counts[r.QuestionType]; !seen {
			order = append(order, r.QuestionType)
		}
		counts[r.QuestionType]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}

func culturalTagsUsed(responses []model.AssessmentResponse) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, r := range responses {
		tag := r.Metadata[model.MetaCulturalContext]
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
