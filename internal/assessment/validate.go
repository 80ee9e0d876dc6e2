package assessment

import (
	"fmt"
	"math"
	"strings"

	"readiness/internal/model"
)

// ValidateResponse checks resp against q. Every failure wraps ErrInvalidResponse.
func ValidateResponse(resp model.AssessmentResponse, q model.Question) error {
	if resp.QuestionID != q.ID {
		return fmt.Errorf("%w: expected question %q, got %q", ErrInvalidResponse, q.ID, resp.QuestionID)
	}
	if resp.QuestionType != q.Type {
		return fmt.Errorf("%w: expected type %s, got %s", ErrInvalidResponse, q.Type, resp.QuestionType)
	}

	value := resp.ResponseValue
	switch q.Type {
	case model.QuestionMultipleChoice:
		if !q.HasOption(value.Text) {
			return fmt.Errorf("%w: %q is not one of the options", ErrInvalidResponse, value.Text)
		}
	case model.QuestionScaleRating:
		n, ok := value.Float()
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("%w: scale rating must be a finite number", ErrInvalidResponse)
		}
		if q.ScaleRange != nil && !(n >= float64(q.ScaleRange.Min) && n <= float64(q.ScaleRange.Max)) {
			return fmt.Errorf("%w: %v outside %d-%d", ErrInvalidResponse, n, q.ScaleRange.Min, q.ScaleRange.Max)
		}
	case model.QuestionTextInput:
		if strings.TrimSpace(value.Text) == "" {
			return fmt.Errorf("%w: text answer is empty", ErrInvalidResponse)
		}
	default:
		if value.IsEmpty() {
			return fmt.Errorf("%w: answer is empty", ErrInvalidResponse)
		}
	}
	if t, ok := resp.ResponseTime(); ok && t < 0 {
		return fmt.Errorf("%w: negative response time", ErrInvalidResponse)
	}
	return nil
}
