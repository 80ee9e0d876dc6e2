package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestSession_WithResponseIsCopyOnWrite(t *testing.T) {
	s := NewSession("s-1", "u-1", AssessmentQuestionnaire, start)
	resp := AssessmentResponse{QuestionID: "q1", QuestionType: QuestionTextInput, ResponseValue: TextValue("hi"), Metadata: map[string]string{"k": "v"}}

	next, err := s.WithResponse(resp, "kenyan")
	require.NoError(t, err)
	assert.Empty(t, s.Responses)
	assert.Equal(t, 0, s.CurrentQuestionIndex)
	assert.Equal(t, 1, next.CurrentQuestionIndex)
	assert.Equal(t, []string{"kenyan"}, next.CulturalAdaptations)

	resp.Metadata["k"] = "changed"
	assert.Equal(t, "v", next.Responses[0].Metadata["k"])

	again, err := next.WithResponse(AssessmentResponse{QuestionID: "q2"}, "kenyan")
	require.NoError(t, err)
	assert.Equal(t, []string{"kenyan"}, again.CulturalAdaptations)
	assert.Len(t, next.Responses, 1)
	assert.Len(t, again.Responses, 2)
}

func TestSession_TerminalStatesAreFinal(t *testing.T) {
	s := NewSession("s-1", "u-1", AssessmentQuestionnaire, start)

	done, err := s.Complete(start.Add(12*time.Minute + 40*time.Second))
	require.NoError(t, err)
	assert.Equal(t, SessionCompleted, done.Status)
	assert.Equal(t, 13, done.DurationMinutes)
	assert.Equal(t, SessionInProgress, s.Status)

	_, err = done.WithResponse(AssessmentResponse{QuestionID: "q"}, "")
	assert.ErrorIs(t, err, ErrSessionClosed)
	_, err = done.Abandon(start)
	assert.ErrorIs(t, err, ErrSessionClosed)

	gone, err := s.Abandon(start.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, SessionAbandoned, gone.Status)
	_, err = gone.Complete(start)
	assert.ErrorIs(t, err, ErrSessionClosed)
}
