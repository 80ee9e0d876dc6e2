package assessment

import "errors"

var (
	// ErrInvalidResponse is returned when a submission does not fit the current question
	ErrInvalidResponse = errors.New("invalid response for current question")

	// ErrUnsupportedAssessmentType is returned by the factory for unknown modalities
	ErrUnsupportedAssessmentType = errors.New("unsupported assessment type")

	// ErrNoActiveSession is returned by the engine before a session is started or resumed
	ErrNoActiveSession = errors.New("no active assessment session")

	// ErrSessionCorrupt is returned when recorded responses cannot be replayed onto the rebuilt plan
	ErrSessionCorrupt = errors.New("session does not match rebuilt question plan")

	// ErrAssessmentIncomplete is returned when completion is requested while questions remain
	ErrAssessmentIncomplete = errors.New("assessment still has unanswered questions")
)
