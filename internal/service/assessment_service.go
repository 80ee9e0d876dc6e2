package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"readiness/internal/assessment"
	"readiness/internal/cache"
	"readiness/internal/metrics"
	"readiness/internal/model"
	"readiness/internal/repository"
)

// AssessmentService runs assessment sessions across requests. Each call rebuilds
// an engine from the stored session and writes back with an optimistic check on
// the question index, so concurrent submissions for one session cannot interleave.
type AssessmentService struct {
	factory      *assessment.Factory
	sessionRepo  repository.SessionRepo
	resultRepo   repository.ResultRepo
	sessionCache cache.SessionCache
	personaCache cache.PersonaCache
	auth         *AuthService
	metrics      *metrics.Metrics
	logger       *slog.Logger
	broadcaster  Broadcaster
	improvement  *ImprovementService
	now          func() time.Time
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	factory *assessment.Factory,
	sessionRepo repository.SessionRepo,
	resultRepo repository.ResultRepo,
	sessionCache cache.SessionCache,
	personaCache cache.PersonaCache,
	auth *AuthService,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AssessmentService {
	if factory == nil {
		factory = assessment.NewFactory()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AssessmentService{
		factory:      factory,
		sessionRepo:  sessionRepo,
		resultRepo:   resultRepo,
		sessionCache: sessionCache,
		personaCache: personaCache,
		auth:         auth,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetImprovementService enables A/B variants and completion feedback
func (s *AssessmentService) SetImprovementService(svc *ImprovementService) {
	s.improvement = svc
}

func (s *AssessmentService) newEngine() *assessment.Engine {
	return assessment.NewEngine(s.factory, assessment.WithClock(s.now))
}

// Catalog lists every assessment type with its metadata
func (s *AssessmentService) Catalog() []model.AssessmentMetadata {
	return s.factory.Catalog()
}

// Metadata returns the catalog entry of t
func (s *AssessmentService) Metadata(t model.AssessmentType) (model.AssessmentMetadata, error) {
	return s.factory.GetAssessmentMetadata(t)
}

// Recommend picks an assessment type for the given context
func (s *AssessmentService) Recommend(uc model.UserContext) model.RecommendationResponse {
	t := s.factory.RecommendAssessmentType(uc)
	meta, _ := s.factory.GetAssessmentMetadata(t)
	return model.RecommendationResponse{Recommended: t, Metadata: meta}
}

// Start creates and stores a session, assigns a variant and issues a respondent token
func (s *AssessmentService) Start(ctx context.Context, req *model.StartAssessmentRequest) (*model.StartAssessmentResponse, error) {
	engine := s.newEngine()
	session, first, err := engine.StartAssessment(req.AssessmentType, req.UserContext, req.SessionID)
	if err != nil {
		return nil, err
	}

	record := &model.SessionRecord{
		Session:     session,
		UserContext: req.UserContext,
	}

	var assignment *model.VariantAssignment
	var variant *model.Variant
	if s.improvement != nil {
		key := req.UserContext.UserID
		if key == "" {
			key = session.ID
		}
		assignment, variant, err = s.improvement.Assign(ctx, session.AssessmentType, key)
		if err != nil {
			s.logger.Warn("variant assignment failed", "session", session.ID, "error", err)
		}
		if variant != nil {
			record.VariantID = variant.ID
		}
	}

	if err := s.sessionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.cacheRecord(ctx, record)

	token, err := s.auth.GenerateRespondentToken(session.ID, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.SessionStarted(string(session.AssessmentType))
	s.logger.Info("assessment started",
		"session", session.ID,
		"type", session.AssessmentType,
		"variant", record.VariantID,
	)
	event := model.ProgressEvent{
		Type:           model.EventAssessmentStarted,
		SessionID:      session.ID,
		AssessmentType: session.AssessmentType,
		At:             s.now().UTC(),
	}
	if first != nil {
		event.Progress = first.Progress
	}
	s.broadcastDashboard(event)

	return &model.StartAssessmentResponse{
		Session:       session,
		FirstQuestion: applyVariant(first, variant),
		Token:         token,
		Variant:       assignment,
	}, nil
}

// CurrentQuestion returns the question the session is waiting on, nil when none remain
func (s *AssessmentService) CurrentQuestion(ctx context.Context, sessionID string) (*model.PresentedQuestion, error) {
	record, engine, err := s.resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	q, err := engine.CurrentQuestion()
	if err != nil {
		return nil, err
	}
	return applyVariant(q, s.variantOf(ctx, record)), nil
}

// Progress reports answered questions over the current plan
func (s *AssessmentService) Progress(ctx context.Context, sessionID string) (model.Progress, error) {
	_, engine, err := s.resume(ctx, sessionID)
	if err != nil {
		return model.Progress{}, err
	}
	return engine.GetProgress()
}

// Submit records one response. When no question remains the session is
// completed in the same write and its result is stored.
func (s *AssessmentService) Submit(ctx context.Context, sessionID string, resp model.AssessmentResponse) (*model.SubmitResponseResult, error) {
	started := time.Now()
	record, engine, err := s.resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	kind := string(record.Session.AssessmentType)

	next, err := engine.SubmitResponse(resp)
	if err != nil {
		s.metrics.ResponseRejected(kind, rejectReason(err))
		s.metrics.ObserveSubmit(kind, "rejected", time.Since(started))
		return nil, err
	}

	done := engine.IsComplete()
	var session model.Session
	if done {
		session, err = engine.Complete()
	} else {
		session, err = engine.Session()
	}
	if err != nil {
		return nil, err
	}

	expectedIndex := record.Session.CurrentQuestionIndex
	record.Session = session
	if err := s.save(ctx, record, expectedIndex); err != nil {
		s.metrics.ObserveSubmit(kind, "conflict", time.Since(started))
		return nil, err
	}

	progress, err := engine.GetProgress()
	if err != nil {
		return nil, err
	}
	out := &model.SubmitResponseResult{
		NextQuestion: applyVariant(next, s.variantOf(ctx, record)),
		Progress:     progress,
		Done:         done,
	}

	if done {
		result, err := engine.Result()
		if err != nil {
			return nil, err
		}
		result.VariantID = record.VariantID
		s.finish(ctx, record, &result)
		out.Result = &result
	} else {
		event := model.ProgressEvent{
			Type:           model.EventQuestionAnswered,
			SessionID:      session.ID,
			AssessmentType: session.AssessmentType,
			Progress:       progress,
			NextQuestion:   out.NextQuestion,
			At:             s.now().UTC(),
		}
		s.broadcastDashboard(event)
		s.broadcastSession(session.ID, event)
	}

	s.metrics.ObserveSubmit(kind, "ok", time.Since(started))
	return out, nil
}

// Abandon closes the session without a result
func (s *AssessmentService) Abandon(ctx context.Context, sessionID string) (*model.Session, error) {
	record, engine, err := s.resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session, err := engine.Abandon()
	if err != nil {
		return nil, err
	}

	expectedIndex := record.Session.CurrentQuestionIndex
	record.Session = session
	if err := s.save(ctx, record, expectedIndex); err != nil {
		return nil, err
	}

	if s.improvement != nil {
		if err := s.improvement.RecordAbandon(ctx, session.AssessmentType, record.VariantID); err != nil {
			s.logger.Warn("failed to count abandon", "session", session.ID, "error", err)
		}
	}
	s.metrics.SessionAbandoned(string(session.AssessmentType))
	s.logger.Info("assessment abandoned",
		"session", session.ID,
		"type", session.AssessmentType,
		"answered", len(session.Responses),
	)

	event := model.ProgressEvent{
		Type:           model.EventAssessmentAbandoned,
		SessionID:      session.ID,
		AssessmentType: session.AssessmentType,
		At:             s.now().UTC(),
	}
	s.broadcastDashboard(event)
	s.broadcastSession(session.ID, event)
	if s.broadcaster != nil {
		s.broadcaster.DisconnectSession(session.ID)
	}
	return &session, nil
}

// Result returns the stored result of a completed session. A completed session
// whose result write was lost gets it rebuilt from the recorded responses.
func (s *AssessmentService) Result(ctx context.Context, sessionID string) (*model.AssessmentResult, error) {
	stored, err := s.resultRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	if stored != nil {
		return stored, nil
	}

	record, engine, err := s.resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if record.Session.Status != model.SessionCompleted {
		return nil, assessment.ErrAssessmentIncomplete
	}
	result, err := engine.Result()
	if err != nil {
		return nil, err
	}
	result.VariantID = record.VariantID
	if err := s.resultRepo.Save(ctx, &result); err != nil {
		s.logger.Warn("failed to store rebuilt result", "session", sessionID, "error", err)
	}
	return &result, nil
}

// PersonaDistribution summarizes completed sessions of t
func (s *AssessmentService) PersonaDistribution(ctx context.Context, t model.AssessmentType) (*model.PersonaDistribution, error) {
	if _, err := s.factory.GetAssessmentMetadata(t); err != nil {
		return nil, err
	}
	dist, err := s.personaCache.Distribution(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona distribution: %w", err)
	}
	return dist, nil
}

// SessionRecord loads a stored session
func (s *AssessmentService) SessionRecord(ctx context.Context, sessionID string) (*model.SessionRecord, error) {
	return s.load(ctx, sessionID)
}

// finish runs the completion side effects concurrently. They are best effort:
// the completed session is already stored and Result can rebuild what is lost.
func (s *AssessmentService) finish(ctx context.Context, record *model.SessionRecord, result *model.AssessmentResult) {
	session := record.Session

	var g errgroup.Group
	g.Go(func() error {
		if err := s.resultRepo.Save(ctx, result); err != nil {
			return fmt.Errorf("failed to store result: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.personaCache.Increment(ctx, session.AssessmentType, result.Prediction.Persona); err != nil {
			return fmt.Errorf("failed to count persona: %w", err)
		}
		return nil
	})
	if s.improvement != nil {
		g.Go(func() error {
			return s.improvement.RecordCompletion(ctx, &model.CompletionEvent{
				SessionID:       session.ID,
				UserID:          session.UserID,
				AssessmentType:  session.AssessmentType,
				VariantID:       record.VariantID,
				Persona:         result.Prediction.Persona,
				Confidence:      result.Prediction.Confidence,
				QuestionCount:   result.QuestionCount,
				DurationMinutes: result.DurationMinutes,
				CompletedAt:     result.CompletedAt,
			})
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("completion side effect failed", "session", session.ID, "error", err)
	}

	s.metrics.SessionCompleted(string(session.AssessmentType), string(result.Prediction.Persona))
	s.logger.Info("assessment completed",
		"session", session.ID,
		"type", session.AssessmentType,
		"persona", result.Prediction.Persona,
		"confidence", result.Prediction.Confidence,
		"questions", result.QuestionCount,
	)

	event := model.ProgressEvent{
		Type:           model.EventAssessmentCompleted,
		SessionID:      session.ID,
		AssessmentType: session.AssessmentType,
		Progress:       model.Progress{Current: result.QuestionCount, Total: result.QuestionCount, Percentage: 100},
		Persona:        result.Prediction.Persona,
		At:             s.now().UTC(),
	}
	s.broadcastDashboard(event)
	s.broadcastSession(session.ID, event)
}

// load reads a session record through the cache
func (s *AssessmentService) load(ctx context.Context, sessionID string) (*model.SessionRecord, error) {
	record, err := s.sessionCache.Get(ctx, sessionID)
	if err != nil {
		s.logger.Warn("session cache read failed", "session", sessionID, "error", err)
	}
	if record != nil {
		return record, nil
	}

	record, err = s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if record == nil {
		return nil, ErrSessionNotFound
	}
	if !record.Session.Status.Terminal() {
		s.cacheRecord(ctx, record)
	}
	return record, nil
}

func (s *AssessmentService) resume(ctx context.Context, sessionID string) (*model.SessionRecord, *assessment.Engine, error) {
	record, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	engine := s.newEngine()
	if _, err := engine.ResumeAssessment(record.Session, record.UserContext); err != nil {
		if errors.Is(err, assessment.ErrSessionCorrupt) {
			s.logger.Error("stored session cannot be replayed", "session", sessionID, "error", err)
		}
		return nil, nil, err
	}
	return record, engine, nil
}

// save writes the record if nobody else moved the session meanwhile. A conflict
// evicts the cached copy so the next read sees the winner.
func (s *AssessmentService) save(ctx context.Context, record *model.SessionRecord, expectedIndex int) error {
	err := s.sessionRepo.Update(ctx, record, expectedIndex)
	if errors.Is(err, repository.ErrConcurrentUpdate) {
		s.evict(ctx, record.Session.ID)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if record.Session.Status.Terminal() {
		s.evict(ctx, record.Session.ID)
	} else {
		s.cacheRecord(ctx, record)
	}
	return nil
}

func (s *AssessmentService) cacheRecord(ctx context.Context, record *model.SessionRecord) {
	if err := s.sessionCache.Set(ctx, record); err != nil {
		s.logger.Warn("session cache write failed", "session", record.Session.ID, "error", err)
	}
}

func (s *AssessmentService) evict(ctx context.Context, sessionID string) {
	if err := s.sessionCache.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("session cache delete failed", "session", sessionID, "error", err)
	}
}

func (s *AssessmentService) variantOf(ctx context.Context, record *model.SessionRecord) *model.Variant {
	if s.improvement == nil || record.VariantID == "" {
		return nil
	}
	v, err := s.improvement.Variant(ctx, record.Session.AssessmentType, record.VariantID)
	if err != nil {
		s.logger.Warn("failed to load variant", "variant", record.VariantID, "error", err)
		return nil
	}
	return v
}

func (s *AssessmentService) broadcastDashboard(event model.ProgressEvent) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToDashboard(event.Type, event)
	}
}

func (s *AssessmentService) broadcastSession(sessionID string, event model.ProgressEvent) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(sessionID, event.Type, event)
	}
}

// applyVariant swaps in the variant's wording for questions shown in their default text
func applyVariant(q *model.PresentedQuestion, v *model.Variant) *model.PresentedQuestion {
	if q == nil || v == nil || q.CulturalContext != "" {
		return q
	}
	text, ok := v.TextOverrides[q.Question.ID]
	if !ok {
		return q
	}
	out := *q
	out.Question.Text = text
	return &out
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, assessment.ErrInvalidResponse):
		return "invalid"
	case errors.Is(err, model.ErrSessionClosed):
		return "closed"
	default:
		return "error"
	}
}
