package service

import (
	"context"
	"sync"

	"readiness/internal/model"
	"readiness/internal/repository"
)

type fakeSessionRepo struct {
	mu      sync.Mutex
	records map[string]model.SessionRecord
	updates int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{records: map[string]model.SessionRecord{}}
}

func copyRecord(r model.SessionRecord) *model.SessionRecord {
	r.Session = r.Session.Clone()
	return &r
}

func (f *fakeSessionRepo) Create(_ context.Context, record *model.SessionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[record.Session.ID]; ok {
		return repository.ErrDuplicateSession
	}
	record.ID = record.Session.ID
	f.records[record.ID] = *copyRecord(*record)
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (*model.SessionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return copyRecord(r), nil
}

func (f *fakeSessionRepo) Update(_ context.Context, record *model.SessionRecord, expectedIndex int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.records[record.Session.ID]
	if !ok || stored.Session.Status != model.SessionInProgress || stored.Session.CurrentQuestionIndex != expectedIndex {
		return repository.ErrConcurrentUpdate
	}
	f.records[record.Session.ID] = *copyRecord(*record)
	f.updates++
	return nil
}

func (f *fakeSessionRepo) ListByUser(_ context.Context, userID string) ([]*model.SessionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.SessionRecord
	for _, r := range f.records {
		if r.Session.UserID == userID {
			out = append(out, copyRecord(r))
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) stored(id string) model.SessionRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[id]
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results map[string]model.AssessmentResult
	saveErr error
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: map[string]model.AssessmentResult{}}
}

func (f *fakeResultRepo) Save(_ context.Context, result *model.AssessmentResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.results[result.SessionID] = *result
	return nil
}

func (f *fakeResultRepo) GetBySessionID(_ context.Context, id string) (*model.AssessmentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.results[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeResultRepo) ListByUser(_ context.Context, userID string) ([]*model.AssessmentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.AssessmentResult
	for _, r := range f.results {
		if r.UserID == userID {
			r := r
			out = append(out, &r)
		}
	}
	return out, nil
}

type fakeSessionCache struct {
	mu      sync.Mutex
	records map[string]model.SessionRecord
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{records: map[string]model.SessionRecord{}}
}

func (f *fakeSessionCache) Set(_ context.Context, record *model.SessionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.Session.ID] = *copyRecord(*record)
	return nil
}

func (f *fakeSessionCache) Get(_ context.Context, id string) (*model.SessionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return copyRecord(r), nil
}

func (f *fakeSessionCache) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeSessionCache) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[id]
	return ok
}

type fakePersonaCache struct {
	mu     sync.Mutex
	counts map[model.AssessmentType]map[model.PersonaType]int
}

func newFakePersonaCache() *fakePersonaCache {
	return &fakePersonaCache{counts: map[model.AssessmentType]map[model.PersonaType]int{}}
}

func (f *fakePersonaCache) Increment(_ context.Context, t model.AssessmentType, p model.PersonaType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts[t] == nil {
		f.counts[t] = map[model.PersonaType]int{}
	}
	f.counts[t][p]++
	return nil
}

func (f *fakePersonaCache) Distribution(_ context.Context, t model.AssessmentType) (*model.PersonaDistribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dist := &model.PersonaDistribution{AssessmentType: t}
	for p, n := range f.counts[t] {
		dist.Personas = append(dist.Personas, model.PersonaCount{Persona: p, Count: n})
		dist.Total += n
	}
	return dist, nil
}

type fakeVariantRepo struct {
	mu       sync.Mutex
	variants []*model.Variant
	lists    int
}

func (f *fakeVariantRepo) Upsert(_ context.Context, v *model.Variant) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.variants = append(f.variants, v)
	return v.ID, nil
}

func (f *fakeVariantRepo) GetByID(_ context.Context, id string) (*model.Variant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.variants {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeVariantRepo) ListByType(_ context.Context, t model.AssessmentType, activeOnly bool) ([]*model.Variant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	var out []*model.Variant
	for _, v := range f.variants {
		if v.AssessmentType == t && (v.Active || !activeOnly) {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []model.CompletionEvent
}

func (f *fakeEventRepo) Insert(_ context.Context, e *model.CompletionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeEventRepo) ListByType(_ context.Context, t model.AssessmentType, _ int64) ([]*model.CompletionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.CompletionEvent
	for i := range f.events {
		if f.events[i].AssessmentType == t {
			out = append(out, &f.events[i])
		}
	}
	return out, nil
}

type fakeImprovementCache struct {
	mu          sync.Mutex
	assignments map[string]model.VariantAssignment
	counters    map[string]map[string]int64
}

func newFakeImprovementCache() *fakeImprovementCache {
	return &fakeImprovementCache{
		assignments: map[string]model.VariantAssignment{},
		counters:    map[string]map[string]int64{},
	}
}

func (f *fakeImprovementCache) SetAssignment(_ context.Context, userID string, a *model.VariantAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignments[string(a.AssessmentType)+"/"+userID] = *a
	return nil
}

func (f *fakeImprovementCache) GetAssignment(_ context.Context, t model.AssessmentType, userID string) (*model.VariantAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assignments[string(t)+"/"+userID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeImprovementCache) Increment(_ context.Context, t model.AssessmentType, variantID, counter string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := string(t) + "/" + variantID
	if f.counters[key] == nil {
		f.counters[key] = map[string]int64{}
	}
	f.counters[key][counter]++
	return nil
}

func (f *fakeImprovementCache) Counters(_ context.Context, t model.AssessmentType, variantID string) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int64{}
	for k, v := range f.counters[string(t)+"/"+variantID] {
		out[k] = v
	}
	return out, nil
}

type sentMessage struct {
	target  string
	msgType string
	payload interface{}
}

type recordingBroadcaster struct {
	mu           sync.Mutex
	sent         []sentMessage
	disconnected []string
}

func (b *recordingBroadcaster) BroadcastToDashboard(msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, sentMessage{target: "dashboard", msgType: msgType, payload: payload})
}

func (b *recordingBroadcaster) BroadcastToSession(sessionID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, sentMessage{target: sessionID, msgType: msgType, payload: payload})
}

func (b *recordingBroadcaster) DisconnectSession(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disconnected = append(b.disconnected, sessionID)
}

// types returns the message types sent to target, in order
func (b *recordingBroadcaster) types(target string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, m := range b.sent {
		if m.target == target {
			out = append(out, m.msgType)
		}
	}
	return out
}
