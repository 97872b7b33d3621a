package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/okian/talentmatch/internal/domain/model"
)

// MemStore keeps records in process memory. Reads return deep copies.
type MemStore struct {
	*settings

	mu           sync.RWMutex
	requests     map[string]model.Request
	requestOrder []string // insertion order
	talents      map[string]model.Talent
	talentOrder  []string // insertion order

	reporter *poolReporter
}

// NewMemStore constructs an empty in-memory store.
func NewMemStore(ctx context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		settings: newSettings(opts),
		requests: make(map[string]model.Request),
		talents:  make(map[string]model.Talent),
	}
	s.reporter = startPoolReporter(ctx, s.settings, s.Counts)
	return s
}

// Close stops the background metrics updater.
func (s *MemStore) Close() error {
	s.reporter.stop()
	return nil
}

func (s *MemStore) CreateRequest(_ context.Context, r model.Request) (_ model.Request, err error) {
	defer s.observe("create_request", time.Now(), &err)

	r = s.stampNewRequest(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[r.ID]; ok {
		return model.Request{}, conflict("request", r.ID)
	}
	s.requests[r.ID] = r
	s.requestOrder = append(s.requestOrder, r.ID)
	return r.Clone(), nil
}

func (s *MemStore) GetRequestByID(_ context.Context, id string) (_ model.Request, err error) {
	defer s.observe("get_request", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[id]
	if !ok {
		return model.Request{}, notFound("request", id)
	}
	return r.Clone(), nil
}

func (s *MemStore) ListRequests(context.Context) (_ []model.Request, err error) {
	defer s.observe("list_requests", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Request, 0, len(s.requestOrder))
	for _, id := range slices.Backward(s.requestOrder) {
		out = append(out, s.requests[id].Clone())
	}
	return out, nil
}

func (s *MemStore) UpdateRequest(_ context.Context, id string, r model.Request) (_ model.Request, err error) {
	defer s.observe("update_request", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.requests[id]
	if !ok {
		return model.Request{}, notFound("request", id)
	}
	next := s.stampUpdatedRequest(prev, r)
	s.requests[id] = next
	return next.Clone(), nil
}

func (s *MemStore) DeleteRequest(_ context.Context, id string) (err error) {
	defer s.observe("delete_request", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[id]; !ok {
		return notFound("request", id)
	}
	delete(s.requests, id)
	s.requestOrder = slices.DeleteFunc(s.requestOrder, func(v string) bool { return v == id })
	return nil
}

func (s *MemStore) CreateTalent(_ context.Context, t model.Talent) (_ model.Talent, err error) {
	defer s.observe("create_talent", time.Now(), &err)

	t = s.stampNewTalent(t)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.talents[t.ID]; ok {
		return model.Talent{}, conflict("talent", t.ID)
	}
	s.talents[t.ID] = t
	s.talentOrder = append(s.talentOrder, t.ID)
	return t.Clone(), nil
}

func (s *MemStore) GetTalentByID(_ context.Context, id string) (_ model.Talent, err error) {
	defer s.observe("get_talent", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.talents[id]
	if !ok {
		return model.Talent{}, notFound("talent", id)
	}
	return t.Clone(), nil
}

func (s *MemStore) ListTalents(context.Context) (_ []model.Talent, err error) {
	defer s.observe("list_talents", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Talent, 0, len(s.talentOrder))
	for _, id := range s.talentOrder {
		out = append(out, s.talents[id].Clone())
	}
	return out, nil
}

func (s *MemStore) UpdateTalent(_ context.Context, id string, t model.Talent) (_ model.Talent, err error) {
	defer s.observe("update_talent", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.talents[id]
	if !ok {
		return model.Talent{}, notFound("talent", id)
	}
	next := s.stampUpdatedTalent(prev, t)
	s.talents[id] = next
	return next.Clone(), nil
}

func (s *MemStore) DeleteTalent(_ context.Context, id string) (err error) {
	defer s.observe("delete_talent", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.talents[id]; !ok {
		return notFound("talent", id)
	}
	delete(s.talents, id)
	s.talentOrder = slices.DeleteFunc(s.talentOrder, func(v string) bool { return v == id })
	return nil
}

func (s *MemStore) Counts(context.Context) (talents, requests int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.talents), len(s.requests), nil
}

func (s *MemStore) observe(op string, start time.Time, err *error) {
	observe(DriverMemory, op, start, *err)
}
