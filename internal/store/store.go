// Package store caches the user extra list and the currently viewed record
// for the views. Remote failures never escape: they are recorded on State.
package store

import (
	"context"
	"net/url"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"userextra/internal/model"
)

// Remote is the data access the store reads through.
type Remote interface {
	List(ctx context.Context, query url.Values) ([]model.UserExtra, error)
	Get(ctx context.Context, id string) (*model.UserExtra, error)
	Create(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error)
	Update(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error)
	PartialUpdate(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error)
	Delete(ctx context.Context, id string) error
}

// State is a point-in-time copy of the caches and flags.
type State struct {
	Loading       bool
	Updating      bool
	UpdateSuccess bool

	// Entities is the list cache in server order.
	Entities []model.UserExtra
	// Entity is the detail cache; the zero value until the first fetch.
	Entity model.UserExtra

	Err          error
	ErrorMessage string
}

// Store is safe for concurrent use. Remote calls run outside the lock,
// so when two fetches race the one that completes last wins.
type Store struct {
	remote Remote
	log    zerolog.Logger

	mu    sync.RWMutex
	state State
}

func New(remote Remote, log zerolog.Logger) *Store {
	return &Store{remote: remote, log: log}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// FetchList reads the collection and replaces the list cache on success.
func (s *Store) FetchList(ctx context.Context, query url.Values) State {
	s.update(func(st *State) {
		st.Loading = true
		st.UpdateSuccess = false
		st.Err, st.ErrorMessage = nil, ""
	})

	items, err := s.remote.List(ctx, query)
	if err != nil {
		return s.fail(ctx, "fetch_list", err)
	}
	return s.update(func(st *State) {
		st.Loading = false
		st.Entities = items
	})
}

// FetchOne reads a single record and replaces the detail cache on success.
func (s *Store) FetchOne(ctx context.Context, id string) State {
	s.update(func(st *State) {
		st.Loading = true
		st.UpdateSuccess = false
		st.Err, st.ErrorMessage = nil, ""
	})

	e, err := s.remote.Get(ctx, id)
	if err != nil {
		return s.fail(ctx, "fetch_one", err)
	}
	return s.update(func(st *State) {
		st.Loading = false
		st.Entity = *e
	})
}

func (s *Store) Create(ctx context.Context, e *model.UserExtra) State {
	return s.save(ctx, "create", e, s.remote.Create)
}

func (s *Store) Update(ctx context.Context, e *model.UserExtra) State {
	return s.save(ctx, "update", e, s.remote.Update)
}

func (s *Store) PartialUpdate(ctx context.Context, e *model.UserExtra) State {
	return s.save(ctx, "partial_update", e, s.remote.PartialUpdate)
}

// Delete removes the record, resets the detail cache and re-fetches the list.
func (s *Store) Delete(ctx context.Context, id string) State {
	s.beginUpdate()

	if err := s.remote.Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete", err)
	}
	s.update(func(st *State) {
		st.Updating = false
		st.UpdateSuccess = true
		st.Entity = model.UserExtra{}
	})
	return s.invalidate(ctx)
}

func (s *Store) save(ctx context.Context, op string, e *model.UserExtra,
	call func(context.Context, *model.UserExtra) (*model.UserExtra, error)) State {
	s.beginUpdate()

	saved, err := call(ctx, e)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	s.update(func(st *State) {
		st.Updating = false
		st.UpdateSuccess = true
		st.Entity = *saved
	})
	return s.invalidate(ctx)
}

// invalidate re-reads the list so later list views see the mutation.
// A failed re-fetch keeps UpdateSuccess: the mutation itself went through.
func (s *Store) invalidate(ctx context.Context) State {
	items, err := s.remote.List(ctx, url.Values{})
	if err != nil {
		s.log.Warn().Err(err).Str("event", "invalidate_list").Msg("list refresh after mutation failed")
		trace.SpanFromContext(ctx).RecordError(err, trace.WithAttributes(attribute.String("store.op", "invalidate_list")))
		return s.update(func(st *State) {
			st.Err, st.ErrorMessage = err, err.Error()
		})
	}
	return s.update(func(st *State) {
		st.Entities = items
	})
}

func (s *Store) beginUpdate() {
	s.update(func(st *State) {
		st.Updating = true
		st.UpdateSuccess = false
		st.Err, st.ErrorMessage = nil, ""
	})
}

// fail records err on the state and on the caller's span, if any.
func (s *Store) fail(ctx context.Context, op string, err error) State {
	s.log.Warn().Err(err).Str("event", op).Msg("remote call failed")
	trace.SpanFromContext(ctx).RecordError(err, trace.WithAttributes(attribute.String("store.op", op)))
	return s.update(func(st *State) {
		st.Loading = false
		st.Updating = false
		st.UpdateSuccess = false
		st.Err, st.ErrorMessage = err, err.Error()
	})
}

func (s *Store) update(fn func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	return s.copyLocked()
}

func (s *Store) copyLocked() State {
	st := s.state
	st.Entities = slices.Clone(s.state.Entities)
	return st
}
