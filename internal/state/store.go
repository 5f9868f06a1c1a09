// Package state holds the domain snapshot and applies actions to it.
package state

import (
	"context"
	"sync"

	"github.com/Domenick1991/frontdesk/internal/storage"
	"go.uber.org/zap"
)

type Change struct {
	Kind     string
	Snapshot Snapshot
}

// Observer is called synchronously after every successful dispatch.
// It must not call Dispatch.
type Observer func(Change)

type Store struct {
	dispatchMu sync.Mutex

	mu          sync.RWMutex
	current     Snapshot
	initialized bool
	observers   map[int]Observer
	nextID      int

	adapter *storage.Adapter
	logger  *zap.Logger
}

func NewStore(adapter *storage.Adapter, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		adapter:   adapter,
		logger:    logger,
		observers: make(map[int]Observer),
	}
}

// Dispatch applies a to the current snapshot. Dispatches are serialized: the
// new snapshot is published, persisted and observed before the next one starts.
// On error the state is left unchanged.
func (s *Store) Dispatch(ctx context.Context, a Action) error {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	next := s.Snapshot()
	if err := a.apply(&next); err != nil {
		s.logger.Debug("action not applied", zap.String("kind", a.Kind()), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.current = next
	if _, ok := a.(Init); ok {
		s.initialized = true
	}
	initialized := s.initialized
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	if initialized {
		s.persist(context.WithoutCancel(ctx), next)
	}
	for _, o := range observers {
		o(Change{Kind: a.Kind(), Snapshot: next})
	}
	return nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Subscribe registers o and returns a function removing it.
func (s *Store) Subscribe(o Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = o
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) persist(ctx context.Context, snap Snapshot) {
	if s.adapter == nil {
		return
	}
	for _, doc := range snap.documents() {
		s.adapter.Save(ctx, doc.key, doc.value)
	}
}
