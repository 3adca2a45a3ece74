package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	// ErrNoEffect is returned by Run for action types without an effect
	ErrNoEffect = errors.New("no effect registered")
	// ErrStale is returned when an effect's result no longer matches the state
	ErrStale = errors.New("result is stale")
	// ErrNoConnection is returned by effects that need an active connection
	ErrNoConnection = errors.New("no active connection")
)

// Store serialises all state changes through a single mutex
type Store struct {
	mu      sync.Mutex
	state   State
	effects map[string]Effect
	subs    []subscription
	nextSub int
	logger  *log.Logger
}

type subscription struct {
	id int
	fn func(Change)
}

// New creates a store with the default effects bound to services
func New(services Services, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Store{
		effects: make(map[string]Effect),
		logger:  logger.WithPrefix("store"),
	}

	if services.Consoles != nil {
		s.effects[ActionFetchGetSavedConsole] = fetchGetSavedConsole(services.Consoles)
	}
	if services.Schemas != nil {
		s.effects[ActionFetchDatabaseAndSchema] = fetchDatabaseAndSchema(services.Schemas)
	}

	return s
}

// GetState returns a snapshot of the current state
func (s *Store) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the reducer for the action and notifies subscribers
func (s *Store) Dispatch(a Action) Change {
	ch, _ := s.DispatchIf(nil, a)
	return ch
}

// DispatchIf applies the action only when cond holds for the current state.
// The check and the update happen under the same lock.
func (s *Store) DispatchIf(cond func(State) bool, a Action) (Change, bool) {
	s.mu.Lock()
	if cond != nil && !cond(s.state) {
		s.mu.Unlock()
		return Change{}, false
	}
	prev := s.state
	next := Reduce(prev, a)
	s.state = next
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	s.logger.Debug("dispatch", "action", a.Type)

	ch := Change{Action: a, Prev: prev, Next: next}
	for _, sub := range subs {
		sub.fn(ch)
	}
	return ch, true
}

// Subscribe registers fn to be called after every dispatch.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Run executes the effect registered for the action. It blocks on I/O and
// is meant to be called from a tea.Cmd.
func (s *Store) Run(ctx context.Context, a Action) (Change, error) {
	s.mu.Lock()
	eff, ok := s.effects[a.Type]
	s.mu.Unlock()

	if !ok {
		return Change{}, fmt.Errorf("%w: %s", ErrNoEffect, a.Type)
	}

	s.logger.Debug("run effect", "action", a.Type)
	ch, err := eff(ctx, a, s)
	if err != nil {
		if errors.Is(err, ErrStale) {
			s.logger.Debug("dropped stale result", "action", a.Type)
		} else {
			s.logger.Warn("effect failed", "action", a.Type, "err", err)
		}
	}
	return ch, err
}
