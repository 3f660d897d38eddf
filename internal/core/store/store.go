// Package store implements the Store component from spec.md §4.4: a
// single worker draining an unbounded FIFO action channel, reducing,
// notifying listeners, then awaiting effects one at a time. Grounded on
// the teacher's own single-goroutine broadcast shape in main.go/player.go
// (one channel, one consumer), generalized from snapshot-broadcast to
// action-dispatch.
package store

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goldbarth/arcflow/internal/core/reducer"
	"github.com/goldbarth/arcflow/internal/core/types"
)

// Listener receives every post-reduce state, in registration order.
type Listener func(state types.RootState)

// EffectRunner runs the side effects for an action that just landed, given
// a way to read the current state and dispatch follow-up actions. It is
// awaited synchronously by the worker loop, per spec.md §4.4/§5: no two
// effects run concurrently.
type EffectRunner func(action types.Action, getState func() types.RootState, dispatch func(types.Action))

// Store serializes actions, owns state, and orchestrates effects.
type Store struct {
	log zerolog.Logger

	mu     sync.Mutex
	state  types.RootState
	queue  []types.Action
	cond   *sync.Cond
	closed bool

	listenersMu sync.Mutex
	listeners   []Listener
	nextID      int
	ids         map[int]Listener

	runEffects EffectRunner

	done chan struct{}
}

// New constructs a Store with the given initial state and effect runner,
// and starts its worker goroutine. Call Dispose to stop it.
func New(initial types.RootState, runEffects EffectRunner, log zerolog.Logger) *Store {
	s := &Store{
		log:        log.With().Str("component", "store").Logger(),
		state:      initial,
		runEffects: runEffects,
		ids:        make(map[int]Listener),
		done:       make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

// Dispatch enqueues action onto the tail of the FIFO queue and returns
// once enqueued; it does not wait for processing. Dropped silently after
// Dispose, per spec.md §4.4.
func (s *Store) Dispatch(action types.Action) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, action)
	s.mu.Unlock()
	s.cond.Signal()
}

// State returns the current snapshot.
func (s *Store) State() types.RootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnStateChanged registers listener and returns an id for Off.
func (s *Store) OnStateChanged(l Listener) int {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	id := s.nextID
	s.nextID++
	s.ids[id] = l
	s.rebuildListenersLocked()
	return id
}

// Off unregisters a listener previously returned by OnStateChanged.
func (s *Store) Off(id int) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	delete(s.ids, id)
	s.rebuildListenersLocked()
}

// rebuildListenersLocked keeps notification order stable as registration
// order, matching spec.md §4.4's "synchronously in registration order".
func (s *Store) rebuildListenersLocked() {
	ordered := make([]Listener, 0, len(s.ids))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.ids[id]; ok {
			ordered = append(ordered, l)
		}
	}
	s.listeners = ordered
}

// Dispose cancels the worker and closes the queue; any in-flight effect
// runs to completion, but its subsequent dispatches are dropped.
func (s *Store) Dispose() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.cond.Signal()
	<-s.done
}

func (s *Store) run() {
	defer close(s.done)
	for {
		action, ok := s.dequeue()
		if !ok {
			return
		}
		s.process(action)
	}
}

// dequeue blocks until an action is available or the store is disposed.
// Once disposed it reports false, leaving still-queued actions unprocessed.
func (s *Store) dequeue() (types.Action, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.queue) == 0 && !s.closed {
		s.cond.Wait()
	}
	if s.closed {
		return nil, false
	}
	action := s.queue[0]
	s.queue = s.queue[1:]
	return action, true
}

func (s *Store) process(action types.Action) {
	s.mu.Lock()
	oldState := s.state
	newState := reducer.Reduce(oldState, action)
	s.state = newState
	s.mu.Unlock()

	s.log.Debug().Str("action", fmt.Sprintf("%T", action)).Msg("reduced")

	s.listenersMu.Lock()
	listeners := s.listeners
	s.listenersMu.Unlock()
	for _, l := range listeners {
		l(newState)
	}

	if s.runEffects != nil {
		s.runEffects(action, s.State, s.Dispatch)
	}
}

