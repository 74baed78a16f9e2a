// Package store holds the admin client state. A Store applies actions
// through a pure reducer and pushes every new state to its subscribers.
package store

import "sync"

type Store struct {
	mu      sync.Mutex
	reducer Reducer
	state   State
	closed  bool

	listenerLock sync.RWMutex
	listeners    map[chan State]bool
}

// New returns a store starting from initial. Call Close when done.
func New(reducer Reducer, initial State) *Store {
	if initial.Busy == nil {
		initial.Busy = map[string]int{}
	}
	return &Store{
		reducer:   reducer,
		state:     initial,
		listeners: make(map[chan State]bool),
	}
}

// Dispatch reduces a into the current state and broadcasts the result.
// It is a no-op once the store is closed.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state = s.reducer(s.state, a)
	s.broadcast(s.state)
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe returns a channel receiving each new state and a func that
// unsubscribes. A subscriber that falls behind its buffer misses states.
// On a closed store the channel comes back already closed.
func (s *Store) Subscribe(buffer int) (<-chan State, func()) {
	ch := make(chan State, buffer)

	// mu is held so Close cannot run between the check and the insert.
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.listenerLock.Lock()
	s.listeners[ch] = true
	s.listenerLock.Unlock()
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.listenerLock.Lock()
			defer s.listenerLock.Unlock()
			if s.listeners[ch] {
				delete(s.listeners, ch)
				close(ch)
			}
		})
	}
}

func (s *Store) broadcast(state State) {
	s.listenerLock.RLock()
	defer s.listenerLock.RUnlock()

	for listener := range s.listeners {
		select {
		case listener <- state.clone():
		default:
		}
	}
}

// Close stops dispatching and closes every subscriber channel.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	for ch := range s.listeners {
		delete(s.listeners, ch)
		close(ch)
	}
}
