// README: In-memory session store with per-session single-flight guard.
package conversation

import (
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrBusy     = errors.New("a request is already in flight for this session")
)

type entry struct {
	mu sync.Mutex
	// inflight replaces the original advisory isLoading debounce with a hard
	// single-in-flight guard per session.
	inflight *semaphore.Weighted
	state    *State
}

// Store owns the live sessions for this process. Reads hand out snapshots;
// all writes go through Update so there is a single writer per session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

func (s *Store) Put(st *State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[st.ID] = &entry{
		inflight: semaphore.NewWeighted(1),
		state:    st,
	}
}

func (s *Store) get(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// View returns a snapshot safe to serialize outside the lock.
func (s *Store) View(id string) (State, error) {
	e, err := s.get(id)
	if err != nil {
		return State{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.state), nil
}

// Update runs fn while holding the session's write lock. fn must not block
// on network calls; suspension happens outside the lock.
func (s *Store) Update(id string, fn func(*State)) (State, error) {
	e, err := s.get(id)
	if err != nil {
		return State{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.state)
	return snapshot(e.state), nil
}

// Acquire claims the session's single in-flight slot. Returns ErrBusy when
// another request holds it; the caller must Release on every path.
func (s *Store) Acquire(id string) (release func(), err error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !e.inflight.TryAcquire(1) {
		return nil, ErrBusy
	}
	return func() { e.inflight.Release(1) }, nil
}

// snapshot deep-copies the slices so readers never alias live state. The
// itinerary pointer is shared intentionally: it is replaced wholesale, never
// mutated in place.
func snapshot(st *State) State {
	out := *st
	out.Messages = append([]Message(nil), st.Messages...)
	out.Sources = append([]Citation(nil), st.Sources...)
	out.Enrichment = append([]Citation(nil), st.Enrichment...)
	if st.POIDescriptions != nil {
		out.POIDescriptions = make(map[string]string, len(st.POIDescriptions))
		for k, v := range st.POIDescriptions {
			out.POIDescriptions[k] = v
		}
	}
	return out
}
