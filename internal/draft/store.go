// Package draft implements per-user auto-save draft storage. Saves are
// debounced: a draft becomes readable only after the configured quiescence
// window has elapsed without another save for the same key, mirroring the
// debounced form auto-save behavior of the review flows. Drafts are cleared
// on successful submission of the underlying entity.
package draft

import (
	"encoding/json"
	"sync"
	"time"
)

// Draft is a committed auto-save snapshot.
type Draft struct {
	Payload json.RawMessage `json:"payload"`
	SavedAt time.Time       `json:"saved_at"`
}

type key struct {
	userID   uint
	resource string
	entityID uint
}

type pending struct {
	payload json.RawMessage
	timer   *time.Timer
}

// Store holds drafts in memory, keyed by (user, resource, entity id).
type Store struct {
	mu        sync.Mutex
	debounce  time.Duration
	pending   map[key]*pending
	committed map[key]Draft
}

// NewStore creates a draft store with the given debounce window. A zero or
// negative window commits every save immediately.
func NewStore(debounce time.Duration) *Store {
	return &Store{
		debounce:  debounce,
		pending:   make(map[key]*pending),
		committed: make(map[key]Draft),
	}
}

// Save records a draft payload. The draft is committed (and becomes readable)
// once no further save arrives for the debounce window; an earlier pending
// save for the same key is superseded and its timer reset.
func (s *Store) Save(userID uint, resource string, entityID uint, payload json.RawMessage) {
	k := key{userID: userID, resource: resource, entityID: entityID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debounce <= 0 {
		s.committed[k] = Draft{Payload: payload, SavedAt: time.Now()}
		return
	}

	if p, ok := s.pending[k]; ok {
		p.payload = payload
		p.timer.Reset(s.debounce)
		return
	}

	p := &pending{payload: payload}
	p.timer = time.AfterFunc(s.debounce, func() {
		s.commit(k)
	})
	s.pending[k] = p
}

func (s *Store) commit(k key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[k]
	if !ok {
		return
	}
	delete(s.pending, k)
	s.committed[k] = Draft{Payload: p.payload, SavedAt: time.Now()}
}

// Get returns the last committed draft for the key. The second return value
// is false when no draft has been committed yet.
func (s *Store) Get(userID uint, resource string, entityID uint) (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.committed[key{userID: userID, resource: resource, entityID: entityID}]
	return d, ok
}

// Clear discards both the committed draft and any pending save for the key.
// Called after the entity is successfully submitted.
func (s *Store) Clear(userID uint, resource string, entityID uint) {
	k := key{userID: userID, resource: resource, entityID: entityID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[k]; ok {
		p.timer.Stop()
		delete(s.pending, k)
	}
	delete(s.committed, k)
}
