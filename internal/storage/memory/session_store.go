// Package memory provides the in-memory session store. All state is
// session-scoped and lives for the process lifetime only; nothing is
// persisted.
package memory

import (
	"sync"
	"time"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
	"github.com/lennoxmeldrum/mongol-atlas/internal/genai"
)

// Session is one persona-bound chat session with its transcript.
// PersonaID and Chat are immutable after creation; the transcript and
// in-flight flag are mutated through the store only.
type Session struct {
	ID        string
	PersonaID string
	Chat      genai.ChatSession
	CreatedAt time.Time

	messages []domain.Message
	inFlight bool
}

// SessionStore tracks the single active chat session. Replacing the
// active session abandons the previous one: lookups by the old id fail
// from then on, which is how stale in-flight responses get discarded.
type SessionStore struct {
	mu     sync.RWMutex
	active *Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Replace installs sess as the active session, seeding its transcript
// with the given messages.
func (s *SessionStore) Replace(sess *Session, seed ...domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.CreatedAt = time.Now()
	sess.messages = append([]domain.Message(nil), seed...)
	s.active = sess
}

// Get returns the session when it is still the active one.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil || s.active.ID != id {
		return nil, false
	}
	return s.active, true
}

// IsActive reports whether the id names the current active session.
func (s *SessionStore) IsActive(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Append adds a message to the session's transcript. It returns false
// when the session has been abandoned, in which case the message is
// dropped.
func (s *SessionStore) Append(id string, msg domain.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.ID != id {
		return false
	}
	s.active.messages = append(s.active.messages, msg)
	return true
}

// Messages returns a copy of the session's transcript in insertion
// order.
func (s *SessionStore) Messages(id string) ([]domain.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil || s.active.ID != id {
		return nil, false
	}
	out := make([]domain.Message, len(s.active.messages))
	copy(out, s.active.messages)
	return out, true
}

// BeginSend marks a send in flight. At most one send per session may
// be in flight at a time.
func (s *SessionStore) BeginSend(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.ID != id {
		return domain.ErrStaleSession
	}
	if s.active.inFlight {
		return domain.ErrSendInFlight
	}
	s.active.inFlight = true
	return nil
}

// EndSend clears the in-flight flag. A no-op when the session has been
// abandoned meanwhile.
func (s *SessionStore) EndSend(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.ID != id {
		return
	}
	s.active.inFlight = false
}
