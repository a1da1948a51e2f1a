// Package store holds sessions and their extracted documents in memory.
// Nothing here is durable: a session and everything in it disappears on
// expiry or restart, by design of the extraction pipeline.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"fiscoex/internal/cipher"
	"fiscoex/internal/domain"
)

// Session is one BYOK login: the user's provider choice, their API key, and
// the session-scoped cipher. Key material never leaves this struct.
type Session struct {
	ID        uuid.UUID
	Provider  domain.LLMProvider
	APIKey    string
	Cipher    *cipher.Processor
	CreatedAt time.Time
	ExpiresAt time.Time
}

type sessionEntry struct {
	session   *Session
	documents map[uuid.UUID]*domain.Document
	order     []uuid.UUID
}

// Memory is a concurrency-safe session store.
type Memory struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[uuid.UUID]*sessionEntry)}
}

// PutSession registers a new session.
func (m *Memory) PutSession(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &sessionEntry{
		session:   s,
		documents: make(map[uuid.UUID]*domain.Document),
	}
}

// GetSession returns a live session. Expired sessions are dropped on access
// and reported as domain.ErrSessionExpired.
func (m *Memory) GetSession(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if time.Now().After(entry.session.ExpiresAt) {
		delete(m.sessions, id)
		return nil, domain.ErrSessionExpired
	}
	return entry.session, nil
}

// PutDocument stores an extracted document under a session.
func (m *Memory) PutDocument(sessionID uuid.UUID, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[sessionID]
	if !ok {
		return domain.ErrUnauthorized
	}
	entry.documents[doc.ID] = doc
	entry.order = append(entry.order, doc.ID)
	return nil
}

// GetDocument fetches a document scoped to a session.
func (m *Memory) GetDocument(sessionID, docID uuid.UUID) (*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	doc, ok := entry.documents[docID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// ListDocuments returns a session's documents in upload order.
func (m *Memory) ListDocuments(sessionID uuid.UUID) ([]*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	docs := make([]*domain.Document, 0, len(entry.order))
	for _, id := range entry.order {
		docs = append(docs, entry.documents[id])
	}
	return docs, nil
}

// SweepExpired drops every session past its expiry and returns the count.
func (m *Memory) SweepExpired(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, entry := range m.sessions {
		if now.After(entry.session.ExpiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
