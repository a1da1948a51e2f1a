package store_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiscoex/internal/domain"
	"fiscoex/internal/store"
)

func newSession(ttl time.Duration) *store.Session {
	now := time.Now()
	return &store.Session{
		ID:        uuid.New(),
		Provider:  domain.ProviderGemini,
		APIKey:    "g-key",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestSessionLifecycle(t *testing.T) {
	m := store.NewMemory()
	s := newSession(time.Hour)
	m.PutSession(s)

	got, err := m.GetSession(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	_, err = m.GetSession(uuid.New())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSessionExpiry(t *testing.T) {
	m := store.NewMemory()
	s := newSession(-time.Minute)
	m.PutSession(s)

	_, err := m.GetSession(s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	// Dropped on access: a second read reports unauthorized.
	_, err = m.GetSession(s.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDocumentsScopedToSession(t *testing.T) {
	m := store.NewMemory()
	s := newSession(time.Hour)
	m.PutSession(s)

	doc := &domain.Document{ID: uuid.New(), Name: "nfe.xml", Kind: domain.SourceNFe}
	require.NoError(t, m.PutDocument(s.ID, doc))

	got, err := m.GetDocument(s.ID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "nfe.xml", got.Name)

	_, err = m.GetDocument(s.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other := newSession(time.Hour)
	m.PutSession(other)
	_, err = m.GetDocument(other.ID, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDocuments_UploadOrder(t *testing.T) {
	m := store.NewMemory()
	s := newSession(time.Hour)
	m.PutSession(s)

	first := &domain.Document{ID: uuid.New(), Name: "a.xml"}
	second := &domain.Document{ID: uuid.New(), Name: "b.txt"}
	require.NoError(t, m.PutDocument(s.ID, first))
	require.NoError(t, m.PutDocument(s.ID, second))

	docs, err := m.ListDocuments(s.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.xml", docs[0].Name)
	assert.Equal(t, "b.txt", docs[1].Name)
}

func TestSweepExpired(t *testing.T) {
	m := store.NewMemory()
	m.PutSession(newSession(-time.Minute))
	m.PutSession(newSession(-time.Second))
	live := newSession(time.Hour)
	m.PutSession(live)

	removed := m.SweepExpired(time.Now())
	assert.Equal(t, 2, removed)

	_, err := m.GetSession(live.ID)
	assert.NoError(t, err)
}
