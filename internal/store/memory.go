package store

import (
	"context"
	"sync"

	"github.com/serroba/shorturl/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[shortener.Code]shortener.Link // code -> link
	codes map[string]shortener.Code         // original url -> code
}

// NewMemoryStore creates a new in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[shortener.Code]shortener.Link),
		codes: make(map[string]shortener.Code),
	}
}

func (m *MemoryStore) Insert(_ context.Context, link *shortener.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.codes[link.OriginalURL]; ok {
		return shortener.ErrURLTaken
	}

	if _, ok := m.links[link.Code]; ok {
		return shortener.ErrCodeTaken
	}

	m.links[link.Code] = *link
	m.codes[link.OriginalURL] = link.Code

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &link, nil
}

func (m *MemoryStore) GetByOriginalURL(_ context.Context, originalURL string) (*shortener.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	code, ok := m.codes[originalURL]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	link := m.links[code]

	return &link, nil
}

// Len returns the number of stored links.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.links)
}

var _ shortener.Repository = (*MemoryStore)(nil)
