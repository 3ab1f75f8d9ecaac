package document

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// Memory is an in-process Repository used by tests and tooling that run
// without PostgreSQL. Documents are listed in insertion order.
type Memory[T any] struct {
	mu   sync.RWMutex
	ids  []string
	docs map[string]T
}

func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{docs: make(map[string]T)}
}

func (m *Memory[T]) List(context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.ids))
	for _, id := range m.ids {
		out = append(out, m.docs[id])
	}
	return out, nil
}

func (m *Memory[T]) Get(_ context.Context, id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *Memory[T]) Insert(_ context.Context, id string, doc T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; ok {
		return domain.ErrAlreadyExists
	}
	m.ids = append(m.ids, id)
	m.docs[id] = doc
	return nil
}

func (m *Memory[T]) Upsert(_ context.Context, id string, doc T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		m.ids = append(m.ids, id)
	}
	m.docs[id] = doc
	return nil
}

func (m *Memory[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.docs, id)
	for i, existing := range m.ids {
		if existing == id {
			m.ids = append(m.ids[:i:i], m.ids[i+1:]...)
			break
		}
	}
	return nil
}

// Update applies fn to the stored document under the write lock.
func (m *Memory[T]) Update(id string, fn func(*T)) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fn(&doc)
	m.docs[id] = doc
	return &doc, nil
}
