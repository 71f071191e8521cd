package layout

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store persists layouts by name.
type Store interface {
	// Save validates l, stamps SavedAt and stores it, replacing any layout
	// with the same name.
	Save(ctx context.Context, l Layout) error
	// Load returns the layout stored under name or ErrNotFound.
	Load(ctx context.Context, name string) (Layout, error)
	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
	// Delete removes the layout or returns ErrNotFound.
	Delete(ctx context.Context, name string) error
}

// MemoryStore keeps layouts in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]Layout
	now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		layouts: make(map[string]Layout),
		now:     time.Now,
	}
}

// Save stores l under its name, replacing any previous layout.
func (m *MemoryStore) Save(_ context.Context, l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	l.Lines = append([]string(nil), l.Lines...)
	l.SavedAt = m.now().UTC()

	m.mu.Lock()
	m.layouts[l.Name] = l
	m.mu.Unlock()
	return nil
}

// Load returns the layout stored under name, or ErrNotFound.
func (m *MemoryStore) Load(_ context.Context, name string) (Layout, error) {
	if err := ValidateName(name); err != nil {
		return Layout{}, err
	}
	m.mu.RLock()
	l, ok := m.layouts[name]
	m.mu.RUnlock()
	if !ok {
		return Layout{}, ErrNotFound
	}
	l.Lines = append([]string(nil), l.Lines...)
	return l, nil
}

// List returns the stored layout names in sorted order.
func (m *MemoryStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	names := make([]string, 0, len(m.layouts))
	for name := range m.layouts {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)
	return names, nil
}

// Delete removes the layout stored under name, or returns ErrNotFound.
func (m *MemoryStore) Delete(_ context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.layouts[name]; !ok {
		return ErrNotFound
	}
	delete(m.layouts, name)
	return nil
}
