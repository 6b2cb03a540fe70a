package docstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store. It is safe for concurrent use and keeps
// documents of a collection in insertion order.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

type memCollection struct {
	order []string
	docs  map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memCollection)}
}

var _ Store = (*Memory)(nil)

func (m *Memory) Get(ctx context.Context, ref DocRef) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.lookup(ref)
	if !ok {
		return nil, ErrNotFound
	}
	return JSONSnapshot{DocID: ref.ID, Data: data}, nil
}

func (m *Memory) GetAll(ctx context.Context, refs []DocRef) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Snapshot, 0, len(refs))
	for _, ref := range refs {
		if data, ok := m.lookup(ref); ok {
			out = append(out, JSONSnapshot{DocID: ref.ID, Data: data})
		}
	}
	return out, nil
}

func (m *Memory) List(ctx context.Context, coll CollectionRef) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[coll.Path()]
	if !ok {
		return []Snapshot{}, nil
	}
	out := make([]Snapshot, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, JSONSnapshot{DocID: id, Data: c.docs[id]})
	}
	return out, nil
}

func (m *Memory) Create(ctx context.Context, ref DocRef, data any) error {
	b, err := EncodeJSON(data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(ref.Coll.Path())
	if _, exists := c.docs[ref.ID]; exists {
		return ErrAlreadyExists
	}
	c.docs[ref.ID] = b
	c.order = append(c.order, ref.ID)
	return nil
}

func (m *Memory) Update(ctx context.Context, ref DocRef, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.lookup(ref)
	if !ok {
		return ErrNotFound
	}
	merged, err := MergeJSON(current, fields)
	if err != nil {
		return err
	}
	m.collections[ref.Coll.Path()].docs[ref.ID] = merged
	return nil
}

func (m *Memory) Delete(ctx context.Context, ref DocRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[ref.Coll.Path()]
	if !ok {
		return nil
	}
	if _, exists := c.docs[ref.ID]; !exists {
		return nil
	}
	delete(c.docs, ref.ID)
	for i, id := range c.order {
		if id == ref.ID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

func (m *Memory) lookup(ref DocRef) ([]byte, bool) {
	c, ok := m.collections[ref.Coll.Path()]
	if !ok {
		return nil, false
	}
	data, ok := c.docs[ref.ID]
	return data, ok
}

func (m *Memory) collection(path string) *memCollection {
	c, ok := m.collections[path]
	if !ok {
		c = &memCollection{docs: make(map[string][]byte)}
		m.collections[path] = c
	}
	return c
}
