package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps artifacts in memory. It is mostly useful in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, namespace, path string, content []byte) error {
	ns, p, err := cleanAddress(namespace, path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data[ns+"/"+p] = append([]byte{}, content...)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, namespace, path string) ([]byte, error) {
	ns, p, err := cleanAddress(namespace, path)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[ns+"/"+p]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte{}, raw...), nil
}

func (s *MemoryStore) List(_ context.Context, namespace string) ([]string, error) {
	ns, err := cleanNamespace(namespace)
	if err != nil {
		return nil, err
	}

	prefix := ns + "/"
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.data))
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			out = append(out, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(out)
	return out, nil
}

// Len returns the number of stored artifacts across all namespaces.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
