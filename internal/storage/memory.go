package storage

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// MemoryKV is a process-local KV. With a positive quota, writes that would
// make the total size of keys plus values exceed it fail with
// ErrQuotaExceeded and leave the contents unchanged.
type MemoryKV struct {
	mu    sync.Mutex
	data  map[string][]byte
	quota int
}

// MemoryOption configures a MemoryKV.
type MemoryOption func(*MemoryKV)

// WithQuota limits the total stored bytes. Zero means unlimited.
func WithQuota(bytes int) MemoryOption {
	return func(m *MemoryKV) { m.quota = bytes }
}

func NewMemoryKV(opts ...MemoryOption) *MemoryKV {
	m := &MemoryKV{data: make(map[string][]byte)}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	return m.SetMany(ctx, map[string][]byte{key: value})
}

func (m *MemoryKV) SetMany(ctx context.Context, pairs map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := maps.Clone(m.data)
	for k, v := range pairs {
		next[k] = append([]byte{}, v...)
	}
	if m.quota > 0 {
		if used := size(next); used > m.quota {
			return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, used, m.quota)
		}
	}
	m.data = next
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) List(ctx context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		out[k] = append([]byte{}, v...)
	}
	return out, nil
}

func (m *MemoryKV) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

func size(data map[string][]byte) int {
	n := 0
	for k, v := range data {
		n += len(k) + len(v)
	}
	return n
}

var _ KV = (*MemoryKV)(nil)
