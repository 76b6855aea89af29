package vfs

import (
	"context"
	"sync"

	"blockdir/internal/platform/client"
)

// fakeStore is an in-memory client.StoreClient used to exercise the vfs
// package without a real store node.
type fakeStore struct {
	mu   sync.Mutex
	rows map[string]map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]map[string][]byte)}
}

func (f *fakeStore) EnsureKeyspace(ctx context.Context) error { return nil }

func (f *fakeStore) ListRowsWithColumn(ctx context.Context, column string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []string
	for row, cols := range f.rows {
		if _, ok := cols[column]; ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeStore) GetColumn(ctx context.Context, rowKey, column string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cols, ok := f.rows[rowKey]
	if !ok {
		return nil, false, nil
	}
	v, ok := cols[column]
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (f *fakeStore) GetColumns(ctx context.Context, rowKey string, columns []string) (map[string][]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[string][]byte)
	cols := f.rows[rowKey]
	for _, name := range columns {
		if v, ok := cols[name]; ok {
			result[name] = v
		}
	}
	return result, nil
}

func (f *fakeStore) SetColumns(ctx context.Context, rowKey string, columns map[string][]byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cols, ok := f.rows[rowKey]
	if !ok {
		cols = make(map[string][]byte)
		f.rows[rowKey] = cols
	}
	for name, value := range columns {
		if value == nil {
			delete(cols, name)
			continue
		}
		cols[name] = value
	}
	return nil
}

func (f *fakeStore) DeleteRow(ctx context.Context, rowKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, rowKey)
	return nil
}

var _ client.StoreClient = (*fakeStore)(nil)
