package repository

import (
	"time"

	"blockdir/internal/domain"
	"blockdir/internal/platform/repository/lsm_tree"
)

// LSMTreeColumnRepository adapts the memtable's flat skiplist to the wide
// row/column model the virtual directory needs, by namespacing every key
// with its row key the way a real wide-column store's partition key would.
type LSMTreeColumnRepository struct {
	mt *lsm_tree.Memtable
}

func NewLSMTreeColumnRepository(mt *lsm_tree.Memtable) *LSMTreeColumnRepository {
	return &LSMTreeColumnRepository{mt: mt}
}

func (r *LSMTreeColumnRepository) Get(rowKey, column string) (domain.ColumnEntry, bool) {
	return r.mt.Get(rowKey + domain.KeySeparator + column)
}

func (r *LSMTreeColumnRepository) GetAll(rowKey string, columns []string) map[string]domain.ColumnEntry {
	result := make(map[string]domain.ColumnEntry, len(columns))
	for _, column := range columns {
		if entry, found := r.mt.Get(rowKey + domain.KeySeparator + column); found {
			result[column] = entry
		}
	}
	return result
}

func (r *LSMTreeColumnRepository) SaveBatch(entries []domain.ColumnEntry) error {
	return r.mt.SetBatch(entries)
}

// ListRowsWithColumn scans every entry currently held in memory for one
// carrying the given column untombstoned, returning the distinct set of
// row keys. This is a full scan: listing is not expected to be a hot path
// compared to column reads and writes.
func (r *LSMTreeColumnRepository) ListRowsWithColumn(column string) []string {
	seen := make(map[string]bool)
	var rows []string
	for _, entry := range r.mt.All() {
		if entry.Column() != column || entry.Tombstone() {
			continue
		}
		if seen[entry.RowKey()] {
			continue
		}
		seen[entry.RowKey()] = true
		rows = append(rows, entry.RowKey())
	}
	return rows
}

// DeleteRow tombstones the row's descriptor column. Block columns are left
// untouched: a deleted row is logically absent from directory listings and
// reads, not physically reclaimed.
func (r *LSMTreeColumnRepository) DeleteRow(rowKey string) (bool, error) {
	descriptor, found := r.mt.Get(rowKey + domain.KeySeparator + domain.DescriptorColumn)
	if !found || descriptor.Tombstone() {
		return false, nil
	}
	tombstoned := domain.NewColumnEntry(rowKey, domain.DescriptorColumn, nil, true, time.Now().UnixNano())
	if err := r.mt.SetBatch([]domain.ColumnEntry{tombstoned}); err != nil {
		return false, err
	}
	return true, nil
}
