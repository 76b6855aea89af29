package domain

import (
	"time"

	"github.com/google/uuid"
)

// ColumnBatch is the unit of atomic replication between store nodes: a
// single row's descriptor and block columns written together, so a reader
// never observes a descriptor pointing at blocks that have not yet
// propagated. Single-writer-per-file discipline means batches never need
// read sets or conflict checks against each other; arbitration on
// concurrent application to the same row is left to the storage engine's
// per-column write timestamp.
type ColumnBatch struct {
	Id        string
	RowKey    string
	Entries   []ColumnEntry
	Timestamp int64
	NodeId    uint64
}

func NewColumnBatch(rowKey string, entries []ColumnEntry) ColumnBatch {
	return ColumnBatch{
		Id:        uuid.NewString(),
		RowKey:    rowKey,
		Entries:   entries,
		Timestamp: time.Now().UnixNano(),
	}
}

func (b *ColumnBatch) IsEmpty() bool {
	return len(b.Entries) == 0
}
