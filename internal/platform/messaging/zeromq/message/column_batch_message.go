package message

import "blockdir/internal/domain"

// ColumnBatchMessage is the wire shape a column batch takes over the
// replication pub/sub channel.
type ColumnBatchMessage struct {
	Id        string               `json:"id"`
	RowKey    string               `json:"row_key"`
	Entries   []ColumnEntryMessage `json:"entries"`
	Timestamp int64                `json:"timestamp"`
	NodeId    uint64               `json:"node_id"`
}

type ColumnEntryMessage struct {
	RowKey    string `json:"row_key"`
	Column    string `json:"column"`
	Value     []byte `json:"value"`
	Tombstone bool   `json:"tombstone"`
	Timestamp int64  `json:"timestamp"`
}

func ColumnBatchMessageFrom(batch domain.ColumnBatch) ColumnBatchMessage {
	entries := make([]ColumnEntryMessage, len(batch.Entries))
	for i, e := range batch.Entries {
		entries[i] = ColumnEntryMessage{
			RowKey:    e.RowKey(),
			Column:    e.Column(),
			Value:     e.Value(),
			Tombstone: e.Tombstone(),
			Timestamp: e.Timestamp(),
		}
	}
	return ColumnBatchMessage{
		Id:        batch.Id,
		RowKey:    batch.RowKey,
		Entries:   entries,
		Timestamp: batch.Timestamp,
		NodeId:    batch.NodeId,
	}
}

func (m *ColumnBatchMessage) ToColumnBatch() domain.ColumnBatch {
	entries := make([]domain.ColumnEntry, len(m.Entries))
	for i, e := range m.Entries {
		entries[i] = domain.NewColumnEntry(e.RowKey, e.Column, e.Value, e.Tombstone, e.Timestamp)
	}
	return domain.ColumnBatch{
		Id:        m.Id,
		RowKey:    m.RowKey,
		Entries:   entries,
		Timestamp: m.Timestamp,
		NodeId:    m.NodeId,
	}
}
