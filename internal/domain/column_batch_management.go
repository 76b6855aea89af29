package domain

import "log"

// ColumnBatchBroadcaster fans a locally-applied batch out to the rest of
// the replica set. Unlike the commit-init/commit-confirm/ack handshake a
// cross-file transaction protocol would need, a single store node is the
// sole writer of any given row (file), so there is nothing to negotiate:
// broadcasting a batch is fire-and-forget, and a listener on another node
// applies it unconditionally once received.
type ColumnBatchBroadcaster interface {
	BroadcastBatch(batch ColumnBatch) error
}

// ColumnBatchManager applies locally-originated writes to the repository,
// broadcasts them to replicas, and applies batches arriving from other
// nodes. There is no conflict detection or two-phase commit: writes are
// scoped to a single row owned by a single writer, so nothing to arbitrate.
type ColumnBatchManager struct {
	repository  ColumnEntryRepository
	broadcaster ColumnBatchBroadcaster
}

func NewColumnBatchManager(repository ColumnEntryRepository, broadcaster ColumnBatchBroadcaster) *ColumnBatchManager {
	return &ColumnBatchManager{
		repository:  repository,
		broadcaster: broadcaster,
	}
}

// Apply saves the batch locally and broadcasts it to replicas. A failed
// broadcast is logged and neither fails the call nor rolls back the local
// write: the local node remains the authority for its own rows. A batch
// whose broadcast failed is not re-sent.
func (m *ColumnBatchManager) Apply(batch ColumnBatch) error {
	if batch.IsEmpty() {
		return nil
	}
	if err := m.repository.SaveBatch(batch.Entries); err != nil {
		return err
	}
	if err := m.broadcaster.BroadcastBatch(batch); err != nil {
		log.Printf("broadcast of batch %s failed: %v", batch.Id, err)
	}
	return nil
}

// ApplyReplicated applies a batch received from another node without
// re-broadcasting it, breaking the cycle a naive forward would create.
func (m *ColumnBatchManager) ApplyReplicated(batch ColumnBatch) error {
	if batch.IsEmpty() {
		return nil
	}
	return m.repository.SaveBatch(batch.Entries)
}
