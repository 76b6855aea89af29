package service

import (
	"time"

	"blockdir/internal/domain"
)

// SaveColumnsService applies one row's descriptor-plus-blocks write as a
// single batch: the file directory layer depends on a reader never seeing
// a descriptor that outruns the blocks it references, so every column that
// changes together is saved together.
type SaveColumnsService struct {
	batchManager *domain.ColumnBatchManager
}

func NewSaveColumnsService(batchManager *domain.ColumnBatchManager) *SaveColumnsService {
	return &SaveColumnsService{batchManager: batchManager}
}

type SaveColumnsCommand struct {
	RowKey  string
	Columns map[string][]byte
}

type SaveColumnsResult struct {
	Success bool
	Err     error
}

func (s *SaveColumnsService) Execute(command SaveColumnsCommand) SaveColumnsResult {
	now := time.Now().UnixNano()
	entries := make([]domain.ColumnEntry, 0, len(command.Columns))
	for column, value := range command.Columns {
		entries = append(entries, domain.NewColumnEntry(command.RowKey, column, value, value == nil, now))
	}

	batch := domain.NewColumnBatch(command.RowKey, entries)
	if err := s.batchManager.Apply(batch); err != nil {
		return SaveColumnsResult{Success: false, Err: err}
	}
	return SaveColumnsResult{Success: true}
}
