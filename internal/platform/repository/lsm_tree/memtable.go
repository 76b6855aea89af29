package lsm_tree

import (
	. "blockdir/internal/domain"
	"log"
	"sync"
)

type Memtable struct {
	mu       sync.RWMutex
	skiplist *SkipList
	wal      *WAL
	logger   log.Logger
}

func NewMemtable(wal *WAL) *Memtable {
	return &Memtable{
		skiplist: NewSkipList(5, 5),
		wal:      wal,
	}
}

func (mt *Memtable) Set(entry ColumnEntry) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.skiplist.Set(entry)
	if err := mt.wal.Write(entry); err != nil {
		mt.logger.Panicf("write wal failed: %v", err)
	}
}

func (mt *Memtable) SetBatch(entries []ColumnEntry) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if err := mt.wal.Write(entries...); err != nil {
		return err
	}
	for _, entry := range entries {
		mt.skiplist.Set(entry)
	}
	return nil
}

func (mt *Memtable) Get(key string) (ColumnEntry, bool) {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	return mt.skiplist.Get(key)
}

func (mt *Memtable) All() []ColumnEntry {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	return mt.skiplist.All()
}
