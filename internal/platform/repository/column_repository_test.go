package repository

import (
	"os"
	"testing"
	"time"

	"blockdir/internal/domain"
	"blockdir/internal/platform/repository/lsm_tree"
)

func newTestRepository(t *testing.T) *LSMTreeColumnRepository {
	tmpDir, err := os.MkdirTemp("", "repotest")
	if err != nil {
		t.Fatalf("error creating temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	wal, err := lsm_tree.NewWal(tmpDir)
	if err != nil {
		t.Fatalf("error creating WAL: %v", err)
	}

	return NewLSMTreeColumnRepository(lsm_tree.NewMemtable(wal))
}

func TestLSMTreeColumnRepository_SetAndGet(t *testing.T) {
	repo := newTestRepository(t)

	entry := domain.NewColumnEntry("row1", "DESCRIPTOR", []byte("payload"), false, time.Now().UnixNano())
	if err := repo.SaveBatch([]domain.ColumnEntry{entry}); err != nil {
		t.Fatalf("error saving batch: %v", err)
	}

	got, found := repo.Get("row1", "DESCRIPTOR")
	if !found {
		t.Fatal("expected entry to be found")
	}
	if string(got.Value()) != "payload" {
		t.Errorf("expected payload, got %q", got.Value())
	}
}

func TestLSMTreeColumnRepository_GetAll(t *testing.T) {
	repo := newTestRepository(t)

	now := time.Now().UnixNano()
	entries := []domain.ColumnEntry{
		domain.NewColumnEntry("row1", "BLOCK-0", []byte("a"), false, now),
		domain.NewColumnEntry("row1", "BLOCK-1", []byte("b"), false, now),
	}
	if err := repo.SaveBatch(entries); err != nil {
		t.Fatalf("error saving batch: %v", err)
	}

	result := repo.GetAll("row1", []string{"BLOCK-0", "BLOCK-1", "BLOCK-2"})
	if len(result) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result))
	}
	block0 := result["BLOCK-0"]
	if string(block0.Value()) != "a" {
		t.Errorf("unexpected value for BLOCK-0: %q", block0.Value())
	}
}

func TestLSMTreeColumnRepository_ListRowsWithColumnExcludesTombstones(t *testing.T) {
	repo := newTestRepository(t)

	now := time.Now().UnixNano()
	entries := []domain.ColumnEntry{
		domain.NewColumnEntry("row1", "DESCRIPTOR", []byte("x"), false, now),
		domain.NewColumnEntry("row2", "DESCRIPTOR", []byte("y"), false, now),
		domain.NewColumnEntry("row3", "DESCRIPTOR", nil, true, now),
	}
	if err := repo.SaveBatch(entries); err != nil {
		t.Fatalf("error saving batch: %v", err)
	}

	rows := repo.ListRowsWithColumn("DESCRIPTOR")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(rows), rows)
	}
}

func TestLSMTreeColumnRepository_SetOlderTimestampIsIgnored(t *testing.T) {
	repo := newTestRepository(t)

	if err := repo.SaveBatch([]domain.ColumnEntry{
		domain.NewColumnEntry("row1", "DESCRIPTOR", []byte("new"), false, 100),
	}); err != nil {
		t.Fatalf("error saving batch: %v", err)
	}
	if err := repo.SaveBatch([]domain.ColumnEntry{
		domain.NewColumnEntry("row1", "DESCRIPTOR", []byte("stale"), false, 50),
	}); err != nil {
		t.Fatalf("error saving batch: %v", err)
	}

	got, found := repo.Get("row1", "DESCRIPTOR")
	if !found {
		t.Fatal("expected entry to be found")
	}
	if string(got.Value()) != "new" {
		t.Errorf("expected last-write-wins by timestamp to keep %q, got %q", "new", got.Value())
	}
}

func TestLSMTreeColumnRepository_DeleteRow(t *testing.T) {
	repo := newTestRepository(t)

	if err := repo.SaveBatch([]domain.ColumnEntry{
		domain.NewColumnEntry("row1", "DESCRIPTOR", []byte("x"), false, time.Now().UnixNano()),
	}); err != nil {
		t.Fatalf("error saving batch: %v", err)
	}

	deleted, err := repo.DeleteRow("row1")
	if err != nil {
		t.Fatalf("error deleting row: %v", err)
	}
	if !deleted {
		t.Fatal("expected row to be deleted")
	}

	got, found := repo.Get("row1", "DESCRIPTOR")
	if !found {
		t.Fatal("expected the repository to still return the tombstoned entry itself")
	}
	if !got.Tombstone() {
		t.Error("expected the returned entry to carry the tombstone flag")
	}

	rows := repo.ListRowsWithColumn("DESCRIPTOR")
	if len(rows) != 0 {
		t.Errorf("expected no rows listing a tombstoned descriptor, got %v", rows)
	}
}

func TestLSMTreeColumnRepository_DeleteRowNeverCreated(t *testing.T) {
	repo := newTestRepository(t)

	deleted, err := repo.DeleteRow("missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Error("expected delete of a never-created row to report false")
	}
}
