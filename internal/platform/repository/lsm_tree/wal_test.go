package lsm_tree

import (
	. "blockdir/internal/domain"
	"os"
	"reflect"
	"testing"
)

func createTempWal(t *testing.T) *WAL {
	tmpDir, err := os.MkdirTemp("", "waltest")
	if err != nil {
		t.Fatalf("error creating temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	wal, err := NewWal(tmpDir)
	if err != nil {
		t.Fatalf("error creating WAL: %v", err)
	}
	t.Cleanup(func() {
		wal.fd.Close()
	})
	return wal
}

func TestNewWal(t *testing.T) {
	wal := createTempWal(t)
	if wal == nil {
		t.Fatal("WAL is nil")
	}
	if _, err := os.Stat(wal.path); os.IsNotExist(err) {
		t.Errorf("WAL file was not created: %v", wal.path)
	}
	if wal.fd == nil {
		t.Error("file descriptor is nil")
	}
}

func TestWAL_Write(t *testing.T) {
	wal := createTempWal(t)
	entries := []ColumnEntry{
		NewColumnEntry("k1", "DESCRIPTOR", []byte("v1"), false, 1),
		NewColumnEntry("k2", "DESCRIPTOR", []byte("v2"), false, 2),
		NewColumnEntry("k1", "DESCRIPTOR", []byte{}, true, 3),
	}

	err := wal.Write(entries...)
	if err != nil {
		t.Fatalf("error writing to WAL: %v", err)
	}
}

func TestWAL_Read(t *testing.T) {
	wal := createTempWal(t)

	entries := []ColumnEntry{
		NewColumnEntry("alpha", "DESCRIPTOR", []byte("1"), false, 1),
		NewColumnEntry("beta", "DESCRIPTOR", []byte("2"), false, 2),
		NewColumnEntry("alpha", "DESCRIPTOR", []byte{}, true, 3),
	}

	if err := wal.Write(entries...); err != nil {
		t.Fatalf("failed writing to WAL: %v", err)
	}

	// simulate a restart
	wal.fd.Close()
	fd, err := os.Open(wal.path)
	if err != nil {
		t.Fatalf("error reopening WAL file: %v", err)
	}
	wal.fd = fd
	defer wal.fd.Close()

	readEntries, err := wal.Read()
	if err != nil {
		t.Fatalf("failed reading WAL: %v", err)
	}

	if len(readEntries) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(readEntries))
	}

	for i := range entries {
		if !reflect.DeepEqual(readEntries[i], entries[i]) {
			t.Errorf("entry %d: expected %+v, got %+v", i, entries[i], readEntries[i])
		}
	}
}
