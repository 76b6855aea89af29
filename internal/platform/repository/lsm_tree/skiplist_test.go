package lsm_tree

import (
	"blockdir/internal/domain"
	_ "github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSkipList_SetAndGet(t *testing.T) {
	sl := NewSkipList(5, 0.5)

	entry := domain.NewColumnEntry("file.txt", "DESCRIPTOR", []byte("value1"), false, 1)
	sl.Set(entry)

	got, ok := sl.Get(entry.Key())
	assert.Equal(t, true, ok, "Expected to find the entry")
	assert.Equal(t, []byte("value1"), got.Value(), "Expected to find value1")

	entryUpdated := domain.NewColumnEntry("file.txt", "DESCRIPTOR", []byte("value2"), false, 2)
	sl.Set(entryUpdated)
	got, ok = sl.Get(entry.Key())
	assert.Equal(t, []byte("value2"), got.Value(), "Expected to find value2 after update")
}

func TestSkipList_SetOlderTimestampIsIgnored(t *testing.T) {
	sl := NewSkipList(5, 0.5)

	entry := domain.NewColumnEntry("file.txt", "DESCRIPTOR", []byte("newer"), false, 10)
	sl.Set(entry)

	stale := domain.NewColumnEntry("file.txt", "DESCRIPTOR", []byte("older"), false, 1)
	sl.Set(stale)

	got, ok := sl.Get(entry.Key())
	assert.True(t, ok)
	assert.Equal(t, []byte("newer"), got.Value(), "a stale write must not overwrite a newer one")
}

func TestSkipList_GetNotFound(t *testing.T) {
	sl := NewSkipList(5, 0.5)
	_, ok := sl.Get("missing\x00DESCRIPTOR")
	if ok {
		t.Errorf("Expected to not find missing key")
	}
}

func TestSkipList_All(t *testing.T) {
	sl := NewSkipList(5, 0.5)
	sl.Set(domain.NewColumnEntry("a", "DESCRIPTOR", []byte("1"), false, 1))
	sl.Set(domain.NewColumnEntry("b", "DESCRIPTOR", []byte("2"), false, 1))
	sl.Set(domain.NewColumnEntry("c", "DESCRIPTOR", []byte("3"), false, 1))

	all := sl.All()
	if len(all) != 3 {
		t.Errorf("Expected 3 elements, got %d", len(all))
	}

	keys := map[string]bool{}
	for _, e := range all {
		keys[e.RowKey()] = true
	}

	for _, k := range []string{"a", "b", "c"} {
		if !keys[k] {
			t.Errorf("Expected row %s in All()", k)
		}
	}
}

func TestSkipList_Size(t *testing.T) {
	sl := NewSkipList(5, 0.5)

	initialSize := sl.Size()
	if initialSize != 0 {
		t.Errorf("Expected initial size 0, got %d", initialSize)
	}

	sl.Set(domain.NewColumnEntry("a", "DESCRIPTOR", []byte("1"), false, 1))
	if sl.Size() <= 0 {
		t.Errorf("Expected size to increase, got %d", sl.Size())
	}

	sl.Set(domain.NewColumnEntry("a", "DESCRIPTOR", []byte("12345"), false, 2))
	if sl.Size() <= 0 {
		t.Errorf("Expected size to increase with update, got %d", sl.Size())
	}
}

func TestSkipList_Reset(t *testing.T) {
	sl := NewSkipList(5, 0.5)
	sl.Set(domain.NewColumnEntry("a", "DESCRIPTOR", []byte("1"), false, 1))
	sl.Set(domain.NewColumnEntry("b", "DESCRIPTOR", []byte("2"), false, 1))

	newSl := sl.Reset()
	if newSl.Size() != 0 {
		t.Errorf("Expected reset skiplist to be empty, got size %d", newSl.Size())
	}

	if len(newSl.All()) != 0 {
		t.Errorf("Expected no elements in reset skiplist")
	}
}
