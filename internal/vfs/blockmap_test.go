package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockMap_LexicographicOrder(t *testing.T) {
	m := NewBlockMap()
	m.Put("BLOCK-10", []byte("ten"))
	m.Put("BLOCK-2", []byte("two"))
	m.Put("BLOCK-1", []byte("one"))

	// pure byte order: "BLOCK-1" < "BLOCK-10" < "BLOCK-2", not numeric order.
	assert.Equal(t, []string{"BLOCK-1", "BLOCK-10", "BLOCK-2"}, m.Names())
}

func TestBlockMap_PutOverwritesExisting(t *testing.T) {
	m := NewBlockMap()
	m.Put("BLOCK-0", []byte("first"))
	m.Put("BLOCK-0", []byte("second"))

	value, found := m.Get("BLOCK-0")
	assert.True(t, found)
	assert.Equal(t, []byte("second"), value)
	assert.Equal(t, 1, m.Len())
}

func TestBlockMap_GetMissing(t *testing.T) {
	m := NewBlockMap()
	_, found := m.Get("BLOCK-0")
	assert.False(t, found)
}
