package vfs

import "sort"

// BlockColumn is one (column name, payload) pair staged for a store batch.
type BlockColumn struct {
	Name  string
	Value []byte
}

// BlockMap is the set of block columns written in one file-layer batch,
// kept in pure lexicographic byte order by column name. The original's
// length-first comparator made "BLOCK-9" sort before "BLOCK-10"; ordering
// here is a plain byte comparison instead, since nothing about block
// application depends on numeric block order within a single batch.
type BlockMap struct {
	columns []BlockColumn
}

func NewBlockMap() *BlockMap {
	return &BlockMap{}
}

func (m *BlockMap) search(name string) int {
	return sort.Search(len(m.columns), func(i int) bool { return m.columns[i].Name >= name })
}

func (m *BlockMap) Put(name string, value []byte) {
	i := m.search(name)
	if i < len(m.columns) && m.columns[i].Name == name {
		m.columns[i].Value = value
		return
	}
	m.columns = insertColumnAt(m.columns, i, BlockColumn{Name: name, Value: value})
}

func (m *BlockMap) Get(name string) ([]byte, bool) {
	i := m.search(name)
	if i < len(m.columns) && m.columns[i].Name == name {
		return m.columns[i].Value, true
	}
	return nil, false
}

func (m *BlockMap) Names() []string {
	names := make([]string, len(m.columns))
	for i, c := range m.columns {
		names[i] = c.Name
	}
	return names
}

// ToMap flattens the ordered columns into the shape SetColumns expects.
func (m *BlockMap) ToMap() map[string][]byte {
	out := make(map[string][]byte, len(m.columns))
	for _, c := range m.columns {
		out[c.Name] = c.Value
	}
	return out
}

func (m *BlockMap) Len() int { return len(m.columns) }

func insertColumnAt(columns []BlockColumn, idx int, c BlockColumn) []BlockColumn {
	columns = append(columns, BlockColumn{})
	copy(columns[idx+1:], columns[idx:])
	columns[idx] = c
	return columns
}
