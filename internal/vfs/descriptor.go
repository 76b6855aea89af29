package vfs

import "fmt"

// DescriptorColumn is the well-known column name every row in the backing
// keyspace carries: the JSON-encoded FileDescriptor for the file the row
// represents.
const DescriptorColumn = "DESCRIPTOR"

// FileBlock is one entry in a descriptor's block list: a fixed-capacity
// window (block_size bytes) addressed by its own column name, holding
// data_length valid bytes starting at data_offset within that window.
// Ordinary blocks carry data_offset 0; a non-zero data_offset marks a
// fragment produced by a partial overwrite that split an existing block.
type FileBlock struct {
	BlockNumber int32
	BlockName   string
	BlockSize   uint64
	DataOffset  uint64
	DataLength  int32

	// BlockOffset and DataPosition are transient cursor state set by Seek
	// and the buffered streams; neither is persisted in the descriptor.
	BlockOffset  int64
	DataPosition int64
}

// Copy returns an independent clone of the block, used when fragmenting one
// block into a pre-fragment/post-fragment pair around a partial overwrite.
func (b *FileBlock) Copy() *FileBlock {
	clone := *b
	return &clone
}

// PositionOffset is the absolute physical cursor within the block's
// capacity window (data_offset + data_position), used to tell whether the
// block is full at its right edge and how much more can still fit in it.
func (b *FileBlock) PositionOffset() int64 {
	return int64(b.DataOffset) + b.DataPosition
}

// FileDescriptor is the per-file record stored under DescriptorColumn: its
// logical length, soft-delete flag, timestamps, and ordered block list.
type FileDescriptor struct {
	Name         string
	Length       uint64
	Deleted      bool
	LastModified int64
	LastAccessed int64
	BlockSize    uint64
	Blocks       []*FileBlock

	nextBlockNumber int32
}

// NewFileDescriptor initializes an empty descriptor for a freshly created
// file, carrying the directory's configured block size.
func NewFileDescriptor(name string, blockSize uint64) *FileDescriptor {
	return &FileDescriptor{Name: name, BlockSize: blockSize}
}

// FirstBlock returns the descriptor's first block, allocating one if the
// block list is still empty.
func (d *FileDescriptor) FirstBlock() *FileBlock {
	if len(d.Blocks) == 0 {
		d.Blocks = append(d.Blocks, d.allocateBlock())
	}
	return d.Blocks[0]
}

// LastBlock returns the descriptor's last block, allocating one if the
// block list is still empty.
func (d *FileDescriptor) LastBlock() *FileBlock {
	if len(d.Blocks) == 0 {
		d.Blocks = append(d.Blocks, d.allocateBlock())
	}
	return d.Blocks[len(d.Blocks)-1]
}

func (d *FileDescriptor) allocateBlock() *FileBlock {
	n := d.nextBlockNumber
	d.nextBlockNumber++
	return &FileBlock{
		BlockNumber: n,
		BlockName:   fmt.Sprintf("BLOCK-%d", n),
		BlockSize:   d.BlockSize,
	}
}

// recomputeNextBlockNumber restores the allocator's cursor after decoding a
// descriptor from its persisted payload, which carries no such field.
func (d *FileDescriptor) recomputeNextBlockNumber() {
	var max int32 = -1
	for _, b := range d.Blocks {
		if b.BlockNumber > max {
			max = b.BlockNumber
		}
	}
	d.nextBlockNumber = max + 1
}

func indexOfBlock(blocks []*FileBlock, target *FileBlock) int {
	for i, b := range blocks {
		if b == target {
			return i
		}
	}
	return -1
}

func insertBlockAt(blocks []*FileBlock, idx int, b *FileBlock) []*FileBlock {
	blocks = append(blocks, nil)
	copy(blocks[idx+1:], blocks[idx:])
	blocks[idx] = b
	return blocks
}

func removeBlockAt(blocks []*FileBlock, idx int) []*FileBlock {
	return append(blocks[:idx], blocks[idx+1:]...)
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
