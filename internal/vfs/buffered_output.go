package vfs

import (
	"context"
	"fmt"
	"time"
)

// BufferedOutput is the write-behind stream (C6) over the File Layer. The
// caller writes bytes sequentially into an in-memory buffer of configured
// size; the buffer drains in one store batch on Flush or Close, or
// automatically whenever it fills.
type BufferedOutput struct {
	file       *File
	descriptor *FileDescriptor

	buffer     []byte
	bufferSize int
	bufferLen  int

	position     int64
	currentBlock *FileBlock
}

func NewBufferedOutput(file *File, descriptor *FileDescriptor, bufferSize int) *BufferedOutput {
	var current *FileBlock
	if len(descriptor.Blocks) == 0 {
		current = descriptor.FirstBlock()
	} else {
		current = SeekTo(descriptor, int64(descriptor.Length))
	}
	return &BufferedOutput{
		file:         file,
		descriptor:   descriptor,
		buffer:       make([]byte, bufferSize),
		bufferSize:   bufferSize,
		position:     int64(descriptor.Length),
		currentBlock: current,
	}
}

func (o *BufferedOutput) Length() uint64 { return o.descriptor.Length }

// Seek flushes any buffered bytes and repositions the write cursor to pos,
// which must not exceed the file's current length.
func (o *BufferedOutput) Seek(ctx context.Context, pos int64) error {
	if err := o.Flush(ctx); err != nil {
		return err
	}
	o.position = pos
	if len(o.descriptor.Blocks) == 0 {
		o.currentBlock = o.descriptor.FirstBlock()
		return nil
	}
	o.currentBlock = SeekTo(o.descriptor, pos)
	return nil
}

// WriteBytes appends b to the buffer, flushing automatically whenever the
// buffer fills.
func (o *BufferedOutput) WriteBytes(ctx context.Context, b []byte) error {
	for len(b) > 0 {
		n := copy(o.buffer[o.bufferLen:], b)
		o.bufferLen += n
		b = b[n:]
		o.position += int64(n)
		if o.bufferLen == o.bufferSize {
			if err := o.Flush(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush drains any buffered bytes into the store in a single batch.
func (o *BufferedOutput) Flush(ctx context.Context) error {
	if o.bufferLen == 0 {
		return nil
	}
	blocks := NewBlockMap()
	if err := o.flushRange(o.buffer[:o.bufferLen], blocks); err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	o.descriptor.LastModified = now
	o.descriptor.LastAccessed = now

	if err := o.file.WriteBlocks(ctx, o.descriptor, blocks); err != nil {
		return err
	}
	o.bufferLen = 0
	return nil
}

// Close flushes any remaining buffered bytes.
func (o *BufferedOutput) Close(ctx context.Context) error {
	return o.Flush(ctx)
}

// flushRange is the fragment-splitting write algorithm: it restructures
// the descriptor's block list to accommodate bytes starting at the
// cursor's current block and position, staging each newly written or
// newly fragmented column into blocks, and leaves o.currentBlock and
// descriptor.Length consistent with the new layout.
//
// A freshly allocated block's data_offset tracks where, within the
// capacity window it is carved from, its bytes begin; its staged payload
// is padded to data_offset+data_length so the read path's
// payload[data_offset:data_offset+data_length] slice stays valid without
// needing to special-case unfragmented blocks.
func (o *BufferedOutput) flushRange(bytes []byte, blocks *BlockMap) error {
	descriptor := o.descriptor
	if o.currentBlock == nil {
		o.currentBlock = descriptor.FirstBlock()
	}
	currentBlock := o.currentBlock

	if currentBlock.DataPosition > 0 {
		preFragment := currentBlock.Copy()
		preFragment.DataLength = int32(currentBlock.DataPosition)
		idx := indexOfBlock(descriptor.Blocks, currentBlock)
		descriptor.Blocks = insertBlockAt(descriptor.Blocks, idx, preFragment)
	}

	remaining := int64(len(bytes))
	offset := int64(0)

	for remaining > 0 {
		idx := indexOfBlock(descriptor.Blocks, currentBlock)

		if currentBlock.DataPosition == int64(currentBlock.DataLength) &&
			currentBlock.PositionOffset() == int64(currentBlock.BlockSize) {
			if idx+1 < len(descriptor.Blocks) {
				currentBlock = descriptor.Blocks[idx+1]
				currentBlock.DataPosition = 0
			} else {
				next := descriptor.allocateBlock()
				descriptor.Blocks = append(descriptor.Blocks, next)
				currentBlock = next
			}
			idx = indexOfBlock(descriptor.Blocks, currentBlock)
		}

		chunk := minInt64(int64(currentBlock.BlockSize)-currentBlock.PositionOffset(), remaining)
		if chunk <= 0 {
			return fmt.Errorf("%w: block %s has no remaining capacity", ErrIO, currentBlock.BlockName)
		}

		var newBlock *FileBlock
		if currentBlock.DataPosition == 0 && chunk > int64(currentBlock.DataLength) {
			currentBlock.DataLength = int32(chunk)
			newBlock = currentBlock
		} else {
			newBlock = descriptor.allocateBlock()
			newBlock.DataOffset = uint64(currentBlock.PositionOffset())
			newBlock.DataLength = int32(chunk)

			displaced := currentBlock
			descriptor.Blocks = insertBlockAt(descriptor.Blocks, idx, newBlock)

			newLocalEnd := newBlock.DataOffset + uint64(newBlock.DataLength)
			if displaced.DataOffset+uint64(displaced.DataLength) <= newLocalEnd {
				descriptor.Blocks = removeBlockAt(descriptor.Blocks, indexOfBlock(descriptor.Blocks, displaced))
			} else {
				displaced.DataLength -= int32(newLocalEnd - displaced.DataOffset)
				displaced.DataOffset = newLocalEnd
			}
		}

		payload := make([]byte, newBlock.DataOffset+uint64(newBlock.DataLength))
		copy(payload[newBlock.DataOffset:], bytes[offset:offset+chunk])
		blocks.Put(newBlock.BlockName, payload)

		offset += chunk
		remaining -= chunk
		currentBlock = newBlock
		currentBlock.DataPosition = chunk
	}

	// The tail of a partially-overwritten block is never left dangling on
	// currentBlock here: the per-iteration trim-or-remove step above already
	// peels it off into its own block (or removes it) the moment a new
	// block's span reaches past it, so currentBlock always exits the loop
	// with DataPosition == DataLength.
	o.currentBlock = currentBlock

	var total uint64
	for _, b := range descriptor.Blocks {
		total += uint64(b.DataLength)
	}
	descriptor.Length = total

	return nil
}
