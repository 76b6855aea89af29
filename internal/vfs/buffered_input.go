package vfs

import (
	"context"
	"fmt"
)

// BufferedInput is the read stream (C7) over the File Layer. Each read
// resolves the run of blocks covering the requested range and fetches
// them in a single multi-get, slicing each block's payload at
// [data_offset : data_offset+data_length] — the read path's documented
// fix for the original's offset-0 read, which only happened to work
// because it never exercised pre/post fragments.
type BufferedInput struct {
	file       *File
	descriptor *FileDescriptor

	position     int64
	currentBlock *FileBlock
}

func NewBufferedInput(file *File, descriptor *FileDescriptor, bufferSize int) *BufferedInput {
	_ = bufferSize
	return &BufferedInput{
		file:         file,
		descriptor:   descriptor,
		currentBlock: SeekTo(descriptor, 0),
	}
}

func (in *BufferedInput) Length() uint64 { return in.descriptor.Length }

func (in *BufferedInput) Position() int64 { return in.position }

// Seek repositions the read cursor to an arbitrary logical offset.
func (in *BufferedInput) Seek(pos int64) {
	in.position = pos
	in.currentBlock = SeekTo(in.descriptor, pos)
}

// ReadBytes fills out with up to len(out) bytes starting at the stream's
// current position, returning the number of bytes actually read. A short
// read (n < len(out)) means the file ended.
func (in *BufferedInput) ReadBytes(ctx context.Context, out []byte) (int, error) {
	length := len(out)
	if length == 0 || in.currentBlock == nil {
		return 0, nil
	}

	span, startIdx := in.spanFor(length)
	if len(span) == 0 {
		return 0, nil
	}

	names := make([]string, len(span))
	for i, b := range span {
		names[i] = b.BlockName
	}
	payloads, err := in.file.ReadBlocks(ctx, in.descriptor, names)
	if err != nil {
		return 0, err
	}

	outOffset := 0
	remaining := length
	var cur *FileBlock
	for i, b := range span {
		payload, found := payloads[b.BlockName]
		if !found {
			return outOffset, fmt.Errorf("%w: missing block %s", ErrIO, b.BlockName)
		}

		position := int64(0)
		if i == 0 {
			position = b.DataPosition
		}
		available := int64(b.DataLength) - position
		take := available
		if take > int64(remaining) {
			take = int64(remaining)
		}
		if take <= 0 {
			break
		}

		start := int64(b.DataOffset) + position
		copy(out[outOffset:outOffset+int(take)], payloadSlice(payload, start, take))

		outOffset += int(take)
		remaining -= int(take)
		b.DataPosition = position + take
		cur = b
		if remaining == 0 {
			break
		}
	}

	if cur == nil {
		cur = in.currentBlock
	}

	in.position += int64(outOffset)
	if cur.DataPosition == int64(cur.DataLength) {
		idx := indexOfBlock(in.descriptor.Blocks, cur)
		if idx+1 < len(in.descriptor.Blocks) {
			cur = in.descriptor.Blocks[idx+1]
			cur.DataPosition = 0
		}
	}
	in.currentBlock = cur

	_ = startIdx
	return outOffset, nil
}

// spanFor collects the ordered run of blocks, starting at the current
// cursor block, whose combined remaining valid bytes can satisfy up to
// length bytes of the read.
func (in *BufferedInput) spanFor(length int) ([]*FileBlock, int) {
	var span []*FileBlock
	covered := int64(0)
	idx := indexOfBlock(in.descriptor.Blocks, in.currentBlock)
	if idx < 0 {
		return nil, -1
	}
	startIdx := idx
	first := true
	for idx < len(in.descriptor.Blocks) && covered < int64(length) {
		b := in.descriptor.Blocks[idx]
		remainingInBlock := int64(b.DataLength)
		if first {
			remainingInBlock -= b.DataPosition
			first = false
		}
		span = append(span, b)
		covered += remainingInBlock
		idx++
	}
	return span, startIdx
}

func payloadSlice(payload []byte, start, length int64) []byte {
	end := start + length
	if end > int64(len(payload)) {
		end = int64(len(payload))
	}
	if start > end {
		start = end
	}
	return payload[start:end]
}
