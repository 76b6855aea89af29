package vfs

// SeekTo locates the block containing logical file position pos and sets
// its transient block_offset and data_position accordingly, returning that
// block. It returns nil only when the descriptor has no blocks at all. A
// pos equal to the file's length positions at the end of the last block.
func SeekTo(descriptor *FileDescriptor, pos int64) *FileBlock {
	if len(descriptor.Blocks) == 0 {
		return nil
	}

	var cumulative int64
	for _, b := range descriptor.Blocks {
		start := cumulative
		end := cumulative + int64(b.DataLength)
		if end >= pos {
			b.BlockOffset = start
			b.DataPosition = pos - start
			return b
		}
		cumulative = end
	}

	last := descriptor.Blocks[len(descriptor.Blocks)-1]
	last.BlockOffset = cumulative - int64(last.DataLength)
	last.DataPosition = int64(last.DataLength)
	return last
}
