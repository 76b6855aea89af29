package vfs

import (
	"context"
	"fmt"

	"blockdir/internal/platform/client"
)

// File is the row-level read/write primitive the buffered streams sit on
// top of: it reads a named set of block columns in one multi-get, and
// writes a batch of block columns plus the updated descriptor in a single
// store call so a flush either lands entirely or not at all.
type File struct {
	store client.StoreClient
}

func NewFile(store client.StoreClient) *File {
	return &File{store: store}
}

// ReadBlocks fetches the named block columns for a file's row.
func (f *File) ReadBlocks(ctx context.Context, descriptor *FileDescriptor, names []string) (map[string][]byte, error) {
	values, err := f.store.GetColumns(ctx, descriptor.Name, names)
	if err != nil {
		return nil, fmt.Errorf("%w: read blocks for %s: %v", ErrIO, descriptor.Name, err)
	}
	return values, nil
}

// WriteBlocks persists a batch of block columns together with the current
// descriptor under the file's row in one store write.
func (f *File) WriteBlocks(ctx context.Context, descriptor *FileDescriptor, blocks *BlockMap) error {
	payload, err := EncodeDescriptor(descriptor)
	if err != nil {
		return err
	}
	columns := blocks.ToMap()
	columns[DescriptorColumn] = payload
	if err := f.store.SetColumns(ctx, descriptor.Name, columns); err != nil {
		return fmt.Errorf("%w: write blocks for %s: %v", ErrIO, descriptor.Name, err)
	}
	return nil
}
