package vfs

import (
	"context"
	"fmt"
	"time"

	"blockdir/internal/platform/client"
)

// Directory is the virtual file directory: list/exists/length/modified/
// touch/delete plus create_output/open_input, all addressed by file name
// and backed by one StoreClient.
type Directory struct {
	store      client.StoreClient
	blockSize  uint64
	bufferSize int
}

func NewDirectory(store client.StoreClient, blockSize uint64, bufferSize int) *Directory {
	return &Directory{store: store, blockSize: blockSize, bufferSize: bufferSize}
}

// List returns the names of every non-deleted file, discovered by scanning
// rows carrying a DescriptorColumn.
func (d *Directory) List(ctx context.Context) ([]string, error) {
	rows, err := d.store.ListRowsWithColumn(ctx, DescriptorColumn)
	if err != nil {
		return nil, fmt.Errorf("%w: list rows: %v", ErrIO, err)
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		value, found, err := d.store.GetColumn(ctx, row, DescriptorColumn)
		if err != nil || !found {
			continue
		}
		descriptor, err := DecodeDescriptor(value, d.blockSize)
		if err != nil || descriptor.Deleted {
			continue
		}
		names = append(names, descriptor.Name)
	}
	return names, nil
}

// Exists reports whether name has a live (non-deleted) descriptor. I/O
// failures are swallowed and reported as false, matching the directory's
// existence-check contract.
func (d *Directory) Exists(ctx context.Context, name string) bool {
	descriptor, err := d.LoadDescriptor(ctx, name, false)
	if err != nil || descriptor == nil {
		return false
	}
	return !descriptor.Deleted
}

func (d *Directory) Length(ctx context.Context, name string) (uint64, error) {
	descriptor, err := d.requireDescriptor(ctx, name)
	if err != nil {
		return 0, err
	}
	return descriptor.Length, nil
}

func (d *Directory) Modified(ctx context.Context, name string) (int64, error) {
	descriptor, err := d.requireDescriptor(ctx, name)
	if err != nil {
		return 0, err
	}
	return descriptor.LastModified, nil
}

func (d *Directory) requireDescriptor(ctx context.Context, name string) (*FileDescriptor, error) {
	descriptor, err := d.LoadDescriptor(ctx, name, false)
	if err != nil {
		return nil, err
	}
	if descriptor == nil || descriptor.Deleted {
		return nil, ErrNotFound
	}
	return descriptor, nil
}

// Touch updates a file's last-modified timestamp without touching its
// contents.
func (d *Directory) Touch(ctx context.Context, name string) error {
	descriptor, err := d.requireDescriptor(ctx, name)
	if err != nil {
		return err
	}
	descriptor.LastModified = time.Now().UnixMilli()
	return d.StoreDescriptor(ctx, descriptor)
}

// Delete marks a file's descriptor as deleted. The store layer never
// reclaims the underlying block columns; deletion is logical only.
func (d *Directory) Delete(ctx context.Context, name string) error {
	descriptor, err := d.requireDescriptor(ctx, name)
	if err != nil {
		return err
	}
	descriptor.Deleted = true
	return d.StoreDescriptor(ctx, descriptor)
}

// LoadDescriptor fetches and decodes a file's descriptor. With
// createIfMissing set, an absent descriptor is initialized fresh and
// persisted immediately instead of returning nil.
func (d *Directory) LoadDescriptor(ctx context.Context, name string, createIfMissing bool) (*FileDescriptor, error) {
	value, found, err := d.store.GetColumn(ctx, name, DescriptorColumn)
	if err != nil {
		return nil, fmt.Errorf("%w: load descriptor %s: %v", ErrIO, name, err)
	}
	if !found {
		if !createIfMissing {
			return nil, nil
		}
		descriptor := NewFileDescriptor(name, d.blockSize)
		if err := d.StoreDescriptor(ctx, descriptor); err != nil {
			return nil, err
		}
		return descriptor, nil
	}
	return DecodeDescriptor(value, d.blockSize)
}

// StoreDescriptor writes just the descriptor column for a file's row.
func (d *Directory) StoreDescriptor(ctx context.Context, descriptor *FileDescriptor) error {
	payload, err := EncodeDescriptor(descriptor)
	if err != nil {
		return err
	}
	if err := d.store.SetColumns(ctx, descriptor.Name, map[string][]byte{DescriptorColumn: payload}); err != nil {
		return fmt.Errorf("%w: store descriptor %s: %v", ErrIO, descriptor.Name, err)
	}
	return nil
}

// CreateOutput opens name for writing, creating its descriptor if it does
// not exist yet.
func (d *Directory) CreateOutput(ctx context.Context, name string) (*BufferedOutput, error) {
	descriptor, err := d.LoadDescriptor(ctx, name, true)
	if err != nil {
		return nil, err
	}
	return NewBufferedOutput(NewFile(d.store), descriptor, d.bufferSize), nil
}

// OpenInput opens an existing, non-deleted file for reading.
func (d *Directory) OpenInput(ctx context.Context, name string) (*BufferedInput, error) {
	descriptor, err := d.LoadDescriptor(ctx, name, false)
	if err != nil {
		return nil, err
	}
	if descriptor == nil || descriptor.Deleted {
		return nil, ErrNotFound
	}
	return NewBufferedInput(NewFile(d.store), descriptor, d.bufferSize), nil
}
