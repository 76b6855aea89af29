package vfs

import (
	"fmt"

	json "github.com/json-iterator/go"
)

type descriptorPayload struct {
	Name         string         `json:"name"`
	Length       uint64         `json:"length"`
	Deleted      bool           `json:"deleted"`
	LastModified int64          `json:"lastModified"`
	LastAccessed int64          `json:"lastAccessed"`
	BlockSize    uint64         `json:"blockSize"`
	Blocks       []blockPayload `json:"blocks"`
}

type blockPayload struct {
	ColumnName  string `json:"columnName"`
	BlockNumber int32  `json:"blockNumber"`
	BlockSize   uint64 `json:"blockSize"`
	DataOffset  uint64 `json:"dataOffset"`
	DataLength  int32  `json:"dataLength"`
}

// EncodeDescriptor serializes a descriptor to the JSON payload stored under
// DescriptorColumn.
func EncodeDescriptor(d *FileDescriptor) ([]byte, error) {
	payload := descriptorPayload{
		Name:         d.Name,
		Length:       d.Length,
		Deleted:      d.Deleted,
		LastModified: d.LastModified,
		LastAccessed: d.LastAccessed,
		BlockSize:    d.BlockSize,
		Blocks:       make([]blockPayload, len(d.Blocks)),
	}
	for i, b := range d.Blocks {
		payload.Blocks[i] = blockPayload{
			ColumnName:  b.BlockName,
			BlockNumber: b.BlockNumber,
			BlockSize:   b.BlockSize,
			DataOffset:  b.DataOffset,
			DataLength:  b.DataLength,
		}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDescriptor, err)
	}
	return data, nil
}

// DecodeDescriptor parses a descriptor payload. defaultBlockSize is used
// only as a fallback for payloads that predate the blockSize field.
func DecodeDescriptor(data []byte, defaultBlockSize uint64) (*FileDescriptor, error) {
	var payload descriptorPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDescriptor, err)
	}

	blockSize := payload.BlockSize
	if blockSize == 0 {
		blockSize = defaultBlockSize
	}

	d := &FileDescriptor{
		Name:         payload.Name,
		Length:       payload.Length,
		Deleted:      payload.Deleted,
		LastModified: payload.LastModified,
		LastAccessed: payload.LastAccessed,
		BlockSize:    blockSize,
	}
	d.Blocks = make([]*FileBlock, len(payload.Blocks))
	for i, b := range payload.Blocks {
		d.Blocks[i] = &FileBlock{
			BlockNumber: b.BlockNumber,
			BlockName:   b.ColumnName,
			BlockSize:   b.BlockSize,
			DataOffset:  b.DataOffset,
			DataLength:  b.DataLength,
		}
	}
	d.recomputeNextBlockNumber()
	return d, nil
}
