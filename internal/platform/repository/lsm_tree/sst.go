package lsm_tree

import (
	"blockdir/internal/domain"
	"blockdir/internal/platform/utils"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"time"
)

const sstMagicNumber uint64 = 0x424c4b44535354b4 // "BLKDSST"

type BlockMetadata struct {
	Offset uint64
	Size   uint64
}

type Header struct {
	Version   uint32
	Timestamp uint64
	NumBlocks uint32
}

type DataBlock struct {
	Entries []domain.ColumnEntry
}

type IndexBlock struct {
	Entries  []IndexEntry
	Metadata BlockMetadata
}

type IndexEntry struct {
	FirstKey string
	LastKey  string
	Metadata BlockMetadata
}

type Footer struct {
	IndexMetadata  BlockMetadata
	HeaderMetadata BlockMetadata
	MagicNumber    uint64
}

// SortedStringsTable is a single-data-block, on-disk snapshot of a flushed
// memtable: a sorted run of column entries. FlushSnapshot writes one and
// LoadSnapshot reads its entries back; store-node startup calls neither,
// so no snapshot is replayed into the memtable. There is no compaction between
// levels, since a single node's working set of columns is expected to fit
// comfortably in one generation's table; the shape still mirrors the
// conventional header/data/index/footer layout for a later multi-level
// compactor to extend.
type SortedStringsTable struct {
	Header *Header
	Data   *[]DataBlock
	Index  *IndexBlock
	Footer *Footer
}

// FlushSnapshot writes every entry currently in the memtable to dir as a
// new sst file and returns its path. The caller is responsible for
// truncating or rotating the WAL once the snapshot is durable.
func FlushSnapshot(mt *Memtable, dir string) (string, error) {
	entries := mt.All()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key() < entries[j].Key() })

	var dataBuf bytes.Buffer
	for _, e := range entries {
		if err := utils.AppendColumnEntry(&dataBuf, e); err != nil {
			return "", err
		}
	}

	header := Header{Version: 1, Timestamp: uint64(time.Now().UnixNano()), NumBlocks: 1}
	var headerBuf bytes.Buffer
	if err := binary.Write(&headerBuf, binary.LittleEndian, header); err != nil {
		return "", err
	}

	index := IndexBlock{Metadata: BlockMetadata{Offset: uint64(headerBuf.Len()), Size: uint64(dataBuf.Len())}}
	if len(entries) > 0 {
		index.Entries = []IndexEntry{{
			FirstKey: entries[0].Key(),
			LastKey:  entries[len(entries)-1].Key(),
			Metadata: BlockMetadata{Offset: uint64(headerBuf.Len()), Size: uint64(dataBuf.Len())},
		}}
	}
	var indexBuf bytes.Buffer
	if err := encodeIndexBlock(&indexBuf, index); err != nil {
		return "", err
	}

	footer := Footer{
		HeaderMetadata: BlockMetadata{Offset: 0, Size: uint64(headerBuf.Len())},
		IndexMetadata:  BlockMetadata{Offset: uint64(headerBuf.Len() + dataBuf.Len()), Size: uint64(indexBuf.Len())},
		MagicNumber:    sstMagicNumber,
	}

	name := path.Join(dir, fmt.Sprintf("sst-%d.tbl", header.Timestamp))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0755)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(headerBuf.Bytes()); err != nil {
		return "", err
	}
	if _, err := f.Write(dataBuf.Bytes()); err != nil {
		return "", err
	}
	if _, err := f.Write(indexBuf.Bytes()); err != nil {
		return "", err
	}
	if err := binary.Write(f, binary.LittleEndian, footer); err != nil {
		return "", err
	}

	return name, nil
}

// LoadSnapshot reads back a table written by FlushSnapshot, validating the
// footer's magic number before trusting the data block it points at.
func LoadSnapshot(name string) ([]domain.ColumnEntry, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	footerSize := int64(binary.Size(Footer{}))
	if info.Size() < footerSize {
		return nil, errors.New("sst file too small to contain a footer")
	}

	var footer Footer
	if _, err := f.Seek(info.Size()-footerSize, io.SeekStart); err != nil {
		return nil, err
	}
	if err := binary.Read(f, binary.LittleEndian, &footer); err != nil {
		return nil, err
	}
	if footer.MagicNumber != sstMagicNumber {
		return nil, errors.New("sst file has an invalid magic number")
	}

	dataOffset := int64(footer.HeaderMetadata.Size)
	dataSize := footer.IndexMetadata.Offset - footer.HeaderMetadata.Size
	if _, err := f.Seek(dataOffset, io.SeekStart); err != nil {
		return nil, err
	}
	return utils.ReadAllEntries(io.LimitReader(f, int64(dataSize)))
}

func encodeIndexBlock(w io.Writer, idx IndexBlock) error {
	if err := binary.Write(w, binary.LittleEndian, idx.Metadata); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(idx.Entries))); err != nil {
		return err
	}
	for _, e := range idx.Entries {
		if err := utils.WriteLenPrefixedString(w, e.FirstKey); err != nil {
			return err
		}
		if err := utils.WriteLenPrefixedString(w, e.LastKey); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, e.Metadata); err != nil {
			return err
		}
	}
	return nil
}
