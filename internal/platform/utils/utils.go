package utils

import (
	. "blockdir/internal/domain"
	"encoding/binary"
	"errors"
	"io"
)

// AppendColumnEntry serializes entry as a length-prefixed record: row key,
// column name, value, a tombstone byte, then the write timestamp. The same
// layout backs both the WAL and the sst snapshot block payloads.
func AppendColumnEntry(f io.Writer, entry ColumnEntry) error {
	if err := writeLenPrefixed(f, []byte(entry.RowKey())); err != nil {
		return err
	}
	if err := writeLenPrefixed(f, []byte(entry.Column())); err != nil {
		return err
	}
	if err := writeLenPrefixed(f, entry.Value()); err != nil {
		return err
	}

	var tombstoneByte byte
	if entry.Tombstone() {
		tombstoneByte = 1
	}
	if err := binary.Write(f, binary.LittleEndian, tombstoneByte); err != nil {
		return err
	}

	return binary.Write(f, binary.LittleEndian, entry.Timestamp())
}

// WriteLenPrefixedString writes s as a length-prefixed byte string, the
// same framing AppendColumnEntry uses for its fields. Exported for other
// platform encoders (the sst index block) that need the same framing.
func WriteLenPrefixedString(f io.Writer, s string) error {
	return writeLenPrefixed(f, []byte(s))
}

func writeLenPrefixed(f io.Writer, b []byte) error {
	if err := binary.Write(f, binary.LittleEndian, uint32(len(b))); err != nil {
		return err
	}
	_, err := f.Write(b)
	return err
}

func readLenPrefixed(r io.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ReadOneEntry reads a single record written by AppendColumnEntry.
func ReadOneEntry(r io.Reader) (ColumnEntry, error) {
	rowKey, err := readLenPrefixed(r)
	if err != nil {
		return ColumnEntry{}, err
	}
	column, err := readLenPrefixed(r)
	if err != nil {
		return ColumnEntry{}, err
	}
	value, err := readLenPrefixed(r)
	if err != nil {
		return ColumnEntry{}, err
	}

	var tombstoneByte byte
	if err := binary.Read(r, binary.LittleEndian, &tombstoneByte); err != nil {
		return ColumnEntry{}, err
	}

	var timestamp int64
	if err := binary.Read(r, binary.LittleEndian, &timestamp); err != nil {
		return ColumnEntry{}, err
	}

	return NewColumnEntry(string(rowKey), string(column), value, tombstoneByte != 0, timestamp), nil
}

// ReadAllEntries reads every record from r until EOF, as used to replay a
// WAL file or decode an sst data block.
func ReadAllEntries(r io.Reader) ([]ColumnEntry, error) {
	var entries []ColumnEntry
	for {
		entry, err := ReadOneEntry(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
