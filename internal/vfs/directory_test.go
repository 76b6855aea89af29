package vfs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, ctx context.Context, in *BufferedInput) []byte {
	t.Helper()
	out := make([]byte, in.Length())
	n, err := in.ReadBytes(ctx, out)
	require.NoError(t, err)
	require.Equal(t, len(out), n)
	return out
}

func TestDirectory_CreateWriteList(t *testing.T) {
	ctx := context.Background()
	dir := NewDirectory(newFakeStore(), 1024, 64)

	out, err := dir.CreateOutput(ctx, "greeting.txt")
	require.NoError(t, err)
	require.NoError(t, out.WriteBytes(ctx, []byte("hello world")))
	require.NoError(t, out.Close(ctx))

	names, err := dir.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"greeting.txt"}, names)

	length, err := dir.Length(ctx, "greeting.txt")
	require.NoError(t, err)
	assert.EqualValues(t, len("hello world"), length)

	in, err := dir.OpenInput(ctx, "greeting.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(readAll(t, ctx, in)))
}

func TestBufferedOutput_OverwriteExtendsLength(t *testing.T) {
	ctx := context.Background()
	dir := NewDirectory(newFakeStore(), 4, 64)

	out, err := dir.CreateOutput(ctx, "f")
	require.NoError(t, err)
	require.NoError(t, out.WriteBytes(ctx, []byte("ABCD")))
	require.NoError(t, out.Close(ctx))

	out, err = dir.CreateOutput(ctx, "f")
	require.NoError(t, err)
	require.NoError(t, out.Seek(ctx, 2))
	require.NoError(t, out.WriteBytes(ctx, []byte("XYZW")))
	require.NoError(t, out.Close(ctx))

	length, err := dir.Length(ctx, "f")
	require.NoError(t, err)
	assert.EqualValues(t, 6, length)

	in, err := dir.OpenInput(ctx, "f")
	require.NoError(t, err)
	assert.Equal(t, "ABXYZW", string(readAll(t, ctx, in)))
}

func TestBufferedOutput_PartialOverwriteProducesFragments(t *testing.T) {
	ctx := context.Background()
	dir := NewDirectory(newFakeStore(), 8, 64)

	out, err := dir.CreateOutput(ctx, "f")
	require.NoError(t, err)
	require.NoError(t, out.WriteBytes(ctx, []byte("ABCDEFGH")))
	require.NoError(t, out.Close(ctx))

	out, err = dir.CreateOutput(ctx, "f")
	require.NoError(t, err)
	require.NoError(t, out.Seek(ctx, 3))
	require.NoError(t, out.WriteBytes(ctx, []byte("xy")))
	require.NoError(t, out.Close(ctx))

	length, err := dir.Length(ctx, "f")
	require.NoError(t, err)
	assert.EqualValues(t, 8, length)

	in, err := dir.OpenInput(ctx, "f")
	require.NoError(t, err)
	assert.Equal(t, "ABCxyFGH", string(readAll(t, ctx, in)))

	descriptor, err := dir.LoadDescriptor(ctx, "f", false)
	require.NoError(t, err)
	require.Len(t, descriptor.Blocks, 3)
	assert.EqualValues(t, 3, descriptor.Blocks[0].DataLength)
	assert.EqualValues(t, 0, descriptor.Blocks[0].DataOffset)
	assert.EqualValues(t, 2, descriptor.Blocks[1].DataLength)
	assert.EqualValues(t, 3, descriptor.Blocks[1].DataOffset)
	assert.EqualValues(t, 3, descriptor.Blocks[2].DataLength)
	assert.EqualValues(t, 5, descriptor.Blocks[2].DataOffset)
}

func TestDirectory_DeleteHidesFromListing(t *testing.T) {
	ctx := context.Background()
	dir := NewDirectory(newFakeStore(), 1024, 64)

	out, err := dir.CreateOutput(ctx, "gone.txt")
	require.NoError(t, err)
	require.NoError(t, out.WriteBytes(ctx, []byte("data")))
	require.NoError(t, out.Close(ctx))

	require.NoError(t, dir.Delete(ctx, "gone.txt"))

	names, err := dir.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.False(t, dir.Exists(ctx, "gone.txt"))

	_, err = dir.OpenInput(ctx, "gone.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDescriptor_RoundTrip(t *testing.T) {
	descriptor := NewFileDescriptor("f", 16)
	descriptor.Length = 10
	descriptor.LastModified = 1000
	descriptor.LastAccessed = 2000
	descriptor.Blocks = []*FileBlock{
		{BlockNumber: 0, BlockName: "BLOCK-0", BlockSize: 16, DataOffset: 0, DataLength: 10},
	}

	payload, err := EncodeDescriptor(descriptor)
	require.NoError(t, err)

	decoded, err := DecodeDescriptor(payload, 16)
	require.NoError(t, err)

	assert.Equal(t, descriptor.Name, decoded.Name)
	assert.Equal(t, descriptor.Length, decoded.Length)
	assert.Equal(t, descriptor.LastModified, decoded.LastModified)
	assert.Equal(t, descriptor.LastAccessed, decoded.LastAccessed)
	assert.Equal(t, descriptor.BlockSize, decoded.BlockSize)
	require.Len(t, decoded.Blocks, 1)
	assert.Equal(t, descriptor.Blocks[0].BlockName, decoded.Blocks[0].BlockName)
	assert.Equal(t, descriptor.Blocks[0].DataLength, decoded.Blocks[0].DataLength)
}

func TestBufferedOutput_MultiBlockSequentialWrite(t *testing.T) {
	ctx := context.Background()
	dir := NewDirectory(newFakeStore(), 16, 64)

	out, err := dir.CreateOutput(ctx, "f")
	require.NoError(t, err)

	payload := make([]byte, 40)
	for i := range payload {
		payload[i] = byte('a' + i%26)
	}
	require.NoError(t, out.WriteBytes(ctx, payload))
	require.NoError(t, out.Close(ctx))

	descriptor, err := dir.LoadDescriptor(ctx, "f", false)
	require.NoError(t, err)
	require.Len(t, descriptor.Blocks, 3)
	assert.EqualValues(t, 16, descriptor.Blocks[0].DataLength)
	assert.EqualValues(t, 16, descriptor.Blocks[1].DataLength)
	assert.EqualValues(t, 8, descriptor.Blocks[2].DataLength)
	assert.EqualValues(t, 40, descriptor.Length)

	in, err := dir.OpenInput(ctx, "f")
	require.NoError(t, err)
	assert.Equal(t, payload, readAll(t, ctx, in))
}

// failingStore is a fakeStore whose single-column reads always fail.
type failingStore struct {
	*fakeStore
}

func (failingStore) GetColumn(ctx context.Context, rowKey, column string) ([]byte, bool, error) {
	return nil, false, errors.New("store unavailable")
}

func TestDirectory_ExistsSwallowsIOErrors(t *testing.T) {
	ctx := context.Background()
	dir := NewDirectory(newFakeStore(), 1024, 64)
	assert.False(t, dir.Exists(ctx, "never-created"))

	failing := NewDirectory(failingStore{newFakeStore()}, 1024, 64)
	assert.False(t, failing.Exists(ctx, "any.txt"))
}
