// sink_test.go - behavior tests for read-write views
//
// (c) 2024- Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package mapped_test

import (
	"crypto/rand"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mapped "github.com/opencoff/go-mapped"
)

func TestWriteSyncRoundTrip(t *testing.T) {
	sz := 2*_page + _page/3
	path, _ := createFile(t, sz)

	snk, err := mapped.MapSink[byte](path, 0, mapped.WholeFile)
	require.NoError(t, err)

	want := make([]byte, sz)
	_, err = rand.Read(want)
	require.NoError(t, err)

	n := copy(snk.Data(), want)
	assert.EqualValues(t, sz, n)

	require.NoError(t, snk.Sync())
	snk.Unmap()

	// a fresh read-only view observes the written bytes
	src, err := mapped.MapSource[byte](path, 0, mapped.WholeFile)
	require.NoError(t, err)
	defer src.Unmap()
	assert.Equal(t, want, src.Data())

	// so does plain file I/O
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUnalignedRegion(t *testing.T) {
	// the canonical scenario: bytes [10, 20) of a 100 byte file
	path, buf := createFile(t, 100)

	snk, err := mapped.MapSink[byte](path, 10, 10)
	require.NoError(t, err)

	assert.True(t, snk.IsOpen())
	assert.EqualValues(t, 10, snk.Offset())
	assert.EqualValues(t, 10, snk.Len())
	assert.EqualValues(t, 20, snk.MappedLen(), "mapping starts at the page boundary below the request")
	assert.Equal(t, buf[10:20], snk.Data())

	copy(snk.Data(), []byte("0123456789"))
	require.NoError(t, snk.Sync())
	snk.Unmap()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf[:10], got[:10], "bytes below the requested range stay untouched")
	assert.Equal(t, []byte("0123456789"), got[10:20])
	assert.Equal(t, buf[20:], got[20:])
}

func TestSinkWriteAt(t *testing.T) {
	path, buf := createFile(t, 100)

	snk, err := mapped.MapSink[byte](path, 10, 50)
	require.NoError(t, err)

	n, err := snk.WriteAt([]byte("hello"), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), snk.Data()[5:10])

	// short write at the end of the view
	n, err = snk.WriteAt([]byte("world"), 47)
	assert.Equal(t, io.ErrShortWrite, err)
	assert.Equal(t, 3, n)

	_, err = snk.WriteAt([]byte("x"), 50)
	assert.Equal(t, io.ErrShortWrite, err)

	require.NoError(t, snk.Sync())
	snk.Unmap()

	_, err = snk.WriteAt([]byte("x"), 0)
	require.ErrorIs(t, err, mapped.ErrUnmapped)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got[15:20])
	assert.Equal(t, []byte("wor"), got[57:60])
	assert.Equal(t, buf[:10], got[:10])
}

func TestSinkFromFile(t *testing.T) {
	path, _ := createFile(t, 100)

	fd, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	defer fd.Close()

	snk, err := mapped.MapSinkFile[byte](fd, 0, 100)
	require.NoError(t, err)

	copy(snk.Data(), make([]byte, 100))
	require.NoError(t, snk.Sync())
	snk.Unmap()

	// borrowed handle survives Unmap
	_, err = fd.Stat()
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 100), got)
}

func TestSinkSwap(t *testing.T) {
	path, buf := createFile(t, 100)

	snk, err := mapped.MapSink[byte](path, 0, 100)
	require.NoError(t, err)

	var dst mapped.ByteSink
	dst.Swap(snk)
	defer dst.Unmap()

	assert.False(t, snk.IsOpen())
	assert.True(t, dst.IsOpen())
	assert.Equal(t, buf, dst.Data())

	// sync on the moved-from sink is a no-op, not an error
	require.NoError(t, snk.Sync())
}

func TestRemapReplacesMapping(t *testing.T) {
	path, buf := createFile(t, 3*_page)

	var src mapped.ByteSource
	require.NoError(t, src.Map(path, 0, _page))
	assert.Equal(t, buf[:_page], src.Data())

	// a second successful map supersedes the first
	require.NoError(t, src.Map(path, _page, _page))
	defer src.Unmap()
	assert.EqualValues(t, _page, src.Offset())
	assert.Equal(t, buf[_page:2*_page], src.Data())

	// a failing map leaves the established mapping untouched
	err := src.Map(path, 100*_page, _page)
	require.ErrorIs(t, err, mapped.ErrInvalidOffset)
	assert.True(t, src.IsOpen())
	assert.EqualValues(t, _page, src.Offset())
	assert.Equal(t, buf[_page:2*_page], src.Data())
}
