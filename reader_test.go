// reader_test.go - chunked reader tests
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
	"crypto/sha256"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mapped "github.com/opencoff/go-mapped"
)

func TestReader(t *testing.T) {
	sz := 3*_page + _page/3
	path, buf := createFile(t, sz)

	fd, err := os.Open(path)
	require.NoError(t, err)
	defer fd.Close()

	h := sha256.New()
	n, err := mapped.Reader(fd, func(b []byte) error {
		h.Write(b)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, sz, n)
	assert.Equal(t, sha256.Sum256(buf), [32]byte(h.Sum(nil)))
}

func TestReaderPropagatesError(t *testing.T) {
	path, _ := createFile(t, _page)

	fd, err := os.Open(path)
	require.NoError(t, err)
	defer fd.Close()

	boom := errors.New("boom")
	n, err := mapped.Reader(fd, func(b []byte) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, n)
}

func TestReaderEmptyFile(t *testing.T) {
	path := t.TempDir() + "/empty"
	require.NoError(t, os.WriteFile(path, nil, 0600))

	fd, err := os.Open(path)
	require.NoError(t, err)
	defer fd.Close()

	n, err := mapped.Reader(fd, func(b []byte) error {
		t.Fatal("callback must not run for an empty file")
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, n)
}
