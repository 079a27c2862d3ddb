// sink.go - read-write mapped views
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

package mapped

import (
	"os"
)

// Sink is a read-write mapped view over elements of type T. On top of
// everything a Source can do, it flushes dirty pages with Sync and
// accepts writes through Data, At indexing of the writable slice, and
// WriteAt.
//
// The zero value is a valid, unmapped Sink.
type Sink[T any] struct {
	view[T]
}

// Map opens the file at path read-write and maps n elements starting
// at element offset off. The file handle is owned by the Sink and
// closed on Unmap. Pass WholeFile as n to map to the end of the file.
func (s *Sink[T]) Map(path string, off, n int64) error {
	return s.mapPath(path, off, n, true)
}

// MapFile maps from an already open file; it must have been opened
// with write access. The handle is borrowed and never closed by the
// Sink.
func (s *Sink[T]) MapFile(fd *os.File, off, n int64) error {
	return s.mapFd(fd, off, n, true)
}

// Sync flushes dirty mapped pages to the backing file. Failures are
// reported rather than raised; the mapping stays intact and the caller
// may retry. A no-op on an unmapped Sink.
func (s *Sink[T]) Sync() error {
	return s.r.sync()
}

// WriteAt writes into the view at the given byte offset, implementing
// io.WriterAt over the requested range.
func (s *Sink[T]) WriteAt(p []byte, off int64) (int, error) {
	return s.r.writeAt(p, off)
}

// Swap exchanges the mappings of s and o. Swapping with a zero value
// transfers ownership, leaving the donor unmapped.
func (s *Sink[T]) Swap(o *Sink[T]) {
	s.r, o.r = o.r, s.r
}

// Equal reports whether the two views denote the same mapping; see
// Source.Equal.
func (s *Sink[T]) Equal(o *Sink[T]) bool {
	return s.r.compare(&o.r) == 0
}

// Compare orders two views by (data address, mapped length).
func (s *Sink[T]) Compare(o *Sink[T]) int {
	return s.r.compare(&o.r)
}
