// source.go - read-only mapped views
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

// Source is a read-only mapped view over elements of type T. It
// carries no Sync or WriteAt: the write capability is absent at the
// type level, and the pages are mapped without write access, so stray
// writes through Data fault.
//
// The zero value is a valid, unmapped Source.
type Source[T any] struct {
	view[T]
}

// Map opens the file at path read-only and maps n elements starting at
// element offset off. The file handle is owned by the Source and
// closed on Unmap. Pass WholeFile as n to map to the end of the file.
func (s *Source[T]) Map(path string, off, n int64) error {
	return s.mapPath(path, off, n, false)
}

// MapFile maps from an already open file. The handle is borrowed: it
// is never closed by the Source and must stay open for the lifetime of
// the mapping.
func (s *Source[T]) MapFile(fd *os.File, off, n int64) error {
	return s.mapFd(fd, off, n, false)
}

// Swap exchanges the mappings of s and o. Swapping with a zero value
// transfers ownership, leaving the donor unmapped.
func (s *Source[T]) Swap(o *Source[T]) {
	s.r, o.r = o.r, s.r
}

// Equal reports whether the two views denote the same mapping: the
// address of the first requested byte and the mapped length match.
// File identity and content play no part.
func (s *Source[T]) Equal(o *Source[T]) bool {
	return s.r.compare(&o.r) == 0
}

// Compare orders two views by (data address, mapped length).
func (s *Source[T]) Compare(o *Source[T]) int {
	return s.r.compare(&o.r)
}
