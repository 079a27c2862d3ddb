// view.go - element-typed accessors shared by Source and Sink
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
	"fmt"
	"os"
	"unsafe"
)

// view translates between the element counts of the public API and the
// byte counts of the underlying region. T must have a non-zero size;
// conversions multiply and divide by the element size directly.
type view[T any] struct {
	r region
}

func (v *view[T]) esize() int64 {
	return int64(unsafe.Sizeof(*new(T)))
}

func (v *view[T]) mapPath(path string, off, n int64, wr bool) error {
	if v.esize() == 0 {
		return fmt.Errorf("mapped: zero sized element type: %w", ErrInvalidLength)
	}
	v.r.wr = wr
	return v.r.mapPath(path, off*v.esize(), v.byteLen(n))
}

func (v *view[T]) mapFd(fd *os.File, off, n int64, wr bool) error {
	if v.esize() == 0 {
		return fmt.Errorf("mapped: zero sized element type: %w", ErrInvalidLength)
	}
	v.r.wr = wr
	return v.r.mapFd(fd, off*v.esize(), v.byteLen(n), false)
}

func (v *view[T]) byteLen(n int64) int64 {
	if n == WholeFile {
		return WholeFile
	}
	return n * v.esize()
}

// IsOpen reports whether a mapping is currently established.
func (v *view[T]) IsOpen() bool {
	return v.r.isOpen()
}

// Empty is true when the view is unmapped or its conceptual length is
// zero.
func (v *view[T]) Empty() bool {
	return !v.r.isOpen() || v.r.length == 0
}

// Len returns the conceptual length of the view in elements. 0 when
// unmapped.
func (v *view[T]) Len() int64 {
	if !v.r.isOpen() {
		return 0
	}
	return v.r.length / v.esize()
}

// MappedLen returns the number of elements the OS actually mapped; a
// multiple of the allocation granularity, divided by the element size.
func (v *view[T]) MappedLen() int64 {
	if !v.r.isOpen() {
		return 0
	}
	return v.r.mappedLen() / v.esize()
}

// Offset returns the requested offset from the start of the file, in
// elements.
func (v *view[T]) Offset() int64 {
	if !v.r.isOpen() {
		return 0
	}
	return v.r.off / v.esize()
}

// Data returns the mapped elements starting at the first requested
// one. Nil when unmapped or empty. The slice aliases the mapping and
// is invalidated by Unmap.
func (v *view[T]) Data() []T {
	b := v.r.bytes()
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), int64(len(b))/v.esize())
}

// At returns the i'th element of the view. No bounds are checked
// beyond those of the underlying slice; calling At on an unmapped view
// panics.
func (v *view[T]) At(i int64) T {
	return v.Data()[i]
}

// SetLen overrides the conceptual length used by Len, Data and At.
// The OS mapping is untouched. Fails with ErrInvalidLength when the
// new view would run past the mapped region; the prior state is kept.
func (v *view[T]) SetLen(n int64) error {
	if n < 0 {
		return fmt.Errorf("mapped: set length %d: %w", n, ErrInvalidLength)
	}
	return v.r.setLen(n * v.esize())
}

// SetOffset overrides the conceptual offset analogously to SetLen.
// The new offset is bounded by the mapped region; the conceptual
// length shrinks if the view would otherwise run past the mapping.
func (v *view[T]) SetOffset(off int64) error {
	if off < 0 {
		return fmt.Errorf("mapped: set offset %d: %w", off, ErrInvalidOffset)
	}
	return v.r.setOffset(off * v.esize())
}

// Unmap releases the mapping and, if the view was constructed from a
// path, closes the file. Idempotent; never fails observably. All
// slices previously returned by Data are invalid afterwards.
func (v *view[T]) Unmap() {
	v.r.unmap()
}

// File returns the backing file, or nil when unmapped. The file is
// owned by the view only if the mapping was created from a path.
func (v *view[T]) File() *os.File {
	return v.r.fd
}

// FileHandle returns the OS handle of the backing file, or
// ^uintptr(0) when unmapped.
func (v *view[T]) FileHandle() uintptr {
	if v.r.fd == nil {
		return ^uintptr(0)
	}
	return v.r.fd.Fd()
}

// MappingHandle returns the OS handle of the mapping itself. Windows
// keeps a handle per mapped region; everywhere else this is the file
// handle.
func (v *view[T]) MappingHandle() uintptr {
	if !v.r.isOpen() {
		return ^uintptr(0)
	}
	return v.r.mh
}

// ReadAt reads from the view at the given byte offset, implementing
// io.ReaderAt over the requested range.
func (v *view[T]) ReadAt(p []byte, off int64) (int, error) {
	return v.r.readAt(p, off)
}

// Advise hints the kernel about the expected access pattern for the
// mapped pages. Advisory only; a no-op where unsupported.
func (v *view[T]) Advise(a Advice) error {
	if !v.r.isOpen() {
		return ErrUnmapped
	}
	return sysAdvise(v.r.full, a)
}

// Lock pins the mapped pages in memory.
func (v *view[T]) Lock() error {
	if !v.r.isOpen() {
		return ErrUnmapped
	}
	return sysLock(v.r.full)
}

// Unlock releases pages pinned by Lock.
func (v *view[T]) Unlock() error {
	if !v.r.isOpen() {
		return ErrUnmapped
	}
	return sysUnlock(v.r.full)
}
