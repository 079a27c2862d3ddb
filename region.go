// region.go - requested vs mapped range bookkeeping
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
	"io"
	"os"
	"unsafe"
)

// region holds the state shared by Source and Sink: the full OS
// mapping, the divergence between the range the caller asked for and
// the range the kernel gave us, and the ownership of the backing file.
//
// All quantities are in bytes; element translation happens in the
// generic view layer.
type region struct {
	full    []byte   // entire OS mapping; nil when unmapped
	fd      *os.File // backing file
	mh      uintptr  // mapping handle; equal to the file handle except on Windows
	off     int64    // requested offset from the start of the file
	aligned int64    // granularity aligned offset the OS mapping starts at
	length  int64    // conceptual view length
	ownFd   bool     // close fd on unmap iff we opened it from a path
	wr      bool     // mapped with write access
}

func (r *region) isOpen() bool {
	return r.full != nil
}

// delta is the distance from the start of the OS mapping to the first
// requested byte.
func (r *region) delta() int64 {
	return r.off - r.aligned
}

func (r *region) mappedLen() int64 {
	return int64(len(r.full))
}

// bytes returns the requested view: delta bytes past the mapping
// start, length bytes long. Nil when unmapped or zero-length.
func (r *region) bytes() []byte {
	if r.full == nil || r.length == 0 {
		return nil
	}
	d := r.delta()
	return r.full[d : d+r.length]
}

// dataPtr is the address of the first requested byte; the comparison
// key together with mappedLen.
func (r *region) dataPtr() uintptr {
	if r.full == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(&r.full[0])) + uintptr(r.delta())
}

func (r *region) compare(o *region) int {
	p, q := r.dataPtr(), o.dataPtr()
	switch {
	case p < q:
		return -1
	case p > q:
		return 1
	}
	switch m, n := r.mappedLen(), o.mappedLen(); {
	case m < n:
		return -1
	case m > n:
		return 1
	}
	return 0
}

// mapPath opens the file and maps it; the handle is owned by the
// region and closed on unmap.
func (r *region) mapPath(path string, off, n int64) error {
	flag := os.O_RDONLY
	if r.wr {
		flag = os.O_RDWR
	}

	fd, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return fmt.Errorf("mapped: %w", err)
	}

	if err := r.mapFd(fd, off, n, true); err != nil {
		fd.Close()
		return err
	}
	return nil
}

// mapFd validates the request against the file, computes the aligned
// OS range and establishes the mapping. A previously mapped region is
// released only after the new mapping succeeds; on error the region is
// left exactly as it was. A zero byte request never creates an OS
// mapping - the region ends up unmapped with a nil error.
func (r *region) mapFd(fd *os.File, off, n int64, own bool) error {
	if off < 0 {
		return fmt.Errorf("%s: map %d at %d: %w", fd.Name(), n, off, ErrInvalidOffset)
	}
	if n < 0 && n != WholeFile {
		return fmt.Errorf("%s: map %d at %d: %w", fd.Name(), n, off, ErrInvalidLength)
	}

	st, err := fd.Stat()
	if err != nil {
		return fmt.Errorf("%s: map %d at %d: %w", fd.Name(), n, off, err)
	}
	if !st.Mode().IsRegular() {
		return fmt.Errorf("%s: map %d at %d: not a regular file", fd.Name(), n, off)
	}

	fsz := st.Size()
	if off > fsz {
		return fmt.Errorf("%s: map %d at %d: %w", fd.Name(), n, off, ErrInvalidOffset)
	}

	if n == WholeFile {
		n = fsz - off
	} else if off+n > fsz {
		return fmt.Errorf("%s: map %d at %d: %w", fd.Name(), n, off, ErrInvalidLength)
	}

	if n == 0 {
		r.unmap()
		if own {
			fd.Close()
		}
		return nil
	}

	aligned, delta := alignDown(off, granularity)
	if n+delta > maxMapLen {
		return fmt.Errorf("%s: map %d at %d: too large", fd.Name(), n, off)
	}

	mh, full, err := sysMap(fd, aligned, n+delta, r.wr)
	if err != nil {
		return err
	}

	r.unmap()
	r.full = full
	r.fd = fd
	r.mh = mh
	r.off = off
	r.aligned = aligned
	r.length = n
	r.ownFd = own
	return nil
}

// unmap releases the OS mapping and closes the file handle if it was
// opened internally. It is idempotent and never reports a failure;
// cleanup is best effort by contract.
func (r *region) unmap() {
	if r.full != nil {
		_ = sysUnmap(r.full, r.mh, r.fd, r.wr)
	}
	if r.ownFd && r.fd != nil {
		_ = r.fd.Close()
	}
	r.full = nil
	r.fd = nil
	r.mh = 0
	r.off = 0
	r.aligned = 0
	r.length = 0
	r.ownFd = false
}

// sync flushes dirty pages to the backing file. A no-op when nothing
// is mapped.
func (r *region) sync() error {
	if r.full == nil {
		return nil
	}
	return sysFlush(r.full, r.fd, r.wr)
}

// setLen overrides the conceptual length. The OS mapping is untouched;
// the new view must still fit inside it.
func (r *region) setLen(n int64) error {
	if n < 0 || n+r.delta() > r.mappedLen() {
		return fmt.Errorf("mapped: set length %d: %w", n, ErrInvalidLength)
	}
	r.length = n
	return nil
}

// setOffset overrides the conceptual offset. The new first byte must
// lie inside the OS mapping; the conceptual length is clamped so the
// view never runs past the end of the mapping.
func (r *region) setOffset(off int64) error {
	if off < r.aligned || off-r.aligned > r.mappedLen() {
		return fmt.Errorf("mapped: set offset %d: %w", off, ErrInvalidOffset)
	}
	r.off = off
	if rest := r.mappedLen() - r.delta(); r.length > rest {
		r.length = rest
	}
	return nil
}

func (r *region) readAt(p []byte, off int64) (int, error) {
	if !r.isOpen() {
		return 0, ErrUnmapped
	}
	b := r.bytes()
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (r *region) writeAt(p []byte, off int64) (int, error) {
	if !r.isOpen() {
		return 0, ErrUnmapped
	}
	b := r.bytes()
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(b)) {
		return 0, io.ErrShortWrite
	}
	n := copy(b[off:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}
