// mapped.go - package surface: sentinels, errors, advice hints
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

// Package mapped provides OS independent, page-granularity aware views
// over memory mapped files.
//
// A view maps an arbitrary (offset, length) region of a file; the
// offset need not be aligned to the allocation granularity of the OS.
// The implementation rounds the OS mapping down to the nearest
// granularity boundary and hides the slack, so Data() always starts at
// the first requested element.
//
// Read and write capabilities are split at the type level: Source[T]
// only exposes read accessors while Sink[T] additionally carries Sync
// and WriteAt. A zero value of either type is a valid, unmapped view.
//
// Views have single-ownership semantics: they are operated on through
// pointers, ownership moves via Swap, and Unmap is the sole teardown
// path. Unmap is idempotent and safe to defer.
package mapped

import (
	"errors"
)

// WholeFile may be passed as the length to Map, MapFile or any of the
// factory functions to map everything from the requested offset to the
// end of the file.
const WholeFile int64 = -1

var (
	// ErrInvalidOffset is returned when a requested offset lies outside
	// the file or, for SetOffset, outside the mapped region.
	ErrInvalidOffset = errors.New("mapped: offset out of range")

	// ErrInvalidLength is returned when a requested length does not fit
	// in the file or, for SetLen, in the mapped region.
	ErrInvalidLength = errors.New("mapped: length out of range")

	// ErrUnmapped is returned by I/O accessors on an unmapped view.
	ErrUnmapped = errors.New("mapped: region is not mapped")
)

// Advice hints to the kernel how a mapped region will be accessed.
// The hints are advisory; platforms without an madvise equivalent
// ignore them.
type Advice int

const (
	AdviceNormal Advice = iota
	AdviceRandom
	AdviceSequential
	AdviceWillNeed
	AdviceDontNeed
)

// Granularity returns the page allocation granularity of the host OS.
// Mapping offsets handed to the kernel are multiples of this value.
func Granularity() int64 {
	return granularity
}

// Must turns the out-of-band error of a factory function into a panic:
//
//	src := mapped.Must(mapped.MapSource[byte](path, 0, mapped.WholeFile))
func Must[M any](m M, err error) M {
	if err != nil {
		panic(err)
	}
	return m
}
