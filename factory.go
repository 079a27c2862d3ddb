// factory.go - convenience constructors
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

// ByteSource and ByteSink are the common case: raw byte views.
type (
	ByteSource = Source[byte]
	ByteSink   = Sink[byte]
)

// MapSource maps n elements of the file at path, starting at element
// offset off, for reading.
func MapSource[T any](path string, off, n int64) (*Source[T], error) {
	var s Source[T]
	if err := s.Map(path, off, n); err != nil {
		return nil, err
	}
	return &s, nil
}

// MapSourceFile is MapSource over an already open file; the handle is
// borrowed, not closed on Unmap.
func MapSourceFile[T any](fd *os.File, off, n int64) (*Source[T], error) {
	var s Source[T]
	if err := s.MapFile(fd, off, n); err != nil {
		return nil, err
	}
	return &s, nil
}

// MapSink maps n elements of the file at path, starting at element
// offset off, for reading and writing.
func MapSink[T any](path string, off, n int64) (*Sink[T], error) {
	var s Sink[T]
	if err := s.Map(path, off, n); err != nil {
		return nil, err
	}
	return &s, nil
}

// MapSinkFile is MapSink over an already open file; the handle is
// borrowed, not closed on Unmap.
func MapSinkFile[T any](fd *os.File, off, n int64) (*Sink[T], error) {
	var s Sink[T]
	if err := s.MapFile(fd, off, n); err != nil {
		return nil, err
	}
	return &s, nil
}
