// reader.go - chunked whole-file access via successive views
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
)

// Reader maps successive read-only chunks of the file and calls fp
// with each chunk until EOF. If fp returns a non-nil error the
// iteration stops and the error is propagated to the caller. Files
// larger than the per-arch mapping cap are walked in multiple
// mappings. Reader returns the number of bytes visited.
func Reader(fd *os.File, fp func(b []byte) error) (int64, error) {
	st, err := fd.Stat()
	if err != nil {
		return 0, fmt.Errorf("mapped: %w", err)
	}

	var src ByteSource
	var off, z int64

	fsz := st.Size()
	for fsz > 0 {
		sz := fsz
		if sz > maxMapLen {
			sz = maxMapLen
		}

		if err := src.MapFile(fd, off, sz); err != nil {
			return z, err
		}

		err := fp(src.Data())
		src.Unmap()
		if err != nil {
			return z, err
		}

		off += sz
		z += sz
		fsz -= sz
	}
	return z, nil
}
