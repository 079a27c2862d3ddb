// sys_unix.go - mapping primitives for unix like systems
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

//go:build darwin || linux || freebsd || openbsd || solaris || netbsd || dragonfly

package mapped

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmap offsets must be multiples of the page size on unix.
var granularity = int64(os.Getpagesize())

// sysMap maps sz bytes of fd starting at the aligned offset off. The
// returned handle is the file descriptor itself; unix has no separate
// mapping handle.
func sysMap(fd *os.File, off, sz int64, wr bool) (uintptr, []byte, error) {
	prot := unix.PROT_READ
	if wr {
		prot |= unix.PROT_WRITE
	}

	b, err := unix.Mmap(int(fd.Fd()), off, int(sz), prot, unix.MAP_SHARED|unix.MAP_FILE)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: map %d at %d: %w", fd.Name(), sz, off, err)
	}
	return fd.Fd(), b, nil
}

func sysUnmap(b []byte, _ uintptr, _ *os.File, _ bool) error {
	return unix.Munmap(b)
}

func sysFlush(b []byte, _ *os.File, _ bool) error {
	return unix.Msync(b, unix.MS_SYNC)
}

func sysLock(b []byte) error {
	return unix.Mlock(b)
}

func sysUnlock(b []byte) error {
	return unix.Munlock(b)
}
