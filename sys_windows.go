// sys_windows.go - mapping primitives for windows
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

//go:build windows

package mapped

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// View offsets passed to MapViewOfFile must be multiples of the system
// allocation granularity: 64KiB on every shipping version of Windows,
// independent of the page size.
const granularity int64 = 64 << 10

// sysMap maps sz bytes of fd starting at the aligned offset off. A
// mapped region gets its own OS handle on Windows; it is returned
// alongside the view and closed again in sysUnmap.
func sysMap(fd *os.File, off, sz int64, wr bool) (uintptr, []byte, error) {
	mflag := uint32(windows.PAGE_READONLY)
	macc := uint32(windows.FILE_MAP_READ)
	if wr {
		mflag = windows.PAGE_READWRITE
		macc |= windows.FILE_MAP_WRITE
	}

	// The mapping object covers [0, off+sz); never more, so a
	// writable mapping cannot grow the file.
	maxSz := uint64(off) + uint64(sz)
	h, err := windows.CreateFileMapping(windows.Handle(fd.Fd()), nil, mflag,
		uint32(maxSz>>32), uint32(maxSz&0xffffffff), nil)
	if h == 0 {
		return 0, nil, fmt.Errorf("%s: map %d at %d: %w",
			fd.Name(), sz, off, os.NewSyscallError("CreateFileMapping", err))
	}

	addr, err := windows.MapViewOfFile(h, macc,
		uint32(uint64(off)>>32), uint32(uint64(off)&0xffffffff), uintptr(sz))
	if addr == 0 {
		windows.CloseHandle(h)
		return 0, nil, fmt.Errorf("%s: map %d at %d: %w",
			fd.Name(), sz, off, os.NewSyscallError("MapViewOfFile", err))
	}

	b := unsafe.Slice((*byte)(unsafe.Pointer(addr)), sz)
	return uintptr(h), b, nil
}

func sysUnmap(b []byte, mh uintptr, fd *os.File, wr bool) error {
	if wr {
		// Writable views are flushed before teardown; munmap on unix
		// queues dirty pages on its own, Windows does not.
		_ = sysFlush(b, fd, wr)
	}

	addr := uintptr(unsafe.Pointer(&b[0]))
	err := windows.UnmapViewOfFile(addr)
	if cerr := windows.CloseHandle(windows.Handle(mh)); err == nil && cerr != nil {
		err = os.NewSyscallError("CloseHandle", cerr)
	}
	return err
}

func sysFlush(b []byte, fd *os.File, wr bool) error {
	addr := uintptr(unsafe.Pointer(&b[0]))
	if err := windows.FlushViewOfFile(addr, uintptr(len(b))); err != nil {
		return fmt.Errorf("flush %x (%d bytes): %w",
			addr, len(b), os.NewSyscallError("FlushViewOfFile", err))
	}

	// FlushViewOfFile only queues the writes; the file buffers have to
	// be flushed as well for durability.
	if wr && fd != nil {
		if err := windows.FlushFileBuffers(windows.Handle(fd.Fd())); err != nil {
			return fmt.Errorf("flush %x (%d bytes): %w",
				addr, len(b), os.NewSyscallError("FlushFileBuffers", err))
		}
	}
	return nil
}

func sysLock(b []byte) error {
	addr := uintptr(unsafe.Pointer(&b[0]))
	if err := windows.VirtualLock(addr, uintptr(len(b))); err != nil {
		return fmt.Errorf("lock %x (%d bytes): %w",
			addr, len(b), os.NewSyscallError("VirtualLock", err))
	}
	return nil
}

func sysUnlock(b []byte) error {
	addr := uintptr(unsafe.Pointer(&b[0]))
	if err := windows.VirtualUnlock(addr, uintptr(len(b))); err != nil {
		return fmt.Errorf("unlock %x (%d bytes): %w",
			addr, len(b), os.NewSyscallError("VirtualUnlock", err))
	}
	return nil
}
