// advise_unix.go - madvise on platforms that have it

//go:build darwin || linux || freebsd || openbsd || netbsd || dragonfly

package mapped

import (
	"golang.org/x/sys/unix"
)

func sysAdvise(b []byte, a Advice) error {
	var adv int

	switch a {
	case AdviceRandom:
		adv = unix.MADV_RANDOM
	case AdviceSequential:
		adv = unix.MADV_SEQUENTIAL
	case AdviceWillNeed:
		adv = unix.MADV_WILLNEED
	case AdviceDontNeed:
		adv = unix.MADV_DONTNEED
	default:
		adv = unix.MADV_NORMAL
	}

	err := unix.Madvise(b, adv)
	if err == unix.EINVAL {
		// alignment gripe from the kernel; the hint is advisory
		return nil
	}
	return err
}
