// advise_stub.go - platforms without a usable madvise

//go:build windows || solaris

package mapped

func sysAdvise(_ []byte, _ Advice) error {
	return nil
}
