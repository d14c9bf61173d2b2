//go:build linux

package security

import "golang.org/x/sys/unix"

func excludeFromDump(b []byte) {
	_ = unix.Madvise(b, unix.MADV_DONTDUMP)
}
