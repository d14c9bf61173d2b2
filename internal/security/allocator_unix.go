//go:build unix

package security

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MappedAllocator places buffers in anonymous mappings outside the Go
// heap, so the garbage collector never copies them. Pages are locked into
// RAM when the memlock limit allows it and, where supported, excluded from
// core dumps.
type MappedAllocator struct{}

// NewMappedAllocator returns the allocator for this platform.
func NewMappedAllocator() Allocator {
	return MappedAllocator{}
}

func (MappedAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("security: mapped buffer size must be positive, got %d", size)
	}

	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("security: mmap failed: %w", err)
	}

	// Best effort: RLIMIT_MEMLOCK is often small and a lock failure still
	// leaves a usable buffer.
	_ = unix.Mlock(b)
	excludeFromDump(b)

	return b, nil
}

func (MappedAllocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	wipe(b)
	_ = unix.Munlock(b)
	_ = unix.Munmap(b)
}
