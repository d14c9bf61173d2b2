//go:build windows

package security

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// MappedAllocator places buffers in VirtualAlloc'd pages outside the Go
// heap and locks them into the working set when possible.
type MappedAllocator struct{}

// NewMappedAllocator returns the allocator for this platform.
func NewMappedAllocator() Allocator {
	return MappedAllocator{}
}

func (MappedAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("security: mapped buffer size must be positive, got %d", size)
	}

	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("security: VirtualAlloc failed: %w", err)
	}
	_ = windows.VirtualLock(addr, uintptr(size))

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func (MappedAllocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	wipe(b)
	addr := uintptr(unsafe.Pointer(&b[0]))
	_ = windows.VirtualUnlock(addr, uintptr(len(b)))
	_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
