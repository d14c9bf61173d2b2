//go:build !unix && !windows

package security

// NewMappedAllocator falls back to the heap where no mapping API is available.
func NewMappedAllocator() Allocator {
	return HeapAllocator{}
}
