package security

// Allocator owns the memory behind a SecureString. Buffers are wiped
// before they are passed to Free.
type Allocator interface {
	// Alloc returns a zeroed buffer of exactly size bytes.
	Alloc(size int) ([]byte, error)
	// Free releases a buffer obtained from Alloc.
	Free(b []byte)
}

// HeapAllocator allocates on the Go heap.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (HeapAllocator) Free(b []byte) {
	wipe(b)
}
