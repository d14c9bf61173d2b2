package security

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	serrors "securestring.module/internal/errors"
)

// recordingAllocator keeps a copy of every buffer as it was handed back,
// so tests can check that nothing is released unwiped.
type recordingAllocator struct {
	mu        sync.Mutex
	live      map[*byte]int
	freed     [][]byte
	allocs    int
	failAfter int
}

func newRecordingAllocator() *recordingAllocator {
	return &recordingAllocator{live: make(map[*byte]int), failAfter: -1}
}

func (r *recordingAllocator) Alloc(size int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failAfter >= 0 && r.allocs >= r.failAfter {
		return nil, errors.New("out of memory")
	}
	r.allocs++
	b := make([]byte, size)
	r.live[&b[0]] = size
	return b, nil
}

func (r *recordingAllocator) Free(b []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.freed = append(r.freed, append([]byte(nil), b...))
	delete(r.live, &b[0])
}

func (r *recordingAllocator) liveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

func (r *recordingAllocator) requireFreedZeroed(t *testing.T) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	for index, b := range r.freed {
		require.Equal(t, make([]byte, len(b)), b, "freed buffer %d was not wiped", index)
	}
}

func (r *recordingAllocator) freedContains(needle []byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.freed {
		if bytes.Contains(b, needle) {
			return true
		}
	}
	return false
}

// checkoutString returns the content through an immutable checkout.
func checkoutString(t *testing.T, s *SecureString) string {
	t.Helper()
	view, ok := s.Checkout()
	require.True(t, ok, "checkout refused")
	content := string(view)
	s.CheckoutFinished()
	return content
}

func requirePanicCode(t *testing.T, code serrors.ErrorCode, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a panic with code %s", code)
		err, ok := r.(error)
		require.True(t, ok, "panic value is not an error: %v", r)
		require.True(t, serrors.IsCode(err, code), "unexpected panic: %v", err)
	}()
	fn()
}
