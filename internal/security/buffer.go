package security

import (
	"log/slog"

	"github.com/awnumar/memguard"

	"securestring.module/internal/constants"
	serrors "securestring.module/internal/errors"
)

// Reserve guarantees room for size bytes without further growth. It never
// shrinks and leaves the buffers untouched when they are already big enough.
func (s *SecureString) Reserve(size int) {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("Reserve")

	s.ensureCapacity(size)
}

// Allocate moves the content into freshly allocated buffers of size bytes
// under a new random mask. Requests below the current length are clamped
// to the length, so content is never truncated. Allocate also serves to
// re-mask a long-lived secret.
func (s *SecureString) Allocate(size int) {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("Allocate")

	s.allocateImpl(size)
}

func (s *SecureString) ensureCapacity(size int) {
	if size+1 <= len(s.mask) {
		return
	}
	s.allocateImpl(size)
}

// allocateImpl swaps in new mask and data buffers of size+1 bytes. The old
// buffers are only touched once both new ones exist, so a failed
// allocation leaves the string as it was.
func (s *SecureString) allocateImpl(size int) {
	length, cursor := 0, 0
	if s.mask != nil {
		length, cursor = s.lengthImpl(), s.cursorImpl()
	}

	if size < constants.MinAllocated {
		size = constants.MinAllocated
	}
	if size < length {
		size = length
	}
	slots := size + 1

	newMask, err := s.alloc.Alloc(slots)
	if err != nil {
		panic(serrors.NewAllocationError(slots, err))
	}
	newData, err := s.alloc.Alloc(slots)
	if err != nil {
		s.release(newMask)
		panic(serrors.NewAllocationError(slots, err))
	}
	if len(newMask) != slots || len(newData) != slots {
		panic(serrors.NewInvariantError("allocator returned a buffer of the wrong size").
			WithContext("requested", slots))
	}

	// Mask and data start out identical: every slot decodes to zero.
	memguard.ScrambleBytes(newMask)
	copy(newData, newMask)

	for i := 0; i < length; i++ {
		newData[i] = newMask[i] ^ (s.mask[i] ^ s.data[i])
		s.mask[i] = 0
		s.data[i] = 0
	}

	oldMask, oldData := s.mask, s.data
	s.mask, s.data = newMask, newData
	if oldMask != nil {
		s.release(oldMask)
		s.release(oldData)
	}

	s.setLength(length)
	s.allocated = uint64(size) ^ s.key()
	s.setCursor(cursor)

	s.logger.Debug("secure string reallocated", slog.Uint64("id", s.id), slog.Int("capacity", size))
	s.checkInvariants()
}

// clearContent re-encodes the current content as zero bytes and sets the
// length to zero. The mask is left as is.
func (s *SecureString) clearContent() {
	copy(s.data[:s.lengthImpl()], s.mask)
	s.setLength(0)
}

// release wipes b and hands it back to the allocator.
func (s *SecureString) release(b []byte) {
	if b == nil {
		return
	}
	wipe(b)
	s.alloc.Free(b)
}

// checkInvariants panics when the buffer engine reaches a state it must
// never be in.
func (s *SecureString) checkInvariants() {
	switch {
	case len(s.mask) != len(s.data):
		panic(serrors.NewInvariantError("mask and data lengths differ").
			WithContext("mask", len(s.mask)).
			WithContext("data", len(s.data)))
	case len(s.mask) != s.capImpl()+1:
		panic(serrors.NewInvariantError("buffer size does not match capacity"))
	case s.lengthImpl() > s.capImpl():
		panic(serrors.NewInvariantError("length exceeds capacity"))
	}
}
