package security

import (
	"crypto/subtle"

	"github.com/awnumar/memguard"

	"securestring.module/internal/checksum"
)

type byteSource interface {
	~[]byte | ~string
}

// AssignBytes replaces the content with src. A maxLen of zero or less
// takes all of src, a larger maxLen is clamped to len(src). When
// wipeSource is set, src is zeroed once it has been absorbed, on every
// exit path.
func (s *SecureString) AssignBytes(src []byte, maxLen int, wipeSource bool) {
	if wipeSource {
		defer memguard.WipeBytes(src)
	}

	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("AssignBytes")

	assignFrom(s, src[:clampLen(len(src), maxLen)])
}

// AssignString replaces the content with str.
func (s *SecureString) AssignString(str string) {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("AssignString")

	assignFrom(s, str)
}

// AssignValue replaces the content with the content of other, decoding it
// one byte at a time. The checksum is taken over from other.
func (s *SecureString) AssignValue(other *SecureString) {
	if other == nil || other == s {
		return
	}

	unlock := lockPair(s, other)
	defer unlock()
	s.mustBeAlive("AssignValue")
	other.mustBeAlive("AssignValue")

	s.clearContent()
	n := other.lengthImpl()
	if n > s.capImpl() {
		s.ensureCapacity(2 * n)
	}
	for i := 0; i < n; i++ {
		s.encode(i, other.decode(i))
	}
	s.setLength(n)
	s.checksum = other.checksum
	s.setCursor(0)
}

// AppendBytes appends src, with maxLen and wipeSource as in AssignBytes.
func (s *SecureString) AppendBytes(src []byte, maxLen int, wipeSource bool) {
	if wipeSource {
		defer memguard.WipeBytes(src)
	}

	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("AppendBytes")

	appendFrom(s, src[:clampLen(len(src), maxLen)])
}

// AppendString appends str.
func (s *SecureString) AppendString(str string) {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("AppendString")

	appendFrom(s, str)
}

// AppendValue appends the content of other without ever holding it as a
// whole in plaintext. Appending a string to itself doubles it.
func (s *SecureString) AppendValue(other *SecureString) {
	if other == nil {
		return
	}

	unlock := lockPair(s, other)
	defer unlock()
	s.mustBeAlive("AppendValue")
	other.mustBeAlive("AppendValue")

	oldLen := s.lengthImpl()
	n := other.lengthImpl()
	total := oldLen + n
	if total > s.capImpl() {
		s.ensureCapacity(2 * total)
	}
	// Reads stay below oldLen when other == s, so they never see the
	// bytes being written.
	for i := 0; i < n; i++ {
		s.appendByte(oldLen, i, other.decode(i))
	}
	s.setLength(total)
	s.setCursor(0)
}

// Equals reports whether other has the same length and checksum.
//
// The comparison never decodes either side and runs in constant time, but
// two different contents with colliding CRC-32 checksums compare equal. Use
// ConstantTimeEquals when that is not acceptable.
func (s *SecureString) Equals(other *SecureString) bool {
	if other == nil {
		return false
	}
	if other == s {
		return !s.IsDestroyed()
	}

	unlock := lockPair(s, other)
	defer unlock()
	if s.destroyed || other.destroyed {
		return false
	}

	return s.lengthImpl() == other.lengthImpl() && s.checksum == other.checksum
}

// EqualsBytes reports whether b has the same length and checksum as the
// content. b is checksummed, the content is not decoded.
func (s *SecureString) EqualsBytes(b []byte) bool {
	s.guard.Lock()
	defer s.guard.Unlock()
	if s.destroyed {
		return false
	}

	return len(b) == s.lengthImpl() && checksum.Sum(b) == s.checksum
}

// EqualsString is EqualsBytes for a string.
func (s *SecureString) EqualsString(str string) bool {
	s.guard.Lock()
	defer s.guard.Unlock()
	if s.destroyed {
		return false
	}

	if len(str) != s.lengthImpl() {
		return false
	}
	var crc uint32
	for i := 0; i < len(str); i++ {
		crc = checksum.Fold(str[i], crc)
	}
	return crc == s.checksum
}

// ConstantTimeEquals compares the actual content of both strings. Both
// sides are decoded one byte at a time and the differences accumulated, so
// neither plaintext is materialized and timing depends only on the length.
func (s *SecureString) ConstantTimeEquals(other *SecureString) bool {
	if other == nil {
		return false
	}
	if other == s {
		return !s.IsDestroyed()
	}

	unlock := lockPair(s, other)
	defer unlock()
	if s.destroyed || other.destroyed {
		return false
	}

	n := s.lengthImpl()
	if n != other.lengthImpl() {
		return false
	}
	var diff byte
	for i := 0; i < n; i++ {
		diff |= s.decode(i) ^ other.decode(i)
	}
	return subtle.ConstantTimeByteEq(diff, 0) == 1
}

func assignFrom[T byteSource](s *SecureString, src T) {
	s.clearContent()
	n := len(src)
	if n > s.capImpl() {
		s.ensureCapacity(2 * n)
	}

	var crc uint32
	for i := 0; i < n; i++ {
		s.encode(i, src[i])
		crc = checksum.Fold(src[i], crc)
	}
	s.setLength(n)
	s.checksum = crc
	s.setCursor(0)
}

func appendFrom[T byteSource](s *SecureString, src T) {
	oldLen := s.lengthImpl()
	total := oldLen + len(src)
	if total > s.capImpl() {
		s.ensureCapacity(2 * total)
	}
	for i := 0; i < len(src); i++ {
		s.appendByte(oldLen, i, src[i])
	}
	s.setLength(total)
	s.setCursor(0)
}

// appendByte encodes c at oldLen+i and folds it into the checksum. The
// first byte written into an empty string seeds a fresh checksum.
func (s *SecureString) appendByte(oldLen, i int, c byte) {
	s.encode(oldLen+i, c)
	if oldLen == 0 && i == 0 {
		s.checksum = checksum.Fold(c, 0)
	} else {
		s.checksum = checksum.Fold(c, s.checksum)
	}
}
