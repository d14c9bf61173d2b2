package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securestring.module/internal/checksum"
)

func TestAssign_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: []byte{}},
		{name: "ascii", input: []byte("secret")},
		{name: "embedded zero", input: []byte("a\x00b")},
		{name: "binary", input: []byte{0xff, 0x00, 0x7f, 0x80, 0x01}},
		{name: "larger than default capacity", input: make([]byte, 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			defer s.Destroy()

			s.AssignBytes(tt.input, 0, false)

			assert.Equal(t, string(tt.input), checkoutString(t, s))
			assert.Equal(t, len(tt.input), s.Len())
			assert.Equal(t, checksum.Sum(tt.input), s.Checksum())
		})
	}
}

func TestAssign_MaxLenIsClamped(t *testing.T) {
	tests := []struct {
		name   string
		maxLen int
		want   string
	}{
		{name: "auto", maxLen: 0, want: "abcdef"},
		{name: "negative", maxLen: -1, want: "abcdef"},
		{name: "shorter", maxLen: 3, want: "abc"},
		{name: "longer than source", maxLen: 100, want: "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			defer s.Destroy()

			s.AssignBytes([]byte("abcdef"), tt.maxLen, false)
			assert.Equal(t, tt.want, checkoutString(t, s))
		})
	}
}

func TestAssign_ReplacesLongerContent(t *testing.T) {
	s := FromString("a much longer secret")
	defer s.Destroy()

	s.AssignString("short")

	assert.Equal(t, "short", checkoutString(t, s))
	assert.Equal(t, checksum.Sum([]byte("short")), s.Checksum())
}

func TestAssignBytes_WipeSource(t *testing.T) {
	s := New()
	defer s.Destroy()

	source := []byte("one-time-token")
	s.AssignBytes(source, 0, true)

	assert.Equal(t, make([]byte, len(source)), source)
	assert.Equal(t, "one-time-token", checkoutString(t, s))
}

func TestAssignValue(t *testing.T) {
	src := FromString("copied secret")
	defer src.Destroy()
	dst := FromString("previous content that is longer")
	defer dst.Destroy()

	dst.AssignValue(src)

	assert.Equal(t, "copied secret", checkoutString(t, dst))
	assert.Equal(t, src.Checksum(), dst.Checksum())
	assert.True(t, dst.Equals(src))

	dst.AssignValue(dst)
	assert.Equal(t, "copied secret", checkoutString(t, dst))
}

func TestAppend_Concatenates(t *testing.T) {
	tests := []struct {
		name string
		s1   string
		s2   string
	}{
		{name: "both empty", s1: "", s2: ""},
		{name: "into empty", s1: "", s2: "tail"},
		{name: "empty tail", s1: "head", s2: ""},
		{name: "regular", s1: "user:", s2: "password"},
		{name: "forces growth", s1: "hello", s2: string(make([]byte, 1000))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSize(8)
			defer s.Destroy()

			s.AssignString(tt.s1)
			s.AppendBytes([]byte(tt.s2), 0, false)

			assert.Equal(t, tt.s1+tt.s2, checkoutString(t, s))
			assert.Equal(t, checksum.Sum([]byte(tt.s1+tt.s2)), s.Checksum())
		})
	}
}

func TestAppend_IncrementalChecksumMatchesFresh(t *testing.T) {
	s := New()
	defer s.Destroy()

	for _, part := range []string{"a", "bc", "def", "\r\n", "ghij"} {
		s.AppendString(part)
	}

	fresh := FromString("abcdef\r\nghij")
	defer fresh.Destroy()

	assert.Equal(t, fresh.Checksum(), s.Checksum())
	assert.True(t, s.Equals(fresh))
}

func TestAppendBytes_WipeSourceAndMaxLen(t *testing.T) {
	s := FromString("key=")
	defer s.Destroy()

	source := []byte("value-and-junk")
	s.AppendBytes(source, 5, true)

	assert.Equal(t, "key=value", checkoutString(t, s))
	assert.Equal(t, make([]byte, len(source)), source)
}

func TestAppendValue(t *testing.T) {
	head := FromString("head-")
	defer head.Destroy()
	tail := FromString("tail")
	defer tail.Destroy()

	head.AppendValue(tail)

	assert.Equal(t, "head-tail", checkoutString(t, head))
	assert.Equal(t, checksum.Sum([]byte("head-tail")), head.Checksum())
	assert.Equal(t, "tail", checkoutString(t, tail))
}

func TestAppendValue_Self(t *testing.T) {
	s := NewSize(8)
	defer s.Destroy()
	s.AssignString("abcdef")

	s.AppendValue(s)

	assert.Equal(t, "abcdefabcdef", checkoutString(t, s))
	assert.Equal(t, checksum.Sum([]byte("abcdefabcdef")), s.Checksum())
}

func TestEquals(t *testing.T) {
	a := FromString("secret")
	defer a.Destroy()
	b := NewSize(200)
	defer b.Destroy()
	b.AppendString("sec")
	b.AppendString("ret")

	assert.True(t, a.Equals(b))
	assert.True(t, b.Equals(a))
	assert.True(t, a.Equals(a))
	assert.True(t, a.EqualsString("secret"))
	assert.True(t, a.EqualsBytes([]byte("secret")))

	assert.False(t, a.EqualsString("secreT"))
	assert.False(t, a.EqualsString("secret!"))
	assert.False(t, a.Equals(nil))
}

func TestEquals_DifferentLengthNeverEqual(t *testing.T) {
	a := FromString("abc")
	defer a.Destroy()
	b := FromString("abcd")
	defer b.Destroy()

	// Even with a forced checksum match the length check wins.
	b.checksum = a.checksum
	assert.False(t, a.Equals(b))
}

func TestEquals_ChecksumCollisionIsAFalsePositive(t *testing.T) {
	a := FromString("abcd")
	defer a.Destroy()
	b := FromString("wxyz")
	defer b.Destroy()

	// Simulate a CRC-32 collision between two same-length contents.
	b.checksum = a.checksum

	assert.True(t, a.Equals(b))
	assert.False(t, a.ConstantTimeEquals(b))
}

func TestConstantTimeEquals(t *testing.T) {
	a := FromString("secret")
	defer a.Destroy()
	b := FromString("secret")
	defer b.Destroy()
	c := FromString("secreu")
	defer c.Destroy()

	assert.True(t, a.ConstantTimeEquals(b))
	assert.False(t, a.ConstantTimeEquals(c))
	assert.False(t, a.ConstantTimeEquals(FromString("secrets")))
	assert.True(t, a.ConstantTimeEquals(a))
}

func TestOperationsResetLineCursor(t *testing.T) {
	s := FromString("first\nsecond")
	defer s.Destroy()

	line, ok := s.CheckoutNextLine()
	require.True(t, ok)
	assert.Equal(t, "first", string(line))
	s.CheckoutFinished()

	s.AppendString("\nthird")

	line, ok = s.CheckoutNextLine()
	require.True(t, ok)
	assert.Equal(t, "first", string(line))
	s.CheckoutFinished()
}
