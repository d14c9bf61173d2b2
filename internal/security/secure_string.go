// Package security holds secrets in process memory without ever storing
// them as contiguous plaintext.
//
// A SecureString keeps two equal-length buffers, a random mask and the
// masked data; the logical byte at index i is mask[i] ^ data[i]. The
// content only exists in the clear inside a view handed out by one of the
// Checkout methods, and only until CheckoutFinished is called.
//
// This is obfuscation, not encryption. It keeps secrets out of naive
// memory scrapes, core dumps and swap, nothing more.
package security

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"sync/atomic"

	"securestring.module/internal/constants"
	serrors "securestring.module/internal/errors"
)

// defaultAllocatedOverride replaces constants.DefaultAllocated when set at
// link time:
//
//	go build -ldflags "-X securestring.module/internal/security.defaultAllocatedOverride=128"
var defaultAllocatedOverride string

// DefaultAllocated returns the capacity used by New.
func DefaultAllocated() int {
	if defaultAllocatedOverride != "" {
		if n, err := strconv.Atoi(defaultAllocatedOverride); err == nil && n >= 0 {
			return n
		}
	}
	return constants.DefaultAllocated
}

type checkoutState uint8

const (
	stateSecured checkoutState = iota
	stateCheckedOut
	stateCheckedOutMutable
)

var nextID atomic.Uint64

// SecureString is an obfuscated, growable byte string.
//
// The zero value is not usable; create instances with New, NewSize,
// FromBytes or FromString and release them with Destroy.
type SecureString struct {
	id     uint64
	guard  Guard
	alloc  Allocator
	logger *slog.Logger
	opts   options

	mask []byte
	data []byte

	// length, allocated and cursor are stored XOR the mask key.
	length    uint64
	allocated uint64
	cursor    uint64
	checksum  uint32

	state checkoutState
	view  []byte

	destroyed bool
}

// Option configures a SecureString at construction.
type Option func(*options)

type options struct {
	threadSafe bool
	guard      Guard
	alloc      Allocator
	logger     *slog.Logger
}

// WithThreadSafety selects the mutex guard (true) or the no-op guard
// (false), overriding the build-time default.
func WithThreadSafety(enabled bool) Option {
	return func(o *options) {
		o.threadSafe = enabled
	}
}

// WithGuard supplies the guard itself, taking precedence over
// WithThreadSafety. Strings sharing one guard are serialized together;
// Clone hands the same guard to the copy.
func WithGuard(g Guard) Option {
	return func(o *options) {
		if g != nil {
			o.guard = g
		}
	}
}

// WithAllocator sets the allocator that owns mask, data and view buffers.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithLogger sets a logger for lifecycle events. Content is never logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an empty secure string with DefaultAllocated bytes of capacity.
func New(opts ...Option) *SecureString {
	return NewSize(DefaultAllocated(), opts...)
}

// NewSize creates an empty secure string able to hold size bytes.
func NewSize(size int, opts ...Option) *SecureString {
	o := options{
		threadSafe: defaultThreadSafe,
		alloc:      HeapAllocator{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	guard := o.guard
	if guard == nil {
		guard = newGuard(o.threadSafe)
	}

	s := &SecureString{
		id:     nextID.Add(1),
		guard:  guard,
		alloc:  o.alloc,
		logger: o.logger,
		opts:   o,
	}
	s.allocateImpl(size)

	runtime.SetFinalizer(s, (*SecureString).Destroy)
	return s
}

// FromBytes creates a secure string holding src. A maxLen of zero or less
// takes all of src, otherwise at most maxLen bytes are taken. When
// wipeSource is set the container takes ownership of src and zeroes it.
func FromBytes(src []byte, maxLen int, wipeSource bool, opts ...Option) *SecureString {
	s := NewSize(clampLen(len(src), maxLen), opts...)
	s.AssignBytes(src, maxLen, wipeSource)
	return s
}

// FromString creates a secure string holding a copy of str.
func FromString(str string, opts ...Option) *SecureString {
	s := NewSize(len(str), opts...)
	s.AssignString(str)
	return s
}

// Clone returns an independent copy configured like s.
func (s *SecureString) Clone() *SecureString {
	s.guard.Lock()
	o := s.opts
	size := 0
	if !s.destroyed {
		size = s.lengthImpl()
	}
	s.guard.Unlock()

	copyOpts := []Option{WithThreadSafety(o.threadSafe), WithGuard(o.guard), WithAllocator(o.alloc), WithLogger(o.logger)}
	c := NewSize(size, copyOpts...)
	c.AssignValue(s)
	return c
}

// Len returns the length of the content in bytes.
func (s *SecureString) Len() int {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("Len")

	return s.lengthImpl()
}

// Cap returns the number of bytes the string can hold without reallocating.
func (s *SecureString) Cap() int {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("Cap")

	return s.capImpl()
}

// IsEmpty reports whether the content has zero length.
func (s *SecureString) IsEmpty() bool {
	return s.Len() == 0
}

// At returns the byte at pos, or 0 when pos is out of range.
func (s *SecureString) At(pos int) byte {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("At")

	if pos < 0 || pos >= s.lengthImpl() {
		return 0
	}
	return s.decode(pos)
}

// Checksum returns the CRC-32 of the content.
func (s *SecureString) Checksum() uint32 {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("Checksum")

	return s.checksum
}

// IsDestroyed reports whether Destroy has been called.
func (s *SecureString) IsDestroyed() bool {
	s.guard.Lock()
	defer s.guard.Unlock()

	return s.destroyed
}

// Destroy wipes the mask, the masked data and any outstanding view, and
// releases them. Any later use other than Destroy, IsDestroyed or Equals
// panics. Destroy is idempotent.
func (s *SecureString) Destroy() {
	s.guard.Lock()
	defer s.guard.Unlock()

	if s.destroyed {
		return
	}

	s.releaseView()
	s.release(s.mask)
	s.release(s.data)
	s.mask, s.data = nil, nil
	s.length, s.allocated, s.cursor, s.checksum = 0, 0, 0, 0
	s.destroyed = true

	s.logger.Debug("secure string destroyed", slog.Uint64("id", s.id))
	runtime.SetFinalizer(s, nil)
}

// String never reveals the content.
func (s *SecureString) String() string {
	s.guard.Lock()
	defer s.guard.Unlock()

	if s.destroyed {
		return "SecureString(destroyed)"
	}
	return fmt.Sprintf("SecureString(len=%d)", s.lengthImpl())
}

// LogValue implements slog.LogValuer without revealing the content.
func (s *SecureString) LogValue() slog.Value {
	s.guard.Lock()
	defer s.guard.Unlock()

	if s.destroyed {
		return slog.GroupValue(slog.Uint64("id", s.id), slog.Bool("destroyed", true))
	}
	return slog.GroupValue(
		slog.Uint64("id", s.id),
		slog.Int("length", s.lengthImpl()),
		slog.Bool("checked_out", s.state != stateSecured),
	)
}

// key is the obfuscation word for the length fields. The mask always
// holds at least constants.MinAllocated+1 bytes.
func (s *SecureString) key() uint64 {
	return binary.LittleEndian.Uint64(s.mask[:8])
}

func (s *SecureString) lengthImpl() int {
	return int(s.length ^ s.key())
}

func (s *SecureString) setLength(n int) {
	s.length = uint64(n) ^ s.key()
}

func (s *SecureString) capImpl() int {
	return int(s.allocated ^ s.key())
}

func (s *SecureString) cursorImpl() int {
	return int(s.cursor ^ s.key())
}

func (s *SecureString) setCursor(n int) {
	s.cursor = uint64(n) ^ s.key()
}

func (s *SecureString) decode(i int) byte {
	return s.mask[i] ^ s.data[i]
}

func (s *SecureString) encode(i int, c byte) {
	s.data[i] = s.mask[i] ^ c
}

func (s *SecureString) mustBeAlive(operation string) {
	if s.destroyed {
		panic(serrors.NewDestroyedError(operation))
	}
}

func clampLen(available, maxLen int) int {
	if maxLen <= 0 || maxLen > available {
		return available
	}
	return maxLen
}
