package security

import (
	"log/slog"

	serrors "securestring.module/internal/errors"
)

// Checkout returns a plaintext copy of the content. Only one view may be
// outstanding at a time: while one is, Checkout returns nil, false and
// changes nothing. The view must not be modified; release it with
// CheckoutFinished, which wipes it.
func (s *SecureString) Checkout() ([]byte, bool) {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("Checkout")

	return s.checkoutImpl(stateCheckedOut, "Checkout")
}

// CheckoutMutable is Checkout for a view that may be edited in place.
// CheckoutFinished copies the edited view back into the string. The view
// is exactly Len() bytes long; writing a zero byte over a non-zero one ends
// the content there, which is how a caller shortens the secret. Zero bytes
// already present in the content are kept, so binary content survives an
// unchanged round trip. To shorten content at one of its own zero bytes,
// assign it anew instead.
func (s *SecureString) CheckoutMutable() ([]byte, bool) {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("CheckoutMutable")

	return s.checkoutImpl(stateCheckedOutMutable, "CheckoutMutable")
}

// CheckoutNextLine returns the next line as an immutable view, decoding
// only as far as the line terminator. "\n", "\r" and "\r\n" end a line and
// are not part of it. Content with k terminators has k+1 lines, so the
// empty string has one empty line. Once the lines are exhausted each call
// returns an empty view; HasNextLine tells the two apart.
//
// The line cursor is reset by every assign and append.
func (s *SecureString) CheckoutNextLine() ([]byte, bool) {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("CheckoutNextLine")

	if s.state != stateSecured {
		s.logConflict("CheckoutNextLine")
		return nil, false
	}

	start, total := s.cursorImpl(), s.lengthImpl()
	if start > total {
		return s.openView(0, stateCheckedOut), true
	}

	end, next := total, total+1
	for i := start; i < total; i++ {
		c := s.decode(i)
		if c == '\n' {
			end, next = i, i+1
			break
		}
		if c == '\r' {
			end, next = i, i+1
			if next < total && s.decode(next) == '\n' {
				next++
			}
			break
		}
	}

	view := s.openView(end-start, stateCheckedOut)
	for i := range view {
		view[i] = s.decode(start + i)
	}
	s.setCursor(next)
	return view, true
}

// HasNextLine reports whether CheckoutNextLine still has a line to return.
func (s *SecureString) HasNextLine() bool {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("HasNextLine")

	return s.cursorImpl() <= s.lengthImpl()
}

// ResetLineCursor makes the next CheckoutNextLine start at the first line.
func (s *SecureString) ResetLineCursor() {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.mustBeAlive("ResetLineCursor")

	s.setCursor(0)
}

// CheckoutFinished ends the current checkout. A mutable view is absorbed
// back into the string first. The view is then wiped and released. Without
// an outstanding view it does nothing, so calling it twice is safe.
func (s *SecureString) CheckoutFinished() {
	s.guard.Lock()
	defer s.guard.Unlock()
	if s.destroyed {
		return
	}

	s.finishImpl()
}

// IsCheckedOut reports whether a view is outstanding.
func (s *SecureString) IsCheckedOut() bool {
	s.guard.Lock()
	defer s.guard.Unlock()

	return s.state != stateSecured
}

// WithPlaintext checks out an immutable view, passes it to fn and finishes
// the checkout when fn returns or panics. fn must not retain the view.
// A pending checkout makes it return a CHECKOUT_CONFLICT error.
func (s *SecureString) WithPlaintext(fn func(plaintext []byte) error) error {
	view, ok := s.Checkout()
	if !ok {
		return serrors.NewCheckoutConflictError("WithPlaintext")
	}
	defer s.CheckoutFinished()

	return fn(view)
}

// WithMutablePlaintext is WithPlaintext for a mutable view; edits made by
// fn are absorbed when it returns, even if it returns an error.
func (s *SecureString) WithMutablePlaintext(fn func(plaintext []byte) error) error {
	view, ok := s.CheckoutMutable()
	if !ok {
		return serrors.NewCheckoutConflictError("WithMutablePlaintext")
	}
	defer s.CheckoutFinished()

	return fn(view)
}

// EachLine walks every line from the first one, finishing each checkout
// before the next. It stops at the first error fn returns.
func (s *SecureString) EachLine(fn func(number int, line []byte) error) error {
	s.ResetLineCursor()
	for number := 1; s.HasNextLine(); number++ {
		line, ok := s.CheckoutNextLine()
		if !ok {
			return serrors.NewCheckoutConflictError("EachLine")
		}
		err := fn(number, line)
		s.CheckoutFinished()
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SecureString) checkoutImpl(state checkoutState, operation string) ([]byte, bool) {
	if s.state != stateSecured {
		s.logConflict(operation)
		return nil, false
	}

	n := s.lengthImpl()
	view := s.openView(n, state)
	for i := 0; i < n; i++ {
		view[i] = s.decode(i)
	}
	return view, true
}

// openView allocates an n+1 byte zero-terminated view, records it as the
// outstanding one and returns its first n bytes.
func (s *SecureString) openView(n int, state checkoutState) []byte {
	view, err := s.alloc.Alloc(n + 1)
	if err != nil {
		panic(serrors.NewAllocationError(n+1, err))
	}
	view[n] = 0

	s.view = view
	s.state = state
	return view[:n:n]
}

func (s *SecureString) finishImpl() {
	if s.state == stateSecured {
		return
	}
	defer s.releaseView()

	if s.state == stateCheckedOutMutable {
		edited := s.view[:len(s.view)-1]
		assignFrom(s, edited[:s.editedLength(edited)])
	}
}

// editedLength returns where the edited view ends: at the first zero byte
// the caller wrote over a non-zero content byte, else at its full length.
// The content is still intact while the view is outstanding.
func (s *SecureString) editedLength(edited []byte) int {
	for i, c := range edited {
		if c == 0 && s.decode(i) != 0 {
			return i
		}
	}
	return len(edited)
}

func (s *SecureString) releaseView() {
	s.release(s.view)
	s.view = nil
	s.state = stateSecured
}

func (s *SecureString) logConflict(operation string) {
	s.logger.Warn("checkout refused, a view is already outstanding",
		slog.Uint64("id", s.id),
		slog.String("operation", operation))
}
