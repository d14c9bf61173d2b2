package security

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_Selection(t *testing.T) {
	assert.IsType(t, noopGuard{}, NewSize(8, WithThreadSafety(false)).guard)
	assert.IsType(t, &mutexGuard{}, NewSize(8, WithThreadSafety(true)).guard)
	assert.Equal(t, defaultThreadSafe, ThreadSafeByDefault())
}

func TestGuard_ConcurrentAppends(t *testing.T) {
	s := NewSize(8, WithThreadSafety(true))
	defer s.Destroy()

	const workers, perWorker = 8, 200
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.AppendString("x")
			}
		}()
	}
	wg.Wait()

	require.Equal(t, workers*perWorker, s.Len())
	assert.True(t, s.EqualsBytes(repeatByte('x', workers*perWorker)))
}

func TestGuard_ConcurrentCheckoutsHaveOneWinner(t *testing.T) {
	s := FromString("contended", WithThreadSafety(true))
	defer s.Destroy()

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	start := make(chan struct{})
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, ok := s.Checkout(); ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, winners)
	s.CheckoutFinished()
}

func TestGuard_CrossValueOperationsDoNotDeadlock(t *testing.T) {
	a := FromString("aaaa", WithThreadSafety(true))
	defer a.Destroy()
	b := FromString("bbbb", WithThreadSafety(true))
	defer b.Destroy()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.Equals(b)
			a.ConstantTimeEquals(b)
		}()
		go func() {
			defer wg.Done()
			b.Equals(a)
			b.ConstantTimeEquals(a)
		}()
	}
	wg.Wait()

	a.AppendValue(b)
	b.AppendValue(a)
	assert.Equal(t, "aaaabbbb", checkoutString(t, a))
	assert.Equal(t, "bbbbaaaabbbb", checkoutString(t, b))
}

func repeatByte(c byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return b
}

// countingGuard records every Lock and Unlock and the deepest nesting seen.
type countingGuard struct {
	locks, unlocks, depth, maxDepth int
}

func (g *countingGuard) Lock() {
	g.locks++
	g.depth++
	if g.depth > g.maxDepth {
		g.maxDepth = g.depth
	}
}

func (g *countingGuard) Unlock() {
	g.unlocks++
	g.depth--
}

func TestWithGuard_BalancedOnEveryCall(t *testing.T) {
	guard := &countingGuard{}
	s := NewSize(8, WithGuard(guard), WithThreadSafety(true))
	require.Same(t, guard, s.guard)

	other := FromString("other")
	defer other.Destroy()

	calls := []struct {
		name string
		call func()
	}{
		{name: "AssignString", call: func() { s.AssignString("line one\nline two") }},
		{name: "AssignBytes", call: func() { s.AssignBytes([]byte("line one\nline two"), 0, false) }},
		{name: "AppendString", call: func() { s.AppendString("!") }},
		{name: "AppendBytes", call: func() { s.AppendBytes([]byte("?"), 0, true) }},
		{name: "AppendValue", call: func() { s.AppendValue(other) }},
		{name: "AssignValue", call: func() { s.AssignValue(other) }},
		{name: "Reserve", call: func() { s.Reserve(64) }},
		{name: "Allocate", call: func() { s.Allocate(32) }},
		{name: "Len", call: func() { _ = s.Len() }},
		{name: "Cap", call: func() { _ = s.Cap() }},
		{name: "IsEmpty", call: func() { _ = s.IsEmpty() }},
		{name: "At", call: func() { _ = s.At(0) }},
		{name: "Checksum", call: func() { _ = s.Checksum() }},
		{name: "Equals", call: func() { _ = s.Equals(other) }},
		{name: "EqualsBytes", call: func() { _ = s.EqualsBytes([]byte("other")) }},
		{name: "EqualsString", call: func() { _ = s.EqualsString("other") }},
		{name: "ConstantTimeEquals", call: func() { _ = s.ConstantTimeEquals(other) }},
		{name: "Checkout", call: func() { _, _ = s.Checkout() }},
		{name: "IsCheckedOut", call: func() { _ = s.IsCheckedOut() }},
		{name: "CheckoutFinished", call: func() { s.CheckoutFinished() }},
		{name: "CheckoutMutable", call: func() { _, _ = s.CheckoutMutable() }},
		{name: "CheckoutFinished mutable", call: func() { s.CheckoutFinished() }},
		{name: "ResetLineCursor", call: func() { s.ResetLineCursor() }},
		{name: "HasNextLine", call: func() { _ = s.HasNextLine() }},
		{name: "CheckoutNextLine", call: func() { _, _ = s.CheckoutNextLine() }},
		{name: "CheckoutFinished line", call: func() { s.CheckoutFinished() }},
		{name: "WithPlaintext", call: func() { _ = s.WithPlaintext(func([]byte) error { return nil }) }},
		{name: "EachLine", call: func() { _ = s.EachLine(func(int, []byte) error { return nil }) }},
		{name: "String", call: func() { _ = s.String() }},
		{name: "LogValue", call: func() { _ = s.LogValue() }},
		{name: "IsDestroyed", call: func() { _ = s.IsDestroyed() }},
		{name: "Destroy", call: func() { s.Destroy() }},
	}

	for _, c := range calls {
		before := guard.locks
		c.call()
		assert.Greater(t, guard.locks, before, "%s did not take the guard", c.name)
		assert.Equal(t, guard.locks, guard.unlocks, "%s left the guard unbalanced", c.name)
		assert.Equal(t, 1, guard.maxDepth, "%s nested the guard", c.name)
	}
}

func TestWithGuard_SharedByClone(t *testing.T) {
	guard := &mutexGuard{}
	s := FromString("shared", WithGuard(guard))
	defer s.Destroy()

	c := s.Clone()
	defer c.Destroy()

	assert.Same(t, guard, c.guard)
	c.AppendValue(s)
	s.AssignValue(c)
	assert.Equal(t, "sharedshared", checkoutString(t, s))
}
