package security

import "sync"

// Guard provides exclusive access to one SecureString for the duration of
// a single method call.
type Guard = sync.Locker

type noopGuard struct{}

func (noopGuard) Lock()   {}
func (noopGuard) Unlock() {}

type mutexGuard struct {
	sync.Mutex
}

func newGuard(threadSafe bool) Guard {
	if threadSafe {
		return &mutexGuard{}
	}
	return noopGuard{}
}

// ThreadSafeByDefault reports the build-time guard default. Build with
// -tags securestring_threadsafe to enable the mutex guard by default.
func ThreadSafeByDefault() bool {
	return defaultThreadSafe
}

// lockPair locks two strings in a stable order so that concurrent
// a.AppendValue(b) and b.AppendValue(a) cannot deadlock.
func lockPair(a, b *SecureString) func() {
	if a == b || sameGuard(a.guard, b.guard) {
		a.guard.Lock()
		return a.guard.Unlock
	}

	first, second := a, b
	if second.id < first.id {
		first, second = second, first
	}
	first.guard.Lock()
	second.guard.Lock()
	return func() {
		second.guard.Unlock()
		first.guard.Unlock()
	}
}

// sameGuard reports whether a and b are one guard instance. Guards whose
// dynamic type is not comparable are never the same.
func sameGuard(a, b Guard) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
