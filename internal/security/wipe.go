package security

import "github.com/awnumar/memguard"

// wipe zeroes b in a way the compiler cannot elide.
func wipe(b []byte) {
	memguard.WipeBytes(b)
}

// SecureClearBytes zeroes sensitive data held outside a SecureString.
func SecureClearBytes(data []byte) {
	wipe(data)
}
