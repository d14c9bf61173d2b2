//go:build securestring_threadsafe

package security

const defaultThreadSafe = true
