// File: internal/constants/constants.go
package constants

// Application identity
const (
	AppName   = "securestring"
	EnvPrefix = "SECURESTRING"
)

// Secure string defaults
const (
	// DefaultAllocated is the capacity given to a secure string created
	// without an explicit size.
	DefaultAllocated = 80

	// MinAllocated is the smallest capacity ever allocated; the obfuscation
	// key for the length fields is read from the first MinAllocated mask bytes.
	MinAllocated = 8

	// MaxDefaultAllocated bounds the configurable default capacity.
	MaxDefaultAllocated = 1 << 20
)

// Clipboard defaults (seconds)
const (
	DefaultClipboardTimeout = 30
	MaxClipboardTimeout     = 600
)

// Configuration keys
const (
	KeyThreadSafe       = "thread_safe"
	KeyDefaultAllocated = "default_allocated"
	KeyLockMemory       = "lock_memory"
	KeyClipboardTimeout = "clipboard_timeout"
	KeyAuditLog         = "audit_log"
)

const DefaultAuditLog = "audit.log"

// Mnemonic word counts accepted by the generate command
var MnemonicWordCounts = []int{12, 15, 18, 21, 24}
