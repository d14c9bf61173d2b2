// internal/shutdown/helpers.go
package shutdown

// RegisterClipboardGlobal registers clipboard for cleanup
func RegisterClipboardGlobal(description string) {
	GetManager().RegisterClipboard(description)
}

// UnregisterClipboardGlobal drops the clipboard from the cleanup registry
func UnregisterClipboardGlobal() {
	GetManager().UnregisterClipboard()
}

// IsShuttingDown returns true if shutdown has been initiated
func IsShuttingDown() bool {
	return GetManager().IsShutdown()
}

// GetResourceCount returns the number of registered resources
func GetResourceCount() int {
	return GetManager().GetResourceCount()
}
