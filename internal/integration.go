// internal/integration.go
package internal

import (
	"securestring.module/internal/clipboard"
	"securestring.module/internal/security"
	"securestring.module/internal/shutdown"
)

// ShutdownManagerAdapter adapts the shutdown manager to the security ResourceManager interface
type ShutdownManagerAdapter struct {
	manager *shutdown.GracefulShutdownManager
}

// NewShutdownManagerAdapter creates a new adapter
func NewShutdownManagerAdapter(manager *shutdown.GracefulShutdownManager) *ShutdownManagerAdapter {
	return &ShutdownManagerAdapter{manager: manager}
}

// RegisterSecureString registers secureStr for destruction at shutdown
func (a *ShutdownManagerAdapter) RegisterSecureString(secureStr *security.SecureString, description string) {
	a.manager.RegisterSecureString(secureStr, description)
}

// UnregisterSecureString removes secureStr from the shutdown registry
func (a *ShutdownManagerAdapter) UnregisterSecureString(secureStr *security.SecureString) {
	a.manager.UnregisterSecureString(secureStr)
}

// RegisterClipboard delegates to the shutdown manager
func (a *ShutdownManagerAdapter) RegisterClipboard(description string) {
	a.manager.RegisterClipboard(description)
}

// IsShutdown delegates to the shutdown manager
func (a *ShutdownManagerAdapter) IsShutdown() bool {
	return a.manager.IsShutdown()
}

// GetResourceCount delegates to the shutdown manager
func (a *ShutdownManagerAdapter) GetResourceCount() int {
	return a.manager.GetResourceCount()
}

// InitializeIntegration sets up cross-package integrations
func InitializeIntegration() {
	shutdown.SetClipboardClearer(clipboard.Clear)

	adapter := NewShutdownManagerAdapter(shutdown.GetManager())
	security.SetResourceManager(adapter)
}
