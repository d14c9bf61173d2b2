// internal/security/resource_manager.go
package security

// ResourceManager tracks secure strings that must be destroyed when the
// process shuts down.
type ResourceManager interface {
	// RegisterSecureString registers a SecureString for cleanup during shutdown
	RegisterSecureString(secureStr *SecureString, description string)

	// UnregisterSecureString removes a SecureString from cleanup registry
	UnregisterSecureString(secureStr *SecureString)

	// IsShutdown returns true if shutdown has been initiated
	IsShutdown() bool
}

// Global resource manager instance
var globalResourceManager ResourceManager

// SetResourceManager sets the global resource manager instance
func SetResourceManager(manager ResourceManager) {
	globalResourceManager = manager
}

// GetResourceManager returns the global resource manager instance
func GetResourceManager() ResourceManager {
	return globalResourceManager
}

// Track registers s with the global resource manager, if one is set, and
// returns s. A string created after shutdown began is destroyed at once.
func Track(s *SecureString, description string) *SecureString {
	manager := GetResourceManager()
	if manager == nil || s == nil {
		return s
	}
	if manager.IsShutdown() {
		s.Destroy()
		return s
	}
	manager.RegisterSecureString(s, description)
	return s
}

// Release destroys s and removes it from the global resource manager.
func Release(s *SecureString) {
	if s == nil {
		return
	}
	if manager := GetResourceManager(); manager != nil {
		manager.UnregisterSecureString(s)
	}
	s.Destroy()
}
