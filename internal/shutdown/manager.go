// internal/shutdown/manager.go
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	serrors "securestring.module/internal/errors"
)

// CleanupResource represents a resource that needs cleanup during shutdown
type CleanupResource interface {
	Cleanup() error
	Description() string
}

// Destroyer is anything that wipes itself, typically a *security.SecureString.
type Destroyer interface {
	Destroy()
}

// SecureStringResource wraps a secure string for cleanup
type SecureStringResource struct {
	secureStr   Destroyer
	description string
}

func (r *SecureStringResource) Cleanup() error {
	if r.secureStr != nil {
		r.secureStr.Destroy()
	}
	return nil
}

func (r *SecureStringResource) Description() string {
	return r.description
}

// ClipboardResource handles clipboard cleanup
type ClipboardResource struct {
	description string
}

func (r *ClipboardResource) Cleanup() error {
	return clearClipboardFunc()
}

func (r *ClipboardResource) Description() string {
	return r.description
}

const (
	cleanupTimeout = 30 * time.Second
	maxWorkers     = 10
)

// GracefulShutdownManager handles graceful shutdown and resource cleanup
type GracefulShutdownManager struct {
	resources    []CleanupResource
	mu           sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	shutdownOnce sync.Once
	isShutdown   bool
	signals      chan os.Signal
	logger       *slog.Logger
}

var (
	// Global instance
	globalManager *GracefulShutdownManager
	managerOnce   sync.Once
)

// GetManager returns the global shutdown manager instance
func GetManager() *GracefulShutdownManager {
	managerOnce.Do(func() {
		globalManager = newManager(true)
	})
	return globalManager
}

// newManager creates a new shutdown manager, optionally reacting to
// termination signals.
func newManager(watchSignals bool) *GracefulShutdownManager {
	ctx, cancel := context.WithCancel(context.Background())

	manager := &GracefulShutdownManager{
		resources: make([]CleanupResource, 0),
		ctx:       ctx,
		cancel:    cancel,
		signals:   make(chan os.Signal, 1),
		logger:    slog.New(slog.DiscardHandler),
	}

	if watchSignals {
		signal.Notify(manager.signals,
			syscall.SIGINT,  // Ctrl+C
			syscall.SIGTERM, // Termination request
			syscall.SIGQUIT, // Quit request
		)
		go manager.signalHandler()
	}

	return manager
}

// SetLogger directs cleanup reports to logger
func (m *GracefulShutdownManager) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	m.mu.Lock()
	m.logger = logger
	m.mu.Unlock()
}

// signalHandler handles incoming shutdown signals
func (m *GracefulShutdownManager) signalHandler() {
	select {
	case sig := <-m.signals:
		fmt.Fprintf(os.Stderr, "\nReceived signal %v, wiping secrets...\n", sig)
		m.Shutdown()
		os.Exit(130)
	case <-m.ctx.Done():
		return
	}
}

// RegisterSecureString registers a secure string to be destroyed at shutdown
func (m *GracefulShutdownManager) RegisterSecureString(secureStr Destroyer, description string) {
	if secureStr == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isShutdown {
		// Already shutting down, clean immediately
		secureStr.Destroy()
		return
	}

	m.resources = append(m.resources, &SecureStringResource{
		secureStr:   secureStr,
		description: description,
	})
}

// RegisterClipboard registers clipboard for cleanup
func (m *GracefulShutdownManager) RegisterClipboard(description string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isShutdown {
		_ = clearClipboardFunc()
		return
	}

	for _, resource := range m.resources {
		if _, ok := resource.(*ClipboardResource); ok {
			return
		}
	}
	m.resources = append(m.resources, &ClipboardResource{description: description})
}

// UnregisterClipboard drops the clipboard from the cleanup registry once
// its content has been handled.
func (m *GracefulShutdownManager) UnregisterClipboard() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, resource := range m.resources {
		if _, ok := resource.(*ClipboardResource); ok {
			m.resources = append(m.resources[:i], m.resources[i+1:]...)
			return
		}
	}
}

// RegisterCustomResource registers a custom cleanup resource
func (m *GracefulShutdownManager) RegisterCustomResource(resource CleanupResource) {
	if resource == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isShutdown {
		_ = resource.Cleanup()
		return
	}

	m.resources = append(m.resources, resource)
}

// UnregisterSecureString removes a secure string from the cleanup registry
func (m *GracefulShutdownManager) UnregisterSecureString(secureStr Destroyer) {
	if secureStr == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, resource := range m.resources {
		if ssResource, ok := resource.(*SecureStringResource); ok && ssResource.secureStr == secureStr {
			m.resources = append(m.resources[:i], m.resources[i+1:]...)
			break
		}
	}
}

// Shutdown cleans up every registered resource once
func (m *GracefulShutdownManager) Shutdown() {
	m.shutdownOnce.Do(func() {
		m.mu.Lock()
		m.isShutdown = true
		m.mu.Unlock()

		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cleanupCancel()

		if err := m.cleanupResources(cleanupCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Cleanup finished with errors: %v\n", err)
		}

		m.cancel()
	})
}

// cleanupResources runs every cleanup concurrently, bounded by ctx
func (m *GracefulShutdownManager) cleanupResources(ctx context.Context) error {
	m.mu.RLock()
	resources := make([]CleanupResource, len(m.resources))
	copy(resources, m.resources)
	logger := m.logger
	m.mu.RUnlock()

	if len(resources) == 0 {
		return nil
	}

	var (
		group      errgroup.Group
		errMu      sync.Mutex
		cleanupErr error
	)
	group.SetLimit(maxWorkers)

	for _, resource := range resources {
		group.Go(func() error {
			if err := resource.Cleanup(); err != nil {
				errMu.Lock()
				cleanupErr = errors.Join(cleanupErr, fmt.Errorf("failed to cleanup %s: %w", resource.Description(), err))
				errMu.Unlock()
				return nil
			}
			logger.Debug("resource cleaned", slog.String("resource", resource.Description()))
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = group.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		timeoutErr := serrors.NewTimeoutError("shutdown cleanup", int(cleanupTimeout.Seconds())).
			WithContext("pending", len(resources))
		logger.LogAttrs(context.Background(), slog.LevelError, "cleanup timeout reached", timeoutErr.ToSlogAttrs()...)
		return timeoutErr
	}

	m.mu.Lock()
	m.resources = m.resources[:0]
	m.mu.Unlock()

	errMu.Lock()
	defer errMu.Unlock()
	if cleanupErr != nil {
		logger.Warn("cleanup completed with errors", slog.String("error", cleanupErr.Error()))
	} else {
		logger.Info("all resources cleaned", slog.Int("count", len(resources)))
	}
	return cleanupErr
}

// GetResourceCount returns the number of registered resources
func (m *GracefulShutdownManager) GetResourceCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.resources)
}

// IsShutdown returns true if shutdown has been initiated
func (m *GracefulShutdownManager) IsShutdown() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isShutdown
}

// Context returns the shutdown context
func (m *GracefulShutdownManager) Context() context.Context {
	return m.ctx
}

// --- Dependency Injection for Clipboard Clearing ---

var clearClipboardFunc = func() error { return nil }

// SetClipboardClearer sets the function used to clear the clipboard
func SetClipboardClearer(clear func() error) {
	if clear != nil {
		clearClipboardFunc = clear
	}
}
