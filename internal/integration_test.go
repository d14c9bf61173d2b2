package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securestring.module/internal/security"
	"securestring.module/internal/shutdown"
)

func TestInitializeIntegration_TracksSecureStrings(t *testing.T) {
	InitializeIntegration()
	defer security.SetResourceManager(nil)

	require.NotNil(t, security.GetResourceManager())
	before := shutdown.GetResourceCount()

	secret := security.Track(security.FromString("hunter2"), "test secret")
	assert.Equal(t, before+1, shutdown.GetResourceCount())

	security.Release(secret)
	assert.Equal(t, before, shutdown.GetResourceCount())
	assert.True(t, secret.IsDestroyed())
}
