package services

import (
	"testing"
	"time"

	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitService(store *SqliteService) *RateLimitService {
	svc := &RateLimitService{
		db:      store,
		repo:    repositories.NewRateLimitRepository(store.Db()),
		configs: map[string]*RateLimitConfig{},
	}
	svc.configs["test_endpoint"] = &RateLimitConfig{
		EndpointType: "test_endpoint",
		MaxRequests:  2,
		WindowSize:   time.Minute,
		BlockTime:    5 * time.Minute,
		IsActive:     true,
	}
	svc.configs["disabled_endpoint"] = &RateLimitConfig{
		EndpointType: "disabled_endpoint",
		MaxRequests:  1,
		WindowSize:   time.Minute,
		BlockTime:    time.Minute,
		IsActive:     false,
	}
	return svc
}

func TestIsAllowed_WithinLimit(t *testing.T) {
	store := newTestStore(t)
	svc := newRateLimitService(store)

	allowed, info, err := svc.IsAllowed("1.2.3.4", "test_endpoint")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, info.Remaining)
	assert.NotNil(t, info.ResetTime)

	allowed, info, err = svc.IsAllowed("1.2.3.4", "test_endpoint")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 0, info.Remaining)
}

func TestIsAllowed_BlocksOverLimit(t *testing.T) {
	store := newTestStore(t)
	svc := newRateLimitService(store)

	for i := 0; i < 2; i++ {
		allowed, _, err := svc.IsAllowed("1.2.3.4", "test_endpoint")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, info, err := svc.IsAllowed("1.2.3.4", "test_endpoint")
	require.NoError(t, err)
	assert.False(t, allowed)
	require.NotNil(t, info.BlockedUntil)
	assert.True(t, info.BlockedUntil.After(time.Now()))

	// Still blocked on the next call.
	allowed, info, err = svc.IsAllowed("1.2.3.4", "test_endpoint")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.NotNil(t, info.BlockedUntil)
}

func TestIsAllowed_IdentifiersAreIndependent(t *testing.T) {
	store := newTestStore(t)
	svc := newRateLimitService(store)

	for i := 0; i < 3; i++ {
		svc.IsAllowed("1.2.3.4", "test_endpoint")
	}

	allowed, _, err := svc.IsAllowed("5.6.7.8", "test_endpoint")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestIsAllowed_UnknownOrDisabledEndpointPassesThrough(t *testing.T) {
	store := newTestStore(t)
	svc := newRateLimitService(store)

	allowed, info, err := svc.IsAllowed("1.2.3.4", "no_such_endpoint")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, -1, info.Remaining)

	for i := 0; i < 5; i++ {
		allowed, _, err = svc.IsAllowed("1.2.3.4", "disabled_endpoint")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestResetRateLimit_ClearsBlock(t *testing.T) {
	store := newTestStore(t)
	svc := newRateLimitService(store)

	for i := 0; i < 3; i++ {
		svc.IsAllowed("1.2.3.4", "test_endpoint")
	}
	allowed, _, err := svc.IsAllowed("1.2.3.4", "test_endpoint")
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, svc.ResetRateLimit("1.2.3.4", "test_endpoint"))

	allowed, info, err := svc.IsAllowed("1.2.3.4", "test_endpoint")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, info.Remaining)
}

func TestDefaultConfigs_CoverDomainEndpoints(t *testing.T) {
	svc := &RateLimitService{configs: map[string]*RateLimitConfig{}}
	svc.initDefaultConfigs()

	for _, endpoint := range []string{"login", "register", "refresh", "chat_message", "scenario_submit", "workflow_hint", "upload", "api_general"} {
		config, ok := svc.configs[endpoint]
		require.True(t, ok, endpoint)
		assert.True(t, config.IsActive)
		assert.Greater(t, config.MaxRequests, 0)
	}
}
