package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "session", cfg.Auth.Mode)
	assert.Equal(t, 3, cfg.Identifier.MaxAttempts)
	assert.True(t, cfg.Lifecycle.StrictTourRequestTransitions)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)

	for _, op := range PolicyOperations {
		assert.Equalf(t, []string{"ADMIN"}, cfg.Policy[op], "default roles for %s", op)
	}
}

func TestLoadConfigPolicyOverride(t *testing.T) {
	t.Setenv("POLICY_TOUR_REQUEST_UPDATE_ROLES", "ADMIN, OPERATOR")
	t.Setenv("AUTH_MODE", "JWT")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"ADMIN", "OPERATOR"}, cfg.Policy["tour_request.update"])
	assert.Equal(t, []string{"ADMIN"}, cfg.Policy["booking.update_status"])
	assert.Equal(t, "jwt", cfg.Auth.Mode)
}

func TestPolicyEnvKey(t *testing.T) {
	assert.Equal(t, "POLICY_BOOKING_UPDATE_STATUS_ROLES", PolicyEnvKey("booking.update_status"))
}

func TestAppConfigLocation(t *testing.T) {
	assert.Equal(t, time.Local, AppConfig{Timezone: "Local"}.Location())
	assert.Equal(t, time.Local, AppConfig{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, "UTC", AppConfig{Timezone: "UTC"}.Location().String())
}

func TestParseDate(t *testing.T) {
	loc := time.UTC

	d, err := ParseDate("2025-08-15", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 15, 0, 0, 0, 0, loc), d)

	d, err = ParseDate("2025-08-15T18:30:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 15, 0, 0, 0, 0, loc), d)

	_, err = ParseDate("15/08/2025", loc)
	assert.Error(t, err)
}
