package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("CRON_ENABLED", "")
	t.Setenv("OPERATOR_EMAIL", "")

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, 3000, env.PORT)
	assert.Equal(t, 587, env.SMTP_PORT)
	assert.Equal(t, "localhost", env.DB_HOST)
	assert.Equal(t, "5432", env.DB_PORT)
	assert.True(t, env.CRON_ENABLED)
	assert.Empty(t, env.OPERATOR_EMAIL)
}

func TestGetOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("CRON_ENABLED", "false")

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, 8080, env.PORT)
	assert.Equal(t, 2525, env.SMTP_PORT)
	assert.False(t, env.CRON_ENABLED)
}

func TestOperatorEmailLowerCased(t *testing.T) {
	t.Setenv("OPERATOR_EMAIL", "Admin@Example.COM")

	env, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", env.OPERATOR_EMAIL)
}
