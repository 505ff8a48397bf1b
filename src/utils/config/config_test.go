package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	config := Default()
	require.NotNil(t, config)

	require.Equal(t, 30*time.Second, config.StopTimeout)
	require.Equal(t, ":7777", config.RESTListenAddress)

	require.Equal(t, time.Hour, config.Monitor.GracePeriod)
	require.Equal(t, 24*time.Hour, config.Activator.RecruitmentExtension)
	require.False(t, config.Redis.Enabled)
	require.Equal(t, "pools:lifecycle", config.Redis.ChannelName)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("AGENT_MONITOR_GRACE_PERIOD", "2h")
	t.Setenv("AGENT_REDIS_ENABLED", "true")

	config, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 2*time.Hour, config.Monitor.GracePeriod)
	require.True(t, config.Redis.Enabled)
}
