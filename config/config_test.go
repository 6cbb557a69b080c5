package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hafalan-engine", cfg.App.Name)
	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("STORE_SQLITE_PATH", "/var/lib/hafalan/journal.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("APP_SHUTDOWN_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/hafalan/journal.db", cfg.Store.SQLitePath)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.App.ShutdownTimeout)
}

func TestValidate_UnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
}

func TestValidate_MemoryBackendRejectedInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_BACKEND", "memory")

	_, err := Load()
	assert.Error(t, err)
}

func TestFeatureFlags_Defaults(t *testing.T) {
	ff := LoadFeatureFlags()

	assert.False(t, ff.IsEnabled(FeatureApproximateAyahCount))
	assert.True(t, ff.IsEnabled(FeatureAchievementQualityRules))
	assert.True(t, ff.IsEnabled(FeatureMurojaahUrgency))
	assert.False(t, ff.IsEnabled("no.such.flag"))
}

func TestFeatureFlags_EnvironmentOverride(t *testing.T) {
	t.Setenv("FEATURE_STATS_APPROXIMATE_AYAH_COUNT", "true")
	t.Setenv("FEATURE_MUROJAAH_URGENCY", "false")

	ff := LoadFeatureFlags()
	assert.True(t, ff.IsEnabled(FeatureApproximateAyahCount))
	assert.False(t, ff.IsEnabled(FeatureMurojaahUrgency))
}

func TestFeatureFlags_Set(t *testing.T) {
	ff := LoadFeatureFlags()

	ff.Set(FeatureMurojaahUrgency, false)
	assert.False(t, ff.IsEnabled(FeatureMurojaahUrgency))

	// Unknown flags are ignored, not created.
	ff.Set("no.such.flag", true)
	assert.False(t, ff.IsEnabled("no.such.flag"))

	all := ff.All()
	assert.Len(t, all, 3)
	assert.False(t, all[FeatureMurojaahUrgency])
}
