package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inEmptyDir runs the test from a directory without a .env file.
func inEmptyDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "https://restful-booker.herokuapp.com", cfg.BaseURL)
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, "password123", cfg.Password)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, ":3001", cfg.Port)
	assert.False(t, cfg.DBConfig.Enabled())
	assert.False(t, cfg.KafkaConfig.Enabled())
	assert.Equal(t, "booking.events", cfg.KafkaConfig.Topic)
}

func TestLoad_Environment(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("BOOKER_APP_ENV", "production")
	t.Setenv("BOOKER_BASE_URL", "http://localhost:3001/")
	t.Setenv("BOOKER_HTTP_TIMEOUT", "2s")
	t.Setenv("BOOKER_RATE_LIMIT", "2.5")
	t.Setenv("BOOKER_DB_HOST", "db")
	t.Setenv("BOOKER_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "http://localhost:3001", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.True(t, cfg.DBConfig.Enabled())
	assert.Equal(t, "host=db port=5432 user=postgres password=postgres dbname=booker sslmode=disable", cfg.DBConfig.DSN())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaConfig.Brokers)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := inEmptyDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BASE_URL=http://twin:3001\nUSERNAME=tester\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://twin:3001", cfg.BaseURL)
	assert.Equal(t, "tester", cfg.Username)

	t.Setenv("BOOKER_USERNAME", "from-env")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Username, "environment wins over .env")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"relative base url", "BOOKER_BASE_URL", "not a url"},
		{"zero timeout", "BOOKER_HTTP_TIMEOUT", "0s"},
		{"negative timeout", "BOOKER_HTTP_TIMEOUT", "-1s"},
		{"negative rate limit", "BOOKER_RATE_LIMIT", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inEmptyDir(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}
