package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewNamed_Levels(t *testing.T) {
	dev, err := NewNamed("development", "suite", "")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	prod, err := NewNamed("production", "suite", "")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))
}

func TestNewNamed_WritesRotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, err := NewNamed("production", "booking-twin", dir)
	require.NoError(t, err)
	log.Info("started")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "booking-twin.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"started"`)
	assert.Contains(t, string(data), `"logger":"booking-twin"`)
	assert.Contains(t, string(data), `"timestamp"`)
}
