package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/jask/inventorly/internal/config"
)

func TestNewWithoutFileIsNop(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("dropped")
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "inventorly.log")
	logger, err := New(config.LogConfig{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("items imported")
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"message":"items imported"`)
	require.NotContains(t, string(data), "hidden at info level")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	require.Equal(t, zapcore.ErrorLevel, ParseLevel("ERROR"))
	require.Equal(t, zapcore.InfoLevel, ParseLevel("bogus"))
}

func TestMaskPhone(t *testing.T) {
	require.Equal(t, "******4567", MaskPhone("5551234567"))
	require.Equal(t, "123", MaskPhone("123"))
}
