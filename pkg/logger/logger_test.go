package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetupLoggerAppliesLevel(t *testing.T) {
	t.Cleanup(func() { SetLogger(zap.NewNop()) })
	dir := t.TempDir()

	require.NoError(t, setupLogger(dir, "warn"))
	assert.False(t, zapLogger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zapLogger.Core().Enabled(zapcore.WarnLevel))

	Warning("nivel %s", "warn")
	Info("no se escribe")
	Sync()
	data, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "nivel warn")
	assert.NotContains(t, string(data), "no se escribe")

	require.NoError(t, setupLogger(dir, "debug"))
	assert.True(t, zapLogger.Core().Enabled(zapcore.DebugLevel))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(" warning "))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}
