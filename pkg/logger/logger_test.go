package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLogger_WritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")

	require.NoError(t, InitLogger(Options{Level: "debug", File: file, MaxSize: 1}))
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	Sugar.Infow("short url created", "shortcode", "abc12345")
	_ = Logger.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "short url created")
	assert.Contains(t, string(data), "abc12345")
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	assert.Error(t, InitLogger(Options{Level: "loud"}))
}
