package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_WritesConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, err := NewLogger("test", dir, &console)
	require.NoError(t, err)

	logger.Debug("file only", zap.Int("dates", 7))
	logger.Info("both outputs", zap.String("period", "fall"))
	require.NoError(t, logger.Sync())

	assert.Contains(t, console.String(), "both outputs")
	assert.NotContains(t, console.String(), "file only")

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0].Name(), "test_"))

	data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"file only"`)
	assert.Contains(t, string(data), `"env":"test"`)
}

func TestLogFilePath(t *testing.T) {
	at := time.Date(2015, 9, 18, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, filepath.Join("logs", "prod_2015-09-18_14-30-05.log"), logFilePath("logs", "prod", at))
	assert.Equal(t, filepath.Join("logs", "2015-09-18_14-30-05.log"), logFilePath("logs", "", at))
}
