package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "shopfront.log")

	logger, closeLog, err := Open(path, "debug")
	require.NoError(t, err)

	logger.Info().Str("event", "старт").Msg("service started")
	require.NoError(t, closeLog())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "service started")
	assert.Contains(t, string(raw), `"service":"shopfront"`)
}

func TestEmptyPathDisablesLogging(t *testing.T) {
	logger, closeLog, err := Open("", "info")
	require.NoError(t, err)
	defer func() { _ = closeLog() }()

	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNewTestWritesToSink(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTest(&buf)
	logger.Warn().Msg("проверка")
	assert.Contains(t, buf.String(), "проверка")
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
}
