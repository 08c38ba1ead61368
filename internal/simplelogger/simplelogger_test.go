package simplelogger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retransdiff.log")
	t.Setenv(EnvLogFile, path)

	logger, closer := New(zerolog.InfoLevel)
	logger.Info().Str("who", "world").Msg("hello")
	logger.Debug().Msg("filtered out")
	require.NoError(t, closer.Close())

	logger, closer = New(zerolog.InfoLevel)
	logger.Warn().Int("n", 123).Msg("again")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(b), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), `"message":"hello"`)
	assert.Contains(t, string(lines[0]), `"who":"world"`)
	assert.Contains(t, string(lines[1]), `"level":"warn"`)
	assert.NotContains(t, string(b), "filtered out")
}

func TestNew_NoOpWhenUnset(t *testing.T) {
	t.Setenv(EnvLogFile, "")
	logger, closer := New(zerolog.DebugLevel)
	logger.Info().Msg("should not panic")
	require.NoError(t, closer.Close())
}

func TestNew_NoOpWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvLogFile, dir)

	logger, closer := New(zerolog.DebugLevel)
	logger.Info().Msg("ignored")
	require.NoError(t, closer.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
