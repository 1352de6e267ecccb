package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "service.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Debug("hidden %d", 1)
	log.Info("reservation %s created", "r-1")
	log.Warn("no availability for %d people", 4)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reservation r-1 created")
	assert.Contains(t, string(data), "no availability for 4 people")
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNew_DefaultLevel(t *testing.T) {
	log, err := New("", "")
	require.NoError(t, err)
	assert.NoError(t, log.Close())
}

func TestNop(t *testing.T) {
	log := NewNop()
	log.Info("nothing %s", "here")
	log.Error("still nothing")
	assert.NoError(t, log.Close())
}
