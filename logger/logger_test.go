package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLevels(t *testing.T) {
	l := newLog()

	require.NoError(t, l.Configure("debug", "text", "stderr", 0))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	assert.Error(t, l.Configure("loud", "text", "stderr", 0))
	assert.Error(t, l.Configure("info", "xml", "stderr", 0))
}

func TestConfigureLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	l := newLog()
	require.NoError(t, l.Configure("debug", "text", "stderr", 0))
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
}

func TestConfigureFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fxcredit.log")

	l := newLog()
	require.NoError(t, l.Configure("info", "json", path, 0))
	l.WithComponent("config").Info("loaded")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"config"`)
}

func TestJSONEntryFields(t *testing.T) {
	l := newLog()
	require.NoError(t, l.Configure("info", "json", "stderr", 0))

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.WithComponent("check").
		WithFields(Fields{"dir": "./data", "findings": 2}).
		WithError(errors.New("boom")).
		Warn("validation found problems")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "check", entry["component"])
	assert.Equal(t, "./data", entry["dir"])
	assert.Equal(t, float64(2), entry["findings"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "validation found problems", entry["message"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestGetReturnsSharedLogger(t *testing.T) {
	assert.Same(t, Get(), Get())
}
