package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_TextFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "text")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "email", "a@example.com")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=shown")
	require.Contains(t, buf.String(), "email=a@example.com")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "DEBUG", "json")
	require.NoError(t, err)

	logger.Debug("provisioning", "user_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "provisioning", entry["msg"])
	require.Equal(t, "DEBUG", entry["level"])
	require.EqualValues(t, 7, entry["user_id"])
}

func TestNew_RejectsUnknownSettings(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "verbose", "text")
	require.ErrorContains(t, err, "invalid log level")

	_, err = New(&bytes.Buffer{}, "info", "xml")
	require.ErrorContains(t, err, "invalid log format")
}
