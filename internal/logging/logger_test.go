package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"bgclear/internal/config"
)

func TestNew_TextDefaults(t *testing.T) {
	cfg := config.DefaultConfig(t.TempDir())
	var buf bytes.Buffer
	log := New(&cfg, &buf)

	require.Equal(t, logrus.InfoLevel, log.GetLevel())
	log.Debug("hidden")
	log.WithField("root", "Building").Info("processing")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "processing")
	require.Contains(t, out, "root=Building")
}

func TestNew_VerboseJSON(t *testing.T) {
	cfg := config.DefaultConfig(t.TempDir())
	cfg.Verbose = true
	cfg.LogFormat = config.LogJSON
	var buf bytes.Buffer
	log := New(&cfg, &buf)

	require.Equal(t, logrus.DebugLevel, log.GetLevel())
	log.WithField("path", "a.png").Debug("decoded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "decoded", entry["msg"])
	require.Equal(t, "a.png", entry["path"])
	require.Equal(t, "debug", entry["level"])
}
