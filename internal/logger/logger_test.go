package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{
			name:   "default config",
			config: nil,
		},
		{
			name: "custom json config",
			config: &Config{
				Level:  "debug",
				Format: "json",
			},
		},
		{
			name: "console config",
			config: &Config{
				Level:  "info",
				Format: "console",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, New(tt.config))
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{
		Level:  "info",
		Format: "json",
		Output: buf,
	})

	log.Info("test message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "test message", entry["message"])
	assert.NotEmpty(t, entry["time"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{
		Level:  "warn",
		Format: "json",
		Output: buf,
	})

	log.Debug("dropped")
	log.Info("dropped too")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestLogger_WithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{
		Level:  "info",
		Format: "json",
		Output: buf,
	})

	child := log.With().
		Str("database", "app.db").
		Int("tables", 4).
		Logger()
	child.Info().Msg("extraction complete")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "app.db", entry["database"])
	assert.Equal(t, float64(4), entry["tables"])
	assert.Equal(t, "extraction complete", entry["message"])
}

func TestLogger_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{
		Level:  "error",
		Format: "json",
		Output: buf,
	})

	log.Error(assert.AnError, "describe failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, assert.AnError.Error(), entry["error"])
	assert.Equal(t, "describe failed", entry["message"])
}
