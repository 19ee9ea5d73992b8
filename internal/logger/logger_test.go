package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log = WithPet(WithAction(WithAccount(log, "0xabc"), "battle"), 7)
	log.Warn().Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "guiverse", entry["service"])
	assert.Equal(t, "0xabc", entry["account"])
	assert.Equal(t, "battle", entry["action"])
	assert.Equal(t, float64(7), entry["pet_id"])
	assert.Equal(t, "kept", entry["message"])
}

func TestNewWithWriterInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "loud")

	log.Debug().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Info().Msg("kept")
	assert.NotZero(t, buf.Len())
}
