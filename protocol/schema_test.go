package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandSchema_RunFile(t *testing.T) {
	data, err := CommandSchemaJSON(KindRunFile)
	require.NoError(t, err)

	var schema struct {
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties"`
		Required   []string       `json:"required"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Properties, "command")
	assert.Contains(t, schema.Properties, "file")
	assert.Contains(t, schema.Properties, "capture_main_locals")
	assert.Contains(t, schema.Required, "file")
}

func TestCommandSchema_UnknownKind(t *testing.T) {
	_, err := CommandSchema(Kind("reboot"))
	assert.Error(t, err)
}

func TestCommandSchemas_CoversAllKinds(t *testing.T) {
	schemas, err := CommandSchemas()
	require.NoError(t, err)
	assert.Len(t, schemas, len(Kinds()))
	for _, kind := range Kinds() {
		assert.Contains(t, schemas, kind)
	}
}
