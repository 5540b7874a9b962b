package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dropSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"seed_slug": {"type": "string", "minLength": 1},
		"weight": {"type": "number", "exclusiveMinimum": 0}
	},
	"required": ["seed_slug", "weight"]
}`

func TestSchemaValidator_ValidateFile(t *testing.T) {
	validator := NewSchemaValidator()
	tmpDir := t.TempDir()

	schemaPath := filepath.Join(tmpDir, "drop.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(dropSchema), 0644))

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{"valid data", `{"seed_slug": "tomato", "weight": 3}`, false, ""},
		{"missing required field", `{"weight": 1}`, true, "required"},
		{"wrong type for field", `{"seed_slug": "tomato", "weight": "heavy"}`, true, "weight"},
		{"constraint violation", `{"seed_slug": "tomato", "weight": 0}`, true, "weight"},
		{"invalid JSON", `{"seed_slug": }`, true, "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataPath := filepath.Join(tmpDir, "data.json")
			require.NoError(t, os.WriteFile(dataPath, []byte(tt.data), 0644))

			err := validator.ValidateFile(dataPath, schemaPath)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_RegisteredSchema(t *testing.T) {
	validator := NewSchemaValidator()
	id := "https://studygarden.local/schemas/drop.schema.json"
	require.NoError(t, validator.RegisterSchema(id, []byte(dropSchema)))

	assert.NoError(t, validator.ValidateBytes([]byte(`{"seed_slug": "basil", "weight": 0.5}`), id))
	assert.Error(t, validator.ValidateBytes([]byte(`{"seed_slug": ""}`), id))
}

func TestSchemaValidator_MissingSchemaFile(t *testing.T) {
	validator := NewSchemaValidator()

	err := validator.ValidateBytes([]byte(`{}`), "nonexistent.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestSchemaValidator_MissingDataFile(t *testing.T) {
	validator := NewSchemaValidator()

	err := validator.ValidateFile("nonexistent.json", "whatever.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}
