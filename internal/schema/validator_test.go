// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"testing"

	"github.com/MKhiriev/go-layered-config/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["Domain"],
	"properties": {
		"Domain":        { "type": "string" },
		"String":        { "type": "string" },
		"Number":        { "type": "number" },
		"Integer":       { "type": "integer" },
		"Boolean":       { "type": "boolean" },
		"Nullable":      { "type": ["null", "number"] },
		"DefaultSample": { "type": "string", "default": "defaultSample" },
		"Title":         { "type": "string", "format": "lowercase" },
		"Nested": {
			"type": "object",
			"properties": {
				"foo":  { "type": "string" },
				"port": { "type": "integer", "default": 8080 }
			},
			"default": {}
		},
		"Ports": { "type": "array", "items": { "type": "integer" } }
	}
}`

func compile(t *testing.T, raw string, opts Options) models.ValidateFunc {
	t.Helper()
	validate, err := NewJSONSchemaValidator(opts).Compile([]byte(raw))
	require.NoError(t, err)
	return validate
}

func TestCompile_InvalidSchema(t *testing.T) {
	v := NewJSONSchemaValidator(DefaultOptions())

	_, err := v.Compile([]byte(`{ not json`))
	assert.ErrorIs(t, err, ErrInvalidSchema)

	_, err = v.Compile([]byte(`{"type": 12}`))
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestValidate_Valid(t *testing.T) {
	validate := compile(t, sampleSchema, DefaultOptions())

	data := models.ConfigData{"Domain": "localhost", "Number": 1.3, "Integer": 4.0}
	result := validate(data)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidate_RequiredMissing(t *testing.T) {
	validate := compile(t, sampleSchema, DefaultOptions())

	result := validate(models.ConfigData{})

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Domain", result.Errors[0].Field)
	assert.Equal(t, "required", result.Errors[0].Type)
	assert.Nil(t, result.Errors[0].Value)
}

func TestValidate_InvalidTypes(t *testing.T) {
	validate := compile(t, sampleSchema, DefaultOptions())

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "number from text", key: "Number", value: "foo"},
		{name: "integer from fraction", key: "Integer", value: 1.3},
		{name: "boolean from text", key: "Boolean", value: "foo"},
		{name: "upper case title", key: "Title", value: "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validate(models.ConfigData{"Domain": "localhost", tt.key: tt.value})
			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.key, result.Errors[0].Field)
		})
	}
}

func TestValidate_Coercion(t *testing.T) {
	validate := compile(t, sampleSchema, DefaultOptions())

	data := models.ConfigData{
		"Domain":   "localhost",
		"String":   false,
		"Number":   "4.5",
		"Integer":  "42",
		"Boolean":  "true",
		"Nullable": "",
		"Ports":    []any{"80", 443.0},
	}
	result := validate(data)

	require.True(t, result.Valid, "%v", result.Errors)
	assert.Equal(t, "false", data["String"])
	assert.Equal(t, 4.5, data["Number"])
	assert.Equal(t, 42.0, data["Integer"])
	assert.Equal(t, true, data["Boolean"])
	assert.Nil(t, data["Nullable"])
	assert.Equal(t, []any{80.0, 443.0}, data["Ports"])
}

func TestValidate_CoercionDisabled(t *testing.T) {
	validate := compile(t, sampleSchema, Options{})

	result := validate(models.ConfigData{"Domain": "localhost", "Boolean": "true"})

	assert.False(t, result.Valid)
}

func TestValidate_Defaults(t *testing.T) {
	validate := compile(t, sampleSchema, DefaultOptions())

	data := models.ConfigData{"Domain": "localhost"}
	result := validate(data)

	require.True(t, result.Valid)
	assert.Equal(t, "defaultSample", data["DefaultSample"])
	assert.Equal(t, map[string]any{"port": 8080.0}, data["Nested"], "nested defaults apply inside injected defaults")
}

func TestValidate_DefaultsAreCopied(t *testing.T) {
	validate := compile(t, sampleSchema, DefaultOptions())

	first := models.ConfigData{"Domain": "a"}
	second := models.ConfigData{"Domain": "b"}
	validate(first)
	validate(second)

	first["Nested"].(map[string]any)["foo"] = "changed"
	assert.NotContains(t, second["Nested"], "foo")
}

func TestValidate_RemoveAdditional(t *testing.T) {
	validate := compile(t, sampleSchema, DefaultOptions())

	data := models.ConfigData{"Domain": "localhost", "HOME": "/root", "PATH": "/bin"}
	result := validate(data)

	require.True(t, result.Valid)
	assert.NotContains(t, data, "HOME")
	assert.NotContains(t, data, "PATH")
}

func TestValidate_AdditionalRejectedWhenNotRemoved(t *testing.T) {
	validate := compile(t, sampleSchema, Options{UseDefaults: true, CoerceTypes: true})

	result := validate(models.ConfigData{"Domain": "localhost", "HOME": "/root"})

	assert.False(t, result.Valid)
}

func TestValidate_PatternPropertiesKept(t *testing.T) {
	validate := compile(t, `{
		"type": "object",
		"additionalProperties": false,
		"patternProperties": { "^X_": { "type": "string" } }
	}`, DefaultOptions())

	data := models.ConfigData{"X_ONE": "1", "Y_TWO": "2"}
	result := validate(data)

	require.True(t, result.Valid)
	assert.Contains(t, data, "X_ONE")
	assert.NotContains(t, data, "Y_TWO")
}

func TestValidate_ConditionalDependency(t *testing.T) {
	validate := compile(t, `{
		"type": "object",
		"properties": {
			"FEATURE_FLAG":         { "type": "boolean", "default": false },
			"FEATURE_OPTION":       { "type": "string" },
			"OTHER_FEATURE_OPTION": { "type": "number", "default": 42 }
		},
		"if":   { "properties": { "FEATURE_FLAG": { "const": true } } },
		"then": { "required": ["FEATURE_OPTION"] }
	}`, DefaultOptions())

	off := models.ConfigData{}
	require.True(t, validate(off).Valid)
	assert.Equal(t, false, off["FEATURE_FLAG"])
	assert.Equal(t, 42.0, off["OTHER_FEATURE_OPTION"])

	assert.False(t, validate(models.ConfigData{"FEATURE_FLAG": true}).Valid)
	assert.True(t, validate(models.ConfigData{"FEATURE_FLAG": true, "FEATURE_OPTION": "http://example.tld"}).Valid)
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		in    any
		want  any
	}{
		{name: "no types", types: nil, in: "1", want: "1"},
		{name: "already matching", types: []string{"string"}, in: "1", want: "1"},
		{name: "number to string", types: []string{"string"}, in: 1.5, want: "1.5"},
		{name: "null to string", types: []string{"string"}, in: nil, want: ""},
		{name: "bool to number", types: []string{"number"}, in: true, want: 1.0},
		{name: "empty string stays", types: []string{"number"}, in: "", want: ""},
		{name: "nan string stays", types: []string{"number"}, in: "NaN", want: "NaN"},
		{name: "fraction not integer", types: []string{"integer"}, in: "1.5", want: "1.5"},
		{name: "one to bool", types: []string{"boolean"}, in: 1.0, want: true},
		{name: "two stays", types: []string{"boolean"}, in: 2.0, want: 2.0},
		{name: "false to null", types: []string{"null"}, in: false, want: nil},
		{name: "first convertible type wins", types: []string{"boolean", "number"}, in: "7", want: 7.0},
		{name: "object untouched", types: []string{"string"}, in: map[string]any{}, want: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerce(tt.types, tt.in))
		})
	}
}

func TestFormatCheckers(t *testing.T) {
	assert.True(t, lowerCaseChecker{}.IsFormat("abc"))
	assert.False(t, lowerCaseChecker{}.IsFormat("aBc"))
	assert.True(t, lowerCaseChecker{}.IsFormat(12))
	assert.True(t, upperCaseChecker{}.IsFormat("ABC"))
	assert.False(t, upperCaseChecker{}.IsFormat("AbC"))
}
