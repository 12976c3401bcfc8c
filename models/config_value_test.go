// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	type server struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}

	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: nil},
		{name: "int", in: 42, want: float64(42)},
		{name: "uint8", in: uint8(7), want: float64(7)},
		{name: "float32", in: float32(1.5), want: float64(1.5)},
		{name: "json number", in: json.Number("3.25"), want: 3.25},
		{name: "string slice", in: []string{"a", "b"}, want: []any{"a", "b"}},
		{name: "typed map", in: map[string]int{"a": 1}, want: map[string]any{"a": float64(1)}},
		{name: "struct", in: server{Host: "localhost", Port: 80}, want: map[string]any{"host": "localhost", "port": float64(80)}},
		{name: "nested", in: map[string]any{"list": []any{1, true}}, want: map[string]any{"list": []any{float64(1), true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Unsupported(t *testing.T) {
	for _, in := range []any{make(chan int), func() {}, complex(1, 2), map[string]any{"f": func() {}}} {
		_, err := Normalize(in)
		assert.ErrorIs(t, err, ErrUnsupportedValue)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNull, KindOf(nil))
	assert.Equal(t, KindString, KindOf("x"))
	assert.Equal(t, KindNumber, KindOf(1.0))
	assert.Equal(t, KindBool, KindOf(false))
	assert.Equal(t, KindObject, KindOf(map[string]any{}))
	assert.Equal(t, KindArray, KindOf([]any{}))
	assert.Equal(t, KindInvalid, KindOf(1))
	assert.Equal(t, "object", KindObject.String())
}

func TestCloneData(t *testing.T) {
	// Arrange
	src := map[string]any{"a": map[string]any{"b": []any{"c"}}}

	// Act
	out := CloneData(src)
	out["a"].(map[string]any)["b"].([]any)[0] = "changed"

	// Assert
	assert.Equal(t, "c", src["a"].(map[string]any)["b"].([]any)[0])
	assert.NotNil(t, CloneData(nil))
}

func TestNewAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.2.3", "", "")

	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "N/A", info.Date)
	assert.Equal(t, "version 1.2.3, commit N/A, built N/A", info.String())
}
