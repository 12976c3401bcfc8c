// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ConfigData is the canonical configuration state: a mapping from key to a
// JSON-representable value (see [ValueKind]).
type ConfigData = map[string]any

// ValueKind classifies a configuration value. Every value held by the
// engine belongs to exactly one kind.
type ValueKind int

const (
	// KindInvalid marks a value that is not JSON-representable.
	KindInvalid ValueKind = iota
	// KindNull is the JSON null (Go nil).
	KindNull
	// KindString is a Go string.
	KindString
	// KindNumber is a Go float64.
	KindNumber
	// KindBool is a Go bool.
	KindBool
	// KindObject is a map[string]any.
	KindObject
	// KindArray is a []any.
	KindArray
)

// String returns the JSON-Schema type name of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// ErrUnsupportedValue is returned by [Normalize] for values that cannot be
// represented as JSON.
var ErrUnsupportedValue = errors.New("value is not JSON-representable")

// KindOf reports the kind of an already normalized value.
func KindOf(v any) ValueKind {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case float64:
		return KindNumber
	case bool:
		return KindBool
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	default:
		return KindInvalid
	}
}

// Normalize converts arbitrary Go input into the closed set of value kinds.
// Integers and other numeric types become float64, typed maps and slices
// become map[string]any and []any. The result never shares mutable state
// with the input.
//
// Values that are neither a known kind nor convertible through
// encoding/json return ErrUnsupportedValue.
func Normalize(v any) (any, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case string:
		return value, nil
	case bool:
		return value, nil
	case float64:
		return value, nil
	case float32:
		return float64(value), nil
	case int:
		return float64(value), nil
	case int8:
		return float64(value), nil
	case int16:
		return float64(value), nil
	case int32:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case uint:
		return float64(value), nil
	case uint8:
		return float64(value), nil
	case uint16:
		return float64(value), nil
	case uint32:
		return float64(value), nil
	case uint64:
		return float64(value), nil
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		return f, nil
	case map[string]any:
		out := make(map[string]any, len(value))
		for key, item := range value {
			n, err := Normalize(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out[key] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			n, err := Normalize(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	}

	return normalizeReflect(v)
}

// normalizeReflect handles typed maps, slices and structs by going through
// encoding/json, which already knows how to project them onto JSON kinds.
func normalizeReflect(v any) (any, error) {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}

	var out any
	if err = json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return out, nil
}

// NormalizeData normalizes every value of data and returns a new map.
func NormalizeData(data map[string]any) (ConfigData, error) {
	if data == nil {
		return ConfigData{}, nil
	}
	n, err := Normalize(data)
	if err != nil {
		return nil, err
	}
	return n.(map[string]any), nil
}

// CloneValue returns a deep copy of a normalized value. Objects and arrays
// are copied recursively; scalars are returned as-is.
func CloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return CloneData(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return value
	}
}

// CloneData returns a deep copy of data. A nil map yields an empty map.
func CloneData(data map[string]any) ConfigData {
	out := make(ConfigData, len(data))
	for key, value := range data {
		out[key] = CloneValue(value)
	}
	return out
}
