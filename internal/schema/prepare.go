// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"math"
	"regexp"
	"strconv"

	"github.com/MKhiriev/go-layered-config/models"
)

// preparer walks a schema node and the matching data side by side.
type preparer struct {
	opts Options
}

func (p preparer) object(node map[string]any, obj map[string]any) {
	if node == nil || obj == nil {
		return
	}

	props, _ := node["properties"].(map[string]any)

	if p.opts.RemoveAdditional {
		if allowed, ok := node["additionalProperties"].(bool); ok && !allowed {
			for key := range obj {
				if _, declared := props[key]; declared || matchesPatternProperty(node, key) {
					continue
				}
				delete(obj, key)
			}
		}
	}

	for key, raw := range props {
		propNode, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		value, present := obj[key]
		if !present {
			def, hasDefault := propNode["default"]
			if !p.opts.UseDefaults || !hasDefault {
				continue
			}
			value = models.CloneValue(def)
		}
		obj[key] = p.value(propNode, value)
	}

	if all, ok := node["allOf"].([]any); ok {
		for _, sub := range all {
			if subNode, ok := sub.(map[string]any); ok {
				p.object(subNode, obj)
			}
		}
	}
}

func (p preparer) value(node map[string]any, v any) any {
	if p.opts.CoerceTypes {
		v = coerce(declaredTypes(node), v)
	}

	switch value := v.(type) {
	case map[string]any:
		p.object(node, value)
	case []any:
		if items, ok := node["items"].(map[string]any); ok {
			for i := range value {
				value[i] = p.value(items, value[i])
			}
		}
	}
	return v
}

func matchesPatternProperty(node map[string]any, key string) bool {
	patterns, ok := node["patternProperties"].(map[string]any)
	if !ok {
		return false
	}
	for pattern := range patterns {
		if expr, err := regexp.Compile(pattern); err == nil && expr.MatchString(key) {
			return true
		}
	}
	return false
}

func declaredTypes(node map[string]any) []string {
	switch t := node["type"].(type) {
	case string:
		return []string{t}
	case []any:
		types := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				types = append(types, s)
			}
		}
		return types
	default:
		return nil
	}
}

// coerce converts v to the first declared type it can be losslessly
// converted to. Values that already match a declared type, objects and
// arrays are returned unchanged.
func coerce(types []string, v any) any {
	if len(types) == 0 {
		return v
	}
	for _, t := range types {
		if matchesType(t, v) {
			return v
		}
	}
	for _, t := range types {
		if converted, ok := coerceTo(t, v); ok {
			return converted
		}
	}
	return v
}

func matchesType(t string, v any) bool {
	switch t {
	case "integer":
		f, ok := v.(float64)
		return ok && f == math.Trunc(f) && !math.IsInf(f, 0)
	default:
		return models.KindOf(v).String() == t
	}
}

func coerceTo(t string, v any) (any, bool) {
	switch t {
	case "string":
		switch value := v.(type) {
		case float64:
			return strconv.FormatFloat(value, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(value), true
		case nil:
			return "", true
		}
	case "number", "integer":
		var f float64
		switch value := v.(type) {
		case string:
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
				return nil, false
			}
			f = parsed
		case bool:
			if value {
				f = 1
			}
		case nil:
		default:
			return nil, false
		}
		if t == "integer" && f != math.Trunc(f) {
			return nil, false
		}
		return f, true
	case "boolean":
		switch value := v.(type) {
		case string:
			switch value {
			case "true":
				return true, true
			case "false":
				return false, true
			}
		case float64:
			switch value {
			case 1:
				return true, true
			case 0:
				return false, true
			}
		case nil:
			return false, true
		}
	case "null":
		switch value := v.(type) {
		case string:
			if value == "" {
				return nil, true
			}
		case float64:
			if value == 0 {
				return nil, true
			}
		case bool:
			if !value {
				return nil, true
			}
		}
	}
	return nil, false
}
