// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dotnotation converts between nested configuration objects and
// flat maps whose keys encode the path to a value, joined by a separator.
//
// Arrays are leaves: they are never descended into. Empty nested objects are
// kept as leaf values so that Unflatten(Flatten(x)) reproduces x.
//
// Prefix collisions are undefined behavior. When a flat map holds both "A"
// and "A.B", Unflatten processes keys in lexicographic order and the key
// processed last wins ("A.B" here, replacing the scalar at "A"). Keys of the
// nested input that already contain the separator cannot be told apart from
// nested paths after flattening either.
package dotnotation

import (
	"sort"
	"strings"
)

// Flatten returns a flat view of obj with nested keys joined by sep.
// obj is not modified.
func Flatten(obj map[string]any, sep string) map[string]any {
	out := make(map[string]any, len(obj))
	flattenInto(out, "", obj, sep)
	return out
}

func flattenInto(out map[string]any, prefix string, obj map[string]any, sep string) {
	for key, value := range obj {
		path := key
		if prefix != "" {
			path = prefix + sep + key
		}

		nested, ok := value.(map[string]any)
		if ok && len(nested) > 0 {
			flattenInto(out, path, nested, sep)
			continue
		}
		if ok {
			out[path] = map[string]any{}
			continue
		}
		out[path] = value
	}
}

// Unflatten rebuilds a nested object from a flat map by splitting every key
// on sep and creating intermediate objects as needed. flat is not modified;
// nested object values found in flat are merged rather than aliased.
func Unflatten(flat map[string]any, sep string) map[string]any {
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(flat))
	for _, key := range keys {
		Assign(out, Split(key, sep), copyValue(flat[key]))
	}
	return out
}

// Split breaks key into path segments on every given separator. Empty
// separators are ignored; empty segments are dropped.
func Split(key string, seps ...string) []string {
	parts := []string{key}
	for _, sep := range seps {
		if sep == "" {
			continue
		}
		next := make([]string, 0, len(parts))
		for _, part := range parts {
			next = append(next, strings.Split(part, sep)...)
		}
		parts = next
	}

	path := parts[:0]
	for _, part := range parts {
		if part != "" {
			path = append(path, part)
		}
	}
	return path
}

// Lookup returns the value at path inside obj.
func Lookup(obj map[string]any, path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}

	var current any = obj
	for _, segment := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Assign stores value at path inside obj, creating intermediate objects and
// replacing non-object values that sit on the path. An empty path is a no-op.
func Assign(obj map[string]any, path []string, value any) {
	if len(path) == 0 {
		return
	}

	node := obj
	for _, segment := range path[:len(path)-1] {
		next, ok := node[segment].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[segment] = next
		}
		node = next
	}
	node[path[len(path)-1]] = value
}

// Delete removes the value at path from obj and reports whether it existed.
// Intermediate objects are left in place even if they become empty.
func Delete(obj map[string]any, path []string) bool {
	if len(path) == 0 {
		return false
	}

	node := obj
	for _, segment := range path[:len(path)-1] {
		next, ok := node[segment].(map[string]any)
		if !ok {
			return false
		}
		node = next
	}

	last := path[len(path)-1]
	if _, ok := node[last]; !ok {
		return false
	}
	delete(node, last)
	return true
}

func copyValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for key, item := range value {
			out[key] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = copyValue(item)
		}
		return out
	default:
		return value
	}
}
