// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package secrets masks sensitive configuration values before they are
// displayed or exported.
//
// A value is sensitive when it is a string and its key matches one of the
// configured patterns. Sensitive values are replaced with a placeholder of the
// form "<secret#HASH>", where HASH is the base64-encoded SHA-256 digest of the
// original value. Equal secrets produce equal placeholders, so two exports can
// be compared without revealing the values themselves.
package secrets

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	placeholderPrefix = "<secret#"
	placeholderSuffix = ">"
)

// ErrNoMatches is returned by NewCleaner when no patterns are given.
var ErrNoMatches = errors.New("matches should contain a non empty list of expressions")

// placeholderPattern matches values that already went through the cleaner.
var placeholderPattern = regexp.MustCompile(`^<secret#[A-Za-z0-9+/]{43}=>$`)

// Cleaner replaces secret values in configuration objects.
type Cleaner struct {
	matches []*regexp.Regexp
}

// NewCleaner compiles patterns into case-insensitive regular expressions.
//
// Returns ErrNoMatches for an empty pattern list and a wrapped regexp error
// for an invalid expression.
func NewCleaner(patterns []string) (*Cleaner, error) {
	if len(patterns) == 0 {
		return nil, ErrNoMatches
	}

	matches := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		expr, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid secret match %q: %w", pattern, err)
		}
		matches = append(matches, expr)
	}

	return &Cleaner{matches: matches}, nil
}

// HashCode returns the base64-encoded SHA-256 digest of value.
// The result is always 44 printable characters.
func HashCode(value string) string {
	sum := sha256.Sum256([]byte(value))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Placeholder returns the masked representation of value.
func Placeholder(value string) string {
	return placeholderPrefix + HashCode(value) + placeholderSuffix
}

// IsPlaceholder reports whether value is already a masked secret.
func IsPlaceholder(value string) bool {
	return strings.HasPrefix(value, placeholderPrefix) && placeholderPattern.MatchString(value)
}

// IsSecretKey reports whether key matches any of the cleaner's patterns.
func (c *Cleaner) IsSecretKey(key string) bool {
	for _, expr := range c.matches {
		if expr.MatchString(key) {
			return true
		}
	}
	return false
}

// FilterSecretValues returns a deep copy of data in which every string value
// stored under a secret key is replaced by its placeholder. Nested objects
// and objects inside arrays are filtered recursively. data is not modified.
//
// Values that already are placeholders are kept, so filtering twice yields
// the same result as filtering once.
func (c *Cleaner) FilterSecretValues(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}

	out := make(map[string]any, len(data))
	for key, value := range data {
		switch v := value.(type) {
		case string:
			if c.IsSecretKey(key) && !IsPlaceholder(v) {
				out[key] = Placeholder(v)
				continue
			}
			out[key] = v
		default:
			out[key] = c.filterValue(v)
		}
	}
	return out
}

func (c *Cleaner) filterValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return c.FilterSecretValues(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = c.filterValue(item)
		}
		return out
	default:
		return v
	}
}
