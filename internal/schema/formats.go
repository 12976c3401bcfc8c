// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// FormatLowerCase accepts strings without upper case letters.
	FormatLowerCase = "lowercase"
	// FormatUpperCase accepts strings without lower case letters.
	FormatUpperCase = "uppercase"
)

var formatsOnce sync.Once

// registerFormats adds the custom string formats to gojsonschema's global
// checker registry.
func registerFormats() {
	formatsOnce.Do(func() {
		gojsonschema.FormatCheckers.Add(FormatLowerCase, lowerCaseChecker{})
		gojsonschema.FormatCheckers.Add(FormatUpperCase, upperCaseChecker{})
	})
}

type lowerCaseChecker struct{}

// IsFormat implements gojsonschema.FormatChecker. Non-string input passes.
func (lowerCaseChecker) IsFormat(input any) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	return s == strings.ToLower(s)
}

type upperCaseChecker struct{}

// IsFormat implements gojsonschema.FormatChecker. Non-string input passes.
func (upperCaseChecker) IsFormat(input any) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	return s == strings.ToUpper(s)
}
