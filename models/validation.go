// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// SchemaError is one structured error descriptor produced by a schema
// validator.
type SchemaError struct {
	// Field is the dotted path of the offending property ("(root)" for the
	// document itself).
	Field string `json:"field"`

	// Type is the validator's error type, e.g. "required" or "invalid_type".
	Type string `json:"type"`

	// Description is a human-readable message.
	Description string `json:"description"`

	// Value is the rejected value, if any.
	Value any `json:"value,omitempty"`
}

// Error implements the error interface.
func (e SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// ValidationResult is the outcome of validating one candidate object.
type ValidationResult struct {
	Valid  bool
	Errors []SchemaError
}

// ValidateFunc validates data against a compiled schema.
//
// Implementations may modify data in place: injecting schema defaults,
// coercing scalar types and dropping properties the schema forbids. Callers
// must pass a candidate they own, never committed state.
type ValidateFunc func(data ConfigData) ValidationResult
