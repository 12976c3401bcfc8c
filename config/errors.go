// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/MKhiriev/go-layered-config/models"
)

// Error kinds returned by the engine. Match them with errors.Is.
var (
	// ErrStartup indicates that initialization could not complete: the schema
	// file is missing or malformed, a source file holds invalid JSON, or the
	// first merged candidate failed validation.
	ErrStartup = errors.New("configuration startup failed")
	// ErrValidation indicates that a candidate did not pass schema validation.
	ErrValidation = errors.New("configuration validation failed")
	// ErrLifecycle indicates misuse of the engine: data access before
	// initialization, a second Init call or options passed to an already
	// constructed singleton.
	ErrLifecycle = errors.New("configuration lifecycle violation")
	// ErrRuntimeRestriction indicates a mutation after initialization outside
	// the environments listed in Options.AllowRuntimeChangesInEnv.
	ErrRuntimeRestriction = errors.New("runtime configuration changes are not allowed")
	// ErrNotFound indicates that Get was called for an absent key while
	// Options.ThrowOnError is set.
	ErrNotFound = errors.New("configuration value not found")
)

// ConfigurationError is an engine error carrying context data.
type ConfigurationError struct {
	// Kind is one of the sentinel errors of this package.
	Kind error
	// Message describes the failure.
	Message string
	// Data holds context such as the offending key or environment name.
	Data map[string]any
}

func newConfigurationError(kind error, message string, data map[string]any) *ConfigurationError {
	return &ConfigurationError{Kind: kind, Message: message, Data: data}
}

// Error renders the message followed by the JSON encoded context data.
func (e *ConfigurationError) Error() string {
	if len(e.Data) == 0 {
		return e.Message
	}
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return e.Message
	}
	return e.Message + " " + string(raw)
}

// Unwrap returns the error kind.
func (e *ConfigurationError) Unwrap() error {
	return e.Kind
}

// ValidationError lists the schema violations of a rejected candidate.
type ValidationError struct {
	Errors []models.SchemaError
}

// Error joins all schema violations.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, schemaErr := range e.Errors {
		parts = append(parts, schemaErr.Error())
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
