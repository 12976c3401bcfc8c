// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"sort"

	"github.com/MKhiriev/go-layered-config/internal/dotnotation"
	"github.com/MKhiriev/go-layered-config/internal/hierarchy"
	"github.com/MKhiriev/go-layered-config/models"
)

// Get returns a copy of the value stored at key.
//
// Keys address nested values with "." or, when dot notation is enabled, with
// the configured separator: "Nested.foo" and "Nested__foo" are equivalent.
// For an absent key Get returns Options.NotFoundValue, or an error wrapping
// ErrNotFound when Options.ThrowOnError is set.
func (e *Engine) Get(key string) (any, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if err := e.ready("get"); err != nil {
		return nil, err
	}

	value, ok := e.lookup(key)
	if !ok {
		return e.notFound(key)
	}
	return models.CloneValue(value), nil
}

// Has reports whether key is present. The error is only returned before
// initialization.
func (e *Engine) Has(key string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if err := e.ready("has"); err != nil {
		return false, err
	}

	_, ok := e.lookup(key)
	return ok, nil
}

// Update merges partial into the current configuration, or replaces the
// configuration with partial when WithReset is given, validates the result
// and commits it only when valid.
//
// It returns false when the candidate was rejected; the committed state is
// then unchanged and Errors describes the failure. With
// Options.ThrowOnError the rejection is also returned as a *ValidationError.
func (e *Engine) Update(partial map[string]any, opts ...UpdateOption) (bool, error) {
	var settings updateSettings
	for _, opt := range opts {
		opt(&settings)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mutable("update"); err != nil {
		return false, err
	}

	normalized, err := models.NormalizeData(partial)
	if err != nil {
		return e.reject(fmt.Errorf("%w: %w", ErrValidation, err))
	}

	expanded := e.expand(normalized)
	if settings.reset {
		return e.commit(expanded)
	}
	return e.commit(hierarchy.MergeData(e.data, expanded))
}

// Set stores value at key. It is a shorthand for Update({key: value}).
func (e *Engine) Set(key string, value any) (bool, error) {
	return e.Update(map[string]any{key: value})
}

// Reset replaces the whole configuration with data.
func (e *Engine) Reset(data map[string]any) (bool, error) {
	return e.Update(data, WithReset())
}

// Remove deletes keys from the configuration and validates the remainder.
// Removing a key the schema requires is rejected as a whole; no key is
// removed then.
func (e *Engine) Remove(keys ...string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mutable("remove"); err != nil {
		return false, err
	}

	candidate := models.CloneData(e.data)
	for _, key := range keys {
		if _, ok := candidate[key]; ok {
			delete(candidate, key)
			continue
		}
		dotnotation.Delete(candidate, e.path(key))
	}
	return e.commit(candidate)
}

// ToObject returns a copy of the configuration. Secret values are masked
// unless ExportOptions.PlainSecrets is set.
func (e *Engine) ToObject(opts ...ExportOptions) (map[string]any, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if err := e.ready("toObject"); err != nil {
		return nil, err
	}
	return e.export(e.data, mergeExportOptions(opts)), nil
}

// Errors returns the schema errors of the most recent validation followed by
// the engine errors of the most recent update, or nil if there are none.
func (e *Engine) Errors() []error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.schemaErrors) == 0 && len(e.updateErrors) == 0 {
		return nil
	}

	out := make([]error, 0, len(e.schemaErrors)+len(e.updateErrors))
	for _, schemaErr := range e.schemaErrors {
		out = append(out, schemaErr)
	}
	return append(out, e.updateErrors...)
}

func (e *Engine) commit(candidate models.ConfigData) (bool, error) {
	e.updateErrors = nil

	result := e.validate(candidate)
	e.schemaErrors = result.Errors
	if !result.Valid {
		e.log.Warn().Int("errors", len(result.Errors)).Msg("configuration update rejected")
		if e.opts.ThrowOnError {
			return false, &ValidationError{Errors: result.Errors}
		}
		return false, nil
	}

	e.data = candidate
	return true, nil
}

func (e *Engine) reject(err error) (bool, error) {
	e.schemaErrors = nil
	e.updateErrors = []error{err}
	e.log.Warn().Err(err).Msg("configuration update rejected")

	if e.opts.ThrowOnError {
		return false, err
	}
	return false, nil
}

func (e *Engine) ready(operation string) error {
	if e.state == models.InitFinished {
		return nil
	}
	return newConfigurationError(ErrLifecycle, "configuration is not initialized", map[string]any{
		"operation": operation,
		"state":     e.state.String(),
	})
}

func (e *Engine) mutable(operation string) error {
	if err := e.ready(operation); err != nil {
		return err
	}
	if slices.Contains(e.opts.AllowRuntimeChangesInEnv, e.environment) {
		return nil
	}
	return newConfigurationError(ErrRuntimeRestriction, "configuration changes are not allowed in this environment", map[string]any{
		"operation":   operation,
		"environment": e.environment,
		"allowed":     e.opts.AllowRuntimeChangesInEnv,
	})
}

func (e *Engine) notFound(key string) (any, error) {
	e.log.Warn().Str("key", key).Msg("configuration value not found")
	if e.opts.ThrowOnError {
		return nil, newConfigurationError(ErrNotFound, "could not fetch any value", map[string]any{"key": key})
	}
	return models.CloneValue(e.opts.NotFoundValue), nil
}

// lookup prefers a literal top-level key over a path.
func (e *Engine) lookup(key string) (any, bool) {
	if value, ok := e.data[key]; ok {
		return value, true
	}
	return dotnotation.Lookup(e.data, e.path(key))
}

func (e *Engine) path(key string) []string {
	if e.opts.UseDotNotation {
		return dotnotation.Split(key, e.opts.DotNotationSeparator, ".")
	}
	return dotnotation.Split(key, ".")
}

// expand turns path keys of an update payload into nested objects. Keys are
// applied in sorted order so that "A" is assigned before "A.B".
func (e *Engine) expand(data models.ConfigData) models.ConfigData {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(models.ConfigData, len(data))
	for _, key := range keys {
		dotnotation.Assign(out, e.path(key), data[key])
	}
	return out
}

func (e *Engine) export(data models.ConfigData, opts ExportOptions) map[string]any {
	out := models.CloneData(data)
	if !opts.PlainSecrets {
		out = e.cleaner.FilterSecretValues(out)
	}
	if opts.DotNotation {
		out = dotnotation.Flatten(out, e.exportSeparator())
	}
	return out
}

// exportSeparator joins flattened keys so that they read back through Get.
func (e *Engine) exportSeparator() string {
	if e.opts.UseDotNotation {
		return e.opts.DotNotationSeparator
	}
	return "."
}
