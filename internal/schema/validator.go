// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package schema compiles JSON-Schema documents into validation functions
// used by the configuration engine.
//
// Validation is delegated to gojsonschema, which covers drafts 4 to 7
// including conditional subschemas (if/then/else, dependencies). Before a
// document is validated, the compiled function prepares it in place:
//
//   - RemoveAdditional drops properties not declared by an object schema
//     that sets "additionalProperties": false;
//   - UseDefaults injects "default" values for missing properties;
//   - CoerceTypes converts scalars to the declared type where the
//     conversion is lossless ("4.5" to 4.5, false to "false", "true" to true).
//
// The preparation step mutates the object passed to the function. Callers
// validate a candidate copy and commit it only when the result is valid.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-layered-config/models"
	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidSchema is returned by Compile when the schema document cannot be
// parsed or compiled.
var ErrInvalidSchema = errors.New("invalid schema")

// Options selects the preparation steps applied before validation.
type Options struct {
	UseDefaults      bool
	CoerceTypes      bool
	RemoveAdditional bool
}

// DefaultOptions enables every preparation step.
func DefaultOptions() Options {
	return Options{
		UseDefaults:      true,
		CoerceTypes:      true,
		RemoveAdditional: true,
	}
}

// JSONSchemaValidator compiles schemas with gojsonschema.
type JSONSchemaValidator struct {
	opts Options
}

// NewJSONSchemaValidator returns a validator applying opts.
func NewJSONSchemaValidator(opts Options) *JSONSchemaValidator {
	registerFormats()
	return &JSONSchemaValidator{opts: opts}
}

// Compile parses raw and returns a function validating data against it.
func (v *JSONSchemaValidator) Compile(raw []byte) (models.ValidateFunc, error) {
	var node map[string]any
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	p := preparer{opts: v.opts}

	return func(data models.ConfigData) models.ValidationResult {
		p.object(node, data)

		result, err := compiled.Validate(gojsonschema.NewGoLoader(data))
		if err != nil {
			return models.ValidationResult{
				Errors: []models.SchemaError{{
					Field:       rootField,
					Type:        "validator",
					Description: err.Error(),
				}},
			}
		}

		if result.Valid() {
			return models.ValidationResult{Valid: true}
		}

		return models.ValidationResult{Errors: convertErrors(result.Errors())}
	}, nil
}

const rootField = "(root)"

func convertErrors(errs []gojsonschema.ResultError) []models.SchemaError {
	out := make([]models.SchemaError, 0, len(errs))
	for _, e := range errs {
		field, value := e.Field(), e.Value()
		if property, ok := e.Details()["property"].(string); ok && e.Type() == "required" {
			if field == rootField || field == "" {
				field = property
			} else {
				field = field + "." + property
			}
			// the value of a required error is the whole parent object
			value = nil
		}

		out = append(out, models.SchemaError{
			Field:       field,
			Type:        e.Type(),
			Description: e.Description(),
			Value:       value,
		})
	}
	return out
}
