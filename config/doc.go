// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads layered application configuration and validates it
// against a JSON-Schema document.
//
// Configuration is assembled from the following sources (later sources
// override keys of earlier ones, nested objects are merged):
//  1. <ConfigDir>/default.json
//  2. <ConfigDir>/<name>.json where name is the value of each variable in
//     Options.LoadFilesFromEnv (APP_ENV by default, falling back to
//     Options.DefaultEnv)
//  3. <EnvDir>/.env
//  4. the process environment
//
// The merged object is validated against <ConfigDir>/default.schema.json.
// Validation injects schema defaults, coerces scalar values to the declared
// types and drops properties forbidden by "additionalProperties": false.
//
// With dot notation enabled (the default) environment keys such as
// Nested__foo=bar become nested objects, readable as Get("Nested.foo").
//
// The main entry points are [Load] for an explicitly configured engine and
// [Instance] for the process-wide one.
package config
