// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"
)

// Default option values.
const (
	DefaultConfigDir      = "config"
	DefaultSchemaFileName = "default.schema.json"
	DefaultFileEncoding   = "utf8"
	DefaultSeparator      = "__"
	DefaultEnvName        = "development"
	DefaultEnvSelector    = "APP_ENV"
	TestEnvName           = "test"
)

// DefaultSecretMatches are the key patterns masked by default.
var DefaultSecretMatches = []string{"SECRET", "KEY", "SALT", "PASSWORD"}

// Options configures an Engine. Start from DefaultOptions and override the
// fields you need: boolean fields are taken literally, empty strings and nil
// slices fall back to their defaults.
type Options struct {
	// BaseDir is the directory ConfigDir and EnvDir are resolved against.
	BaseDir string

	// ConfigDir holds the schema, default.json and the environment files.
	ConfigDir string

	// EnvDir holds the .env file. Empty means BaseDir.
	EnvDir string

	// SchemaFileName is the schema file inside ConfigDir.
	SchemaFileName string

	// FileEncoding is the encoding label of all files.
	FileEncoding string

	// UseDotNotation decodes DotNotationSeparator-joined keys of the dotenv
	// and environment layers and of Update payloads into nested objects.
	UseDotNotation bool

	// DotNotationSeparator joins nested keys.
	DotNotationSeparator string

	// ThrowOnError makes Get fail with ErrNotFound for absent keys and
	// mutations return a *ValidationError for rejected candidates.
	ThrowOnError bool

	// NotFoundValue is returned by Get for absent keys unless ThrowOnError.
	NotFoundValue any

	// AllowRuntimeChangesInEnv lists the environment names in which the
	// configuration may change after initialization. Use an empty non-nil
	// slice to forbid changes everywhere.
	AllowRuntimeChangesInEnv []string

	// DefaultEnv is the environment name used when the first selector of
	// LoadFilesFromEnv is unset.
	DefaultEnv string

	// LoadFilesFromEnv lists environment variables whose values select
	// additional configuration files.
	LoadFilesFromEnv []string

	// PrintHierarchy logs every layer (with secrets masked) after Init.
	PrintHierarchy bool

	// SecretMatches are case-insensitive regular expressions selecting the
	// keys whose values are masked.
	SecretMatches []string

	// Logger overrides the default JSON logger.
	Logger *zerolog.Logger

	// Environment replaces the process environment snapshot.
	Environment map[string]string

	// Reader replaces the file system reader.
	Reader FileReader

	// Validator replaces the JSON-Schema compiler.
	Validator SchemaCompiler
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ConfigDir:                DefaultConfigDir,
		SchemaFileName:           DefaultSchemaFileName,
		FileEncoding:             DefaultFileEncoding,
		UseDotNotation:           true,
		DotNotationSeparator:     DefaultSeparator,
		ThrowOnError:             true,
		AllowRuntimeChangesInEnv: []string{TestEnvName},
		DefaultEnv:               DefaultEnvName,
		LoadFilesFromEnv:         []string{DefaultEnvSelector},
		SecretMatches:            slices.Clone(DefaultSecretMatches),
	}
}

// withDefaults fills empty fields and detaches slices from the caller.
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()

	if o.ConfigDir == "" {
		o.ConfigDir = defaults.ConfigDir
	}
	if o.SchemaFileName == "" {
		o.SchemaFileName = defaults.SchemaFileName
	}
	if o.FileEncoding == "" {
		o.FileEncoding = defaults.FileEncoding
	}
	if o.DotNotationSeparator == "" {
		o.DotNotationSeparator = defaults.DotNotationSeparator
	}
	if o.DefaultEnv == "" {
		o.DefaultEnv = defaults.DefaultEnv
	}

	if o.AllowRuntimeChangesInEnv == nil {
		o.AllowRuntimeChangesInEnv = defaults.AllowRuntimeChangesInEnv
	} else {
		o.AllowRuntimeChangesInEnv = slices.Clone(o.AllowRuntimeChangesInEnv)
	}
	if o.LoadFilesFromEnv == nil {
		o.LoadFilesFromEnv = defaults.LoadFilesFromEnv
	} else {
		o.LoadFilesFromEnv = slices.Clone(o.LoadFilesFromEnv)
	}
	if o.SecretMatches == nil {
		o.SecretMatches = defaults.SecretMatches
	} else {
		o.SecretMatches = slices.Clone(o.SecretMatches)
	}

	return o
}

func (o Options) configPath() string {
	return filepath.Join(o.BaseDir, o.ConfigDir)
}

func (o Options) schemaPath() string {
	return filepath.Join(o.configPath(), o.SchemaFileName)
}

func (o Options) envPath() string {
	if dir := filepath.Join(o.BaseDir, o.EnvDir); dir != "" {
		return dir
	}
	return "."
}

// ExportOptions controls how ToObject, Hierarchy and PrintHierarchy render
// data.
type ExportOptions struct {
	// PlainSecrets disables masking of secret values.
	PlainSecrets bool

	// DotNotation flattens nested objects into keys joined with
	// Options.DotNotationSeparator, or with "." when UseDotNotation is off.
	DotNotation bool
}

func mergeExportOptions(opts []ExportOptions) ExportOptions {
	var out ExportOptions
	for _, opt := range opts {
		out.PlainSecrets = out.PlainSecrets || opt.PlainSecrets
		out.DotNotation = out.DotNotation || opt.DotNotation
	}
	return out
}

// UpdateOption modifies the behavior of Update.
type UpdateOption func(*updateSettings)

type updateSettings struct {
	reset bool
}

// WithReset makes Update replace the whole configuration instead of merging
// the partial object into it.
func WithReset() UpdateOption {
	return func(s *updateSettings) {
		s.reset = true
	}
}
