// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"dario.cat/mergo"
	"github.com/MKhiriev/go-layered-config/internal/hierarchy"
	"github.com/caarlos0/env/v11"
)

const (
	// OptionsFileName is the project options file looked up in the working
	// directory by LoadOptions.
	OptionsFileName = "config-options.json"
	// OptionsFileEnv overrides the location of the project options file.
	OptionsFileEnv = "CONFIG_OPTIONS_FILE"
	// OptionsEnvPrefix prefixes the environment variables read by LoadOptions.
	OptionsEnvPrefix = "CONFIG_"
)

// optionsLayer is one source of loader options. Nil fields are unset so that
// later layers override only what they define.
type optionsLayer struct {
	BaseDir                  *string  `json:"baseDir" env:"BASE_DIR"`
	ConfigDir                *string  `json:"configDir" env:"CONFIG_DIR"`
	EnvDir                   *string  `json:"envDir" env:"ENV_DIR"`
	SchemaFileName           *string  `json:"schemaFileName" env:"SCHEMA_FILE_NAME"`
	FileEncoding             *string  `json:"fileEncoding" env:"FILE_ENCODING"`
	UseDotNotation           *bool    `json:"useDotNotation" env:"USE_DOT_NOTATION"`
	DotNotationSeparator     *string  `json:"dotNotationSeparator" env:"DOT_NOTATION_SEPARATOR"`
	ThrowOnError             *bool    `json:"throwOnError" env:"THROW_ON_ERROR"`
	AllowRuntimeChangesInEnv []string `json:"allowRuntimeChangesInEnv" env:"ALLOW_RUNTIME_CHANGES_IN_ENV"`
	DefaultEnv               *string  `json:"defaultEnv" env:"DEFAULT_ENV"`
	LoadFilesFromEnv         []string `json:"loadFilesFromEnv" env:"LOAD_FILES_FROM_ENV"`
	PrintHierarchy           *bool    `json:"printHierarchy" env:"PRINT_HIERARCHY"`
	SecretMatches            []string `json:"secretMatches" env:"SECRET_MATCHES"`
}

// LoadOptions assembles loader options from, in increasing priority:
//  1. DefaultOptions
//  2. the JSON project options file (config-options.json in the working
//     directory, or the path in CONFIG_OPTIONS_FILE)
//  3. CONFIG_* environment variables, e.g. CONFIG_BASE_DIR or
//     CONFIG_SECRET_MATCHES=TOKEN,PASSWORD
//
// A missing default options file is ignored; a missing file named by
// CONFIG_OPTIONS_FILE is an error.
func LoadOptions() (Options, error) {
	return loadOptions(env.ToMap(os.Environ()), hierarchy.OSReader{})
}

func loadOptions(environment map[string]string, reader FileReader) (Options, error) {
	return newOptionsBuilder(environment, reader).
		withFile().
		withEnv().
		build()
}

type optionsBuilder struct {
	environment map[string]string
	reader      FileReader
	layers      []*optionsLayer
	err         error
}

func newOptionsBuilder(environment map[string]string, reader FileReader) *optionsBuilder {
	return &optionsBuilder{
		environment: environment,
		reader:      reader,
		layers:      make([]*optionsLayer, 0, 2),
	}
}

func (b *optionsBuilder) build() (Options, error) {
	if b.err != nil {
		return Options{}, fmt.Errorf("error occurred during building options: %w", b.err)
	}

	merged := new(optionsLayer)
	for _, layer := range b.layers {
		if err := mergo.Merge(merged, layer, mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return Options{}, fmt.Errorf("error merging options: %w", err)
		}
		merged.overrideLists(layer)
	}

	return merged.apply(DefaultOptions()), nil
}

func (b *optionsBuilder) withFile() *optionsBuilder {
	path, explicit := b.environment[OptionsFileEnv]
	if !explicit || path == "" {
		path, explicit = OptionsFileName, false
	}

	raw, err := b.reader.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return b
	}
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error reading options file: %w", err))
		return b
	}

	layer := new(optionsLayer)
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(layer); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error decoding options file %q: %w", path, err))
		return b
	}

	b.layers = append(b.layers, layer)
	return b
}

func (b *optionsBuilder) withEnv() *optionsBuilder {
	layer := new(optionsLayer)
	err := env.ParseWithOptions(layer, env.Options{
		Prefix:      OptionsEnvPrefix,
		Environment: b.environment,
	})
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error getting env options: %w", err))
		return b
	}

	b.layers = append(b.layers, layer)
	return b
}

// overrideLists copies every non-nil list of src into l. mergo skips empty
// slices, but an empty list is a valid setting.
func (l *optionsLayer) overrideLists(src *optionsLayer) {
	if src.AllowRuntimeChangesInEnv != nil {
		l.AllowRuntimeChangesInEnv = src.AllowRuntimeChangesInEnv
	}
	if src.LoadFilesFromEnv != nil {
		l.LoadFilesFromEnv = src.LoadFilesFromEnv
	}
	if src.SecretMatches != nil {
		l.SecretMatches = src.SecretMatches
	}
}

// apply overrides opts with every field set in l.
func (l *optionsLayer) apply(opts Options) Options {
	setString(&opts.BaseDir, l.BaseDir)
	setString(&opts.ConfigDir, l.ConfigDir)
	setString(&opts.EnvDir, l.EnvDir)
	setString(&opts.SchemaFileName, l.SchemaFileName)
	setString(&opts.FileEncoding, l.FileEncoding)
	setString(&opts.DotNotationSeparator, l.DotNotationSeparator)
	setString(&opts.DefaultEnv, l.DefaultEnv)

	setBool(&opts.UseDotNotation, l.UseDotNotation)
	setBool(&opts.ThrowOnError, l.ThrowOnError)
	setBool(&opts.PrintHierarchy, l.PrintHierarchy)

	if l.AllowRuntimeChangesInEnv != nil {
		opts.AllowRuntimeChangesInEnv = l.AllowRuntimeChangesInEnv
	}
	if l.LoadFilesFromEnv != nil {
		opts.LoadFilesFromEnv = l.LoadFilesFromEnv
	}
	if l.SecretMatches != nil {
		opts.SecretMatches = l.SecretMatches
	}

	return opts
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
