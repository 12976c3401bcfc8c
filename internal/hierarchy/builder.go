// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package hierarchy collects configuration layers in precedence order and
// merges them into a single candidate object.
//
// Layers are applied in the following order (later layers override earlier
// keys, nested objects are merged recursively):
//  1. default.json from the configuration directory
//  2. <name>.json for every environment selector variable, in order
//  3. the .env file from the env directory
//  4. the process environment snapshot
//
// Every layer is optional. Missing files are skipped; malformed JSON stops
// the build. The ordered list of layers is kept for introspection.
package hierarchy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-layered-config/internal/dotnotation"
	"github.com/MKhiriev/go-layered-config/internal/logger"
	"github.com/MKhiriev/go-layered-config/models"
	"github.com/joho/godotenv"
)

const (
	// DefaultFileName is the base name of the always-first configuration file.
	DefaultFileName = "default"
	// DotEnvFileName is the name of the dotenv file inside the env directory.
	DotEnvFileName = ".env"

	fileExtension = ".json"
)

// Sources describes where configuration layers are read from.
type Sources struct {
	// ConfigDir is the directory holding default.json and the
	// environment-selected files.
	ConfigDir string

	// EnvDir is the directory holding the .env file. Empty skips the dotenv
	// layer; config.Engine always passes a directory, BaseDir by default.
	EnvDir string

	// Encoding is the encoding label of all files; empty means UTF-8.
	Encoding string

	// Selectors are the environment variable names whose values select
	// additional files, e.g. APP_ENV=test selects test.json.
	Selectors []string

	// DefaultEnv is used when the first selector is unset.
	DefaultEnv string

	// UseDotNotation decodes separator-joined keys of the dotenv and
	// environment layers into nested objects.
	UseDotNotation bool

	// Separator joins nested keys in dot notation.
	Separator string

	// Environment is the process environment snapshot.
	Environment map[string]string

	// Reader reads files. Nil means OSReader.
	Reader FileReader

	// Logger receives debug and warning messages. Nil discards them.
	Logger *logger.Logger
}

// Result is the outcome of a successful build.
type Result struct {
	// Entries are the layers in application order.
	Entries []models.HierarchyEntry

	// Merged is the deep merge of all entries.
	Merged models.ConfigData

	// Environment is the resolved environment name (see ResolveEnvironment).
	Environment string
}

// Build reads every layer described by src and merges them.
func Build(src Sources) (*Result, error) {
	return newBuilder(src).
		readDotEnv().
		withDefaultFile().
		withEnvFiles().
		withDotEnv().
		withProcessEnv().
		build()
}

// ResolveEnvironment returns the value of the first selector in snapshot,
// or defaultEnv when it is unset or there are no selectors.
func ResolveEnvironment(selectors []string, defaultEnv string, snapshot map[string]string) string {
	if len(selectors) == 0 {
		return defaultEnv
	}
	if name := snapshot[selectors[0]]; name != "" {
		return name
	}
	return defaultEnv
}

type builder struct {
	src     Sources
	log     *logger.Logger
	entries []models.HierarchyEntry
	loaded  map[string]struct{}
	dotenv  map[string]string
	dotPath string
	err     error
}

func newBuilder(src Sources) *builder {
	if src.Reader == nil {
		src.Reader = OSReader{}
	}
	log := src.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &builder{
		src:     src,
		log:     log,
		entries: make([]models.HierarchyEntry, 0, 4),
		loaded:  make(map[string]struct{}),
	}
}

func (b *builder) build() (*Result, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building configuration hierarchy: %w", b.err)
	}

	return &Result{
		Entries:     b.entries,
		Merged:      Merge(b.entries),
		Environment: ResolveEnvironment(b.src.Selectors, b.src.DefaultEnv, b.snapshot()),
	}, nil
}

// readDotEnv parses the .env file up front because its values take part in
// selecting environment files. Its layer is appended later by withDotEnv.
func (b *builder) readDotEnv() *builder {
	if b.src.EnvDir == "" {
		return b
	}

	path := filepath.Join(b.src.EnvDir, DotEnvFileName)
	raw, found, err := ReadFile(b.src.Reader, path, b.src.Encoding)
	if err != nil {
		b.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable dotenv file")
		return b
	}
	if !found {
		b.log.Debug().Str("path", path).Msg("no dotenv file found")
		return b
	}

	payload, err := godotenv.Parse(bytes.NewReader(raw))
	if err != nil {
		b.log.Warn().Err(err).Str("path", path).Msg("skipping malformed dotenv file")
		return b
	}

	b.dotenv = payload
	b.dotPath = path
	return b
}

func (b *builder) withDefaultFile() *builder {
	b.loadFile(DefaultFileName)
	return b
}

func (b *builder) withEnvFiles() *builder {
	snapshot := b.snapshot()

	for i, selector := range b.src.Selectors {
		name := snapshot[selector]
		if name == "" && i == 0 {
			name = b.src.DefaultEnv
		}
		if name == "" {
			continue
		}

		if _, ok := b.loaded[name]; ok {
			b.log.Warn().
				Str("selector", selector).
				Str("file", name+fileExtension).
				Msg("configuration file already loaded, skipping")
			continue
		}
		b.loadFile(name)
	}
	return b
}

func (b *builder) withDotEnv() *builder {
	if b.dotenv == nil {
		return b
	}

	b.append(models.HierarchyEntry{
		Kind: models.SourceDotEnv,
		Meta: b.dotPath,
		Data: b.decodeFlat(b.dotenv),
	})
	return b
}

func (b *builder) withProcessEnv() *builder {
	b.append(models.HierarchyEntry{
		Kind: models.SourceEnv,
		Data: b.decodeFlat(b.src.Environment),
	})
	return b
}

func (b *builder) loadFile(name string) {
	b.loaded[name] = struct{}{}

	path := filepath.Join(b.src.ConfigDir, name+fileExtension)
	raw, found, err := ReadFile(b.src.Reader, path, b.src.Encoding)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return
	}
	if !found {
		b.log.Debug().Str("path", path).Msg("configuration file not found, skipping")
		return
	}

	var data map[string]any
	if err = json.Unmarshal(raw, &data); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error decoding json file %q: %w", path, err))
		return
	}
	if data == nil {
		data = map[string]any{}
	}

	b.append(models.HierarchyEntry{
		Kind: models.SourceFile,
		Meta: path,
		Data: data,
	})
}

func (b *builder) append(entry models.HierarchyEntry) {
	b.log.Debug().
		Stringer("kind", entry.Kind).
		Str("meta", entry.Meta).
		Int("keys", len(entry.Data)).
		Msg("configuration layer loaded")
	b.entries = append(b.entries, entry)
}

// snapshot merges the dotenv payload with the process environment, the
// latter taking precedence.
func (b *builder) snapshot() map[string]string {
	out := make(map[string]string, len(b.dotenv)+len(b.src.Environment))
	for key, value := range b.dotenv {
		out[key] = value
	}
	for key, value := range b.src.Environment {
		out[key] = value
	}
	return out
}

func (b *builder) decodeFlat(flat map[string]string) models.ConfigData {
	data := make(models.ConfigData, len(flat))
	for key, value := range flat {
		data[key] = value
	}
	if !b.src.UseDotNotation || b.src.Separator == "" {
		return data
	}
	return dotnotation.Unflatten(data, b.src.Separator)
}
