// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/MKhiriev/go-layered-config/internal/hierarchy"
	"github.com/MKhiriev/go-layered-config/internal/logger"
	"github.com/MKhiriev/go-layered-config/internal/schema"
	"github.com/MKhiriev/go-layered-config/internal/secrets"
	"github.com/MKhiriev/go-layered-config/models"
	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
)

// Engine owns a validated configuration object and the hierarchy of layers
// it was built from.
//
// An Engine is created with New, which performs no I/O, and becomes usable
// after a successful Init. The committed data is never mutated in place:
// every change is validated on a copy which replaces the committed object
// only when valid. All methods are safe for concurrent use.
type Engine struct {
	mu sync.RWMutex

	opts     Options
	log      *logger.Logger
	reader   FileReader
	compiler SchemaCompiler

	state       models.ReadyState
	validate    models.ValidateFunc
	cleaner     *secrets.Cleaner
	data        models.ConfigData
	entries     []models.HierarchyEntry
	environment string

	schemaErrors []models.SchemaError
	updateErrors []error
}

// New returns an engine in the Created state. No files are read until Init.
func New(opts Options) *Engine {
	opts = opts.withDefaults()

	log := logger.NewLogger("config")
	if opts.Logger != nil {
		log = logger.Wrap(opts.Logger)
	}

	reader := opts.Reader
	if reader == nil {
		reader = hierarchy.OSReader{}
	}
	compiler := opts.Validator
	if compiler == nil {
		compiler = schema.NewJSONSchemaValidator(schema.DefaultOptions())
	}

	return &Engine{
		opts:     opts,
		log:      log.WithInstance(newInstanceID()),
		reader:   reader,
		compiler: compiler,
		state:    models.Created,
		data:     models.ConfigData{},
	}
}

// Load creates and initializes an engine.
func Load(opts Options) (*Engine, error) {
	e := New(opts)
	if err := e.Init(); err != nil {
		return nil, err
	}
	return e, nil
}

// Init reads the schema and every configuration layer, validates the merged
// result and commits it. It may be called once.
//
// Errors wrap ErrStartup. A merged configuration rejected by the schema
// additionally wraps ErrValidation and a *ValidationError; the engine then
// stays in the InitStarted state and cannot be used.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != models.Created {
		return newConfigurationError(ErrLifecycle, "init may only be called once",
			map[string]any{"state": e.state.String()})
	}
	e.state = models.InitStarted
	e.log.Debug().Str("config_dir", e.opts.configPath()).Msg("initializing configuration")

	if err := e.compileSchema(); err != nil {
		return fmt.Errorf("%w: %w", ErrStartup, err)
	}

	cleaner, err := secrets.NewCleaner(e.opts.SecretMatches)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStartup, err)
	}
	e.cleaner = cleaner

	res, err := hierarchy.Build(e.sources())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStartup, err)
	}
	e.entries = res.Entries
	e.environment = res.Environment

	candidate := res.Merged
	result := e.validate(candidate)
	e.schemaErrors = result.Errors
	if !result.Valid {
		e.log.Error().
			Int("errors", len(result.Errors)).
			Str("environment", e.environment).
			Msg("merged configuration is invalid")
		return fmt.Errorf("%w: %w", ErrStartup, &ValidationError{Errors: result.Errors})
	}

	e.data = candidate
	e.state = models.InitFinished
	e.log.Debug().
		Str("environment", e.environment).
		Int("layers", len(e.entries)).
		Msg("configuration initialized")

	if e.opts.PrintHierarchy {
		e.printHierarchy(ExportOptions{})
	}
	return nil
}

// State returns the lifecycle state.
func (e *Engine) State() models.ReadyState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Environment returns the resolved environment name. It is empty before
// Init has read the layers.
func (e *Engine) Environment() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.environment
}

func (e *Engine) compileSchema() error {
	path := e.opts.schemaPath()
	raw, found, err := hierarchy.ReadFile(e.reader, path, e.opts.FileEncoding)
	if err != nil {
		return fmt.Errorf("error reading schema: %w", err)
	}
	if !found {
		return newConfigurationError(ErrStartup, "schema file not found", map[string]any{"path": path})
	}

	validate, err := e.compiler.Compile(raw)
	if err != nil {
		return fmt.Errorf("error compiling schema %q: %w", path, err)
	}
	if validate == nil {
		return errors.New("schema compiler returned no validation function")
	}
	e.validate = validate
	return nil
}

func (e *Engine) sources() hierarchy.Sources {
	environment := e.opts.Environment
	if environment == nil {
		environment = env.ToMap(os.Environ())
	}

	return hierarchy.Sources{
		ConfigDir:      e.opts.configPath(),
		EnvDir:         e.opts.envPath(),
		Encoding:       e.opts.FileEncoding,
		Selectors:      e.opts.LoadFilesFromEnv,
		DefaultEnv:     e.opts.DefaultEnv,
		UseDotNotation: e.opts.UseDotNotation,
		Separator:      e.opts.DotNotationSeparator,
		Environment:    environment,
		Reader:         e.reader,
		Logger:         e.log,
	}
}

func newInstanceID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
