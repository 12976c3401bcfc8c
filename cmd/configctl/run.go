// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-layered-config/config"
	"github.com/MKhiriev/go-layered-config/internal/logger"
	"github.com/MKhiriev/go-layered-config/models"
	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type cliFlags struct {
	baseDir     string
	configDir   string
	envDir      string
	schema      string
	encoding    string
	environment string
	plain       bool
	dot         bool
	verbose     bool
	version     bool
}

// parseFlags parses args into a flag set.
//
// Flags:
//
//	-base-dir directory ConfigDir and EnvDir are resolved against
//	-config-dir directory holding the schema and configuration files
//	-env-dir directory holding the .env file
//	-schema schema file name inside the configuration directory
//	-encoding encoding of all files (utf8, utf-16le, latin1, ...)
//	-env environment name, overrides the first selector variable
//	-plain print secrets in plain text
//	-dot print nested keys in dot notation
//	-v enable debug logging
//	-version print build information and exit
func parseFlags(args []string, stderr io.Writer) (*flag.FlagSet, *cliFlags, error) {
	fs := flag.NewFlagSet("configctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := new(cliFlags)
	fs.StringVar(&f.baseDir, "base-dir", "", "Base directory")
	fs.StringVar(&f.configDir, "config-dir", "", "Configuration directory")
	fs.StringVar(&f.envDir, "env-dir", "", "Dotenv directory")
	fs.StringVar(&f.schema, "schema", "", "Schema file name")
	fs.StringVar(&f.encoding, "encoding", "", "File encoding")
	fs.StringVar(&f.environment, "env", "", "Environment name")
	fs.BoolVar(&f.plain, "plain", false, "Print secrets in plain text")
	fs.BoolVar(&f.dot, "dot", false, "Print nested keys in dot notation")
	fs.BoolVar(&f.verbose, "v", false, "Enable debug logging")
	fs.BoolVar(&f.version, "version", false, "Print build information")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: configctl [flags] get <key> | object | hierarchy | validate")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return fs, f, nil
}

func run(args []string, info models.AppBuildInfo, stdout, stderr io.Writer) int {
	fs, f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if f.version {
		fmt.Fprintf(stdout, "configctl %s\n", info)
		return exitOK
	}

	level := zerolog.InfoLevel
	if f.verbose {
		level = zerolog.DebugLevel
	}
	log := logger.NewConsoleLogger("configctl", stderr, level)

	command := fs.Arg(0)
	if command == "" || (command == "get" && fs.NArg() < 2) {
		fs.Usage()
		return exitUsage
	}

	opts, err := config.LoadOptions()
	if err != nil {
		log.Error().Err(err).Msg("error loading options")
		return exitError
	}
	f.apply(fs, &opts)
	opts.Logger = &log.Logger
	opts.ThrowOnError = true

	engine, err := config.Load(opts)
	if err != nil {
		log.Error().Err(err).Msg("error loading configuration")
		var validationErr *config.ValidationError
		if errors.As(err, &validationErr) {
			for _, schemaErr := range validationErr.Errors {
				fmt.Fprintf(stderr, "  %s (%s)\n", schemaErr.Error(), schemaErr.Type)
			}
		}
		return exitError
	}

	export := config.ExportOptions{PlainSecrets: f.plain, DotNotation: f.dot}

	switch command {
	case "get":
		value, err := engine.Get(fs.Arg(1))
		if err != nil {
			log.Error().Err(err).Msg("error reading value")
			return exitError
		}
		return writeJSON(stdout, value, log)
	case "object":
		obj, err := engine.ToObject(export)
		if err != nil {
			log.Error().Err(err).Msg("error exporting configuration")
			return exitError
		}
		return writeJSON(stdout, obj, log)
	case "hierarchy":
		return writeJSON(stdout, engine.Hierarchy(export), log)
	case "validate":
		fmt.Fprintln(stdout, "configuration is valid")
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", command)
		fs.Usage()
		return exitUsage
	}
}

// apply overrides opts with the flags given on the command line.
func (f *cliFlags) apply(fs *flag.FlagSet, opts *config.Options) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "base-dir":
			opts.BaseDir = f.baseDir
		case "config-dir":
			opts.ConfigDir = f.configDir
		case "env-dir":
			opts.EnvDir = f.envDir
		case "schema":
			opts.SchemaFileName = f.schema
		case "encoding":
			opts.FileEncoding = f.encoding
		case "env":
			environment := env.ToMap(os.Environ())
			if len(opts.LoadFilesFromEnv) > 0 {
				environment[opts.LoadFilesFromEnv[0]] = f.environment
			}
			opts.Environment = environment
		}
	})
}

func writeJSON(w io.Writer, v any, log *logger.Logger) int {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("error encoding output")
		return exitError
	}
	fmt.Fprintln(w, string(raw))
	return exitOK
}
