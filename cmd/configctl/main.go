// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command configctl loads a layered configuration directory the same way an
// application using package config would and prints the result.
//
// Usage:
//
//	configctl [flags] get <key>
//	configctl [flags] object
//	configctl [flags] hierarchy
//	configctl [flags] validate
//
// Loader options are read from config-options.json and CONFIG_* environment
// variables first; flags override them.
package main

import (
	"os"

	"github.com/MKhiriev/go-layered-config/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	os.Exit(run(os.Args[1:], info, os.Stdout, os.Stderr))
}
