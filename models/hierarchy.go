// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SourceKind identifies where a hierarchy layer came from.
type SourceKind int

const (
	// SourceFile is a JSON file read from the configuration directory.
	SourceFile SourceKind = iota + 1
	// SourceDotEnv is the parsed payload of a .env file.
	SourceDotEnv
	// SourceEnv is the process environment snapshot.
	SourceEnv
)

// String returns a human-readable label used in logs and hierarchy output.
func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceDotEnv:
		return "dotenv"
	case SourceEnv:
		return "env"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by its label so hierarchy dumps stay readable.
func (k SourceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// HierarchyEntry is a single layer contributing to the merged configuration.
// Entries are recorded in application order; merging them left to right with
// "last wins" reproduces the merged candidate.
type HierarchyEntry struct {
	// Kind is the source type of the layer.
	Kind SourceKind `json:"kind"`

	// Meta carries additional location information, e.g. the file path for
	// SourceFile and SourceDotEnv layers. Empty for SourceEnv.
	Meta string `json:"meta,omitempty"`

	// Data is the configuration contributed by this layer.
	Data ConfigData `json:"data"`
}

// Clone returns a deep copy of the entry.
func (e HierarchyEntry) Clone() HierarchyEntry {
	return HierarchyEntry{
		Kind: e.Kind,
		Meta: e.Meta,
		Data: CloneData(e.Data),
	}
}

// ReadyState is the lifecycle gate of a configuration engine.
type ReadyState int

const (
	// Created is the state right after construction; no sources were read.
	Created ReadyState = iota
	// InitStarted is set while the first merge-validate-commit cycle runs
	// and kept if that cycle fails.
	InitStarted
	// InitFinished is reached after the first successful commit. Only in
	// this state data access is allowed.
	InitFinished
)

// String returns the state name.
func (s ReadyState) String() string {
	switch s {
	case Created:
		return "created"
	case InitStarted:
		return "init-started"
	case InitFinished:
		return "init-finished"
	default:
		return "unknown"
	}
}
