// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"

	"github.com/MKhiriev/go-layered-config/models"
)

// Hierarchy returns copies of the layers read during Init, in application
// order. Secret values are masked unless ExportOptions.PlainSecrets is set.
// Before Init it returns nil.
func (e *Engine) Hierarchy(opts ...ExportOptions) []models.HierarchyEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.hierarchy(mergeExportOptions(opts))
}

// PrintHierarchy logs every layer at info level.
func (e *Engine) PrintHierarchy(opts ...ExportOptions) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	e.printHierarchy(mergeExportOptions(opts))
}

func (e *Engine) hierarchy(opts ExportOptions) []models.HierarchyEntry {
	if len(e.entries) == 0 {
		return nil
	}

	out := make([]models.HierarchyEntry, 0, len(e.entries))
	for _, entry := range e.entries {
		clone := entry.Clone()
		if e.cleaner != nil {
			clone.Data = e.export(clone.Data, opts)
		}
		out = append(out, clone)
	}
	return out
}

func (e *Engine) printHierarchy(opts ExportOptions) {
	for i, entry := range e.hierarchy(opts) {
		raw, err := json.Marshal(entry.Data)
		if err != nil {
			e.log.Error().Err(err).Int("layer", i).Msg("error encoding configuration layer")
			continue
		}

		e.log.Info().
			Int("layer", i).
			Stringer("kind", entry.Kind).
			Str("meta", entry.Meta).
			RawJSON("data", raw).
			Msg("configuration layer")
	}
}
