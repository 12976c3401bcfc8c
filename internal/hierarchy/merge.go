// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package hierarchy

import "github.com/MKhiriev/go-layered-config/models"

// Merge deep-merges the data of entries from left to right.
func Merge(entries []models.HierarchyEntry) models.ConfigData {
	out := models.ConfigData{}
	for _, entry := range entries {
		mergeInto(out, entry.Data)
	}
	return out
}

// MergeData returns a new object holding src deep-merged over dst.
//
// Nested objects merge key by key; arrays, scalars and values whose kind
// differs between both sides are replaced by the src value. Neither input
// is modified and the result shares no mutable state with them.
func MergeData(dst, src models.ConfigData) models.ConfigData {
	out := models.CloneData(dst)
	mergeInto(out, src)
	return out
}

// mergeInto merges src into dst, which must be exclusively owned.
func mergeInto(dst, src map[string]any) {
	for key, value := range src {
		if srcObj, ok := value.(map[string]any); ok {
			if dstObj, ok := dst[key].(map[string]any); ok {
				mergeInto(dstObj, srcObj)
				continue
			}
		}
		dst[key] = models.CloneValue(value)
	}
}
