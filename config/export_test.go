// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// resetInstance drops the process-wide engine.
func resetInstance() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.engine = nil
}
