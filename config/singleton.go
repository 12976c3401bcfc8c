// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "sync"

var registry struct {
	mu     sync.Mutex
	engine *Engine
}

// Instance returns the process-wide engine, creating and initializing it on
// first use. Without options the first call uses LoadOptions.
//
// A failed initialization is not cached, the next call tries again. Passing
// options once the engine exists fails with ErrLifecycle.
func Instance(opts ...Options) (*Engine, error) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if registry.engine != nil {
		if len(opts) > 0 {
			return nil, newConfigurationError(ErrLifecycle,
				"options can only be set before the configuration is first used", nil)
		}
		return registry.engine, nil
	}

	var (
		options Options
		err     error
	)
	if len(opts) > 0 {
		options = opts[0]
	} else if options, err = LoadOptions(); err != nil {
		return nil, err
	}

	engine, err := Load(options)
	if err != nil {
		return nil, err
	}
	registry.engine = engine
	return engine, nil
}

// MustInstance is like Instance without options but panics on error.
func MustInstance() *Engine {
	engine, err := Instance()
	if err != nil {
		panic(err)
	}
	return engine
}
