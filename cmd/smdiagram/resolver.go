package main

import (
	"github.com/rs/zerolog"

	"smdiagram/internal/config"
	"smdiagram/internal/definition"
)

// newResolver chains the definitions directory and, when enabled, the core
// type fallback behind one LRU cache.
func newResolver(cfg *config.Config, log zerolog.Logger) (definition.Resolver, error) {
	var chain []definition.Resolver

	if cfg.Definitions != "" {
		reg, err := definition.LoadDir(cfg.Definitions, log)
		if err != nil {
			return nil, err
		}

		log.Debug().Str("dir", cfg.Definitions).Int("definitions", reg.Len()).Msg("Loaded structure definitions")

		chain = append(chain, reg)
	}

	if cfg.CoreFallback {
		chain = append(chain, definition.CoreResolver{})
	}

	return definition.Cached(definition.Chain(chain...), cfg.CacheSize)
}
