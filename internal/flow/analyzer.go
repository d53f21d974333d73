package flow

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"smdiagram/internal/definition"
	"smdiagram/internal/diagnostic"
	"smdiagram/internal/match"
	"smdiagram/internal/structuremap"
)

// Config holds configuration for the analysis.
type Config struct {
	// MaxSuggestions caps the names offered for an unresolved binding.
	MaxSuggestions int
	// MinSuggestionScore is the lowest similarity a suggested name may have.
	MinSuggestionScore float64
}

// DefaultConfig returns the default analysis configuration.
func DefaultConfig() Config {
	return Config{
		MaxSuggestions:     match.DefaultMaxSuggestions,
		MinSuggestionScore: match.DefaultMinScore,
	}
}

// Analyzer turns StructureMaps into flows.
// An Analyzer is not safe for concurrent use; create one per goroutine.
type Analyzer struct {
	resolver definition.Resolver
	config   Config
	log      zerolog.Logger

	// per-document state, reset by Analyze
	flow     *Flow
	literals int
}

// NewAnalyzer creates an Analyzer resolving structures through resolver.
func NewAnalyzer(resolver definition.Resolver, config Config, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		resolver: resolver,
		config:   config,
		log:      log,
	}
}

// Analyze seeds the binding tables from the first group of sm and walks its
// rules. The returned Flow is non-nil even on error so callers can report
// its diagnostics.
func (a *Analyzer) Analyze(ctx context.Context, sm *structuremap.StructureMap) (*Flow, error) {
	a.reset()

	if sm == nil {
		a.flow.Diagnostics.AddError(diagnostic.CodeInvalidMapping, "structure map is nil", "", "")
		return a.flow, fmt.Errorf("%w: structure map is nil", ErrInvalidMapping)
	}

	doc := sm.Label()
	a.flow.Document = doc
	a.flow.URL = sm.URL

	group, ok := sm.FirstGroup()
	if !ok {
		a.flow.Diagnostics.AddError(diagnostic.CodeInvalidMapping, "map declares no groups", doc, "")
		return a.flow, fmt.Errorf("%w: %s declares no groups", ErrInvalidMapping, doc)
	}

	a.flow.Group = group.Name

	for _, role := range []structuremap.InputMode{structuremap.InputModeSource, structuremap.InputModeTarget} {
		if len(sm.StructuresByRole(role)) == 0 {
			a.flow.Diagnostics.AddError(diagnostic.CodeInvalidMapping,
				fmt.Sprintf("map declares no %s structure", role), doc, "")

			return a.flow, fmt.Errorf("%w: %s declares no %s structure", ErrInvalidMapping, doc, role)
		}
	}

	if err := a.seed(ctx, sm, group); err != nil {
		return a.flow, err
	}

	w := &walker{
		flow:     a.flow,
		doc:      doc,
		config:   a.config,
		log:      a.log.With().Str("map", doc).Logger(),
		literals: &a.literals,
	}

	for i := range group.Rule {
		if err := ctx.Err(); err != nil {
			return a.flow, err
		}

		w.walkRule(&group.Rule[i], 0)
	}

	a.log.Debug().
		Str("map", doc).
		Int("edges", len(a.flow.Edges)).
		Int("source_bindings", a.flow.Source.Len()).
		Int("target_bindings", a.flow.Target.Len()).
		Int("warnings", len(a.flow.Diagnostics.Warnings)).
		Msg("Analyzed structure map")

	return a.flow, nil
}

func (a *Analyzer) reset() {
	a.flow = newFlow()
	a.literals = 0
}
