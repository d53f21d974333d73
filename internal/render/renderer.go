package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"smdiagram/internal/definition"
	"smdiagram/internal/flow"
	"smdiagram/internal/structuremap"
	"smdiagram/options"
)

// Diagram names used as keys of Render results.
const (
	DiagramFlow     = "flow"
	DiagramOverview = "overview"
	DiagramRules    = "rules"
)

// ErrPanic wraps a panic recovered while rendering a diagram.
var ErrPanic = errors.New("panic while rendering")

// Config holds configuration for rendering.
type Config struct {
	// Formats selects the diagrams to produce.
	Formats options.FormatEnum
	// RankDir is the Graphviz rank direction of the flow diagram.
	RankDir string
	// Analysis configures the flow analysis.
	Analysis flow.Config
}

// DefaultConfig returns the default render configuration.
func DefaultConfig() Config {
	return Config{
		Formats:  options.FormatAll,
		RankDir:  DefaultRankDir,
		Analysis: flow.DefaultConfig(),
	}
}

// Renderer produces diagram sources for StructureMaps.
// It is safe for concurrent use when its resolver is.
type Renderer struct {
	resolver definition.Resolver
	config   Config
	log      zerolog.Logger
}

// NewRenderer creates a Renderer resolving structures through resolver.
func NewRenderer(resolver definition.Resolver, config Config, log zerolog.Logger) *Renderer {
	return &Renderer{
		resolver: resolver,
		config:   config,
		log:      log,
	}
}

// Render returns the selected diagrams of sm keyed by diagram name.
// A diagram that fails is logged and omitted, so the result may be empty.
func (r *Renderer) Render(ctx context.Context, sm *structuremap.StructureMap) map[string]string {
	diagrams := make(map[string]string)

	if sm == nil {
		r.log.Warn().Msg("Unable to create diagrams for nil structure map")
		return diagrams
	}

	doc := sm.Label()

	for _, name := range r.config.Formats.Names() {
		out, err := r.renderSafely(ctx, name, sm)
		if err != nil {
			r.log.Warn().Err(err).Str("map", doc).Str("diagram", name).Msg("Unable to create diagram")
			continue
		}

		diagrams[name] = out
	}

	return diagrams
}

func (r *Renderer) renderSafely(ctx context.Context, name string, sm *structuremap.StructureMap) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, p)
		}
	}()

	switch name {
	case DiagramFlow:
		return r.renderFlow(ctx, sm)
	case DiagramOverview:
		return Overview(sm)
	case DiagramRules:
		return RuleOutline(sm)
	default:
		return "", fmt.Errorf("unknown diagram %q", name)
	}
}

func (r *Renderer) renderFlow(ctx context.Context, sm *structuremap.StructureMap) (string, error) {
	f, err := flow.NewAnalyzer(r.resolver, r.config.Analysis, r.log).Analyze(ctx, sm)
	if err != nil {
		return "", fmt.Errorf("analyzing flow: %w", err)
	}

	if n := len(f.Diagnostics.Warnings); n > 0 {
		r.log.Info().Str("map", f.Document).Int("warnings", n).Msg("Flow analysis skipped unresolved references")
	}

	return FlowDiagram(f, r.config.RankDir)
}
