package flow

import (
	"fmt"

	"github.com/rs/zerolog"

	"smdiagram/internal/diagnostic"
	"smdiagram/internal/match"
	"smdiagram/internal/structuremap"
)

// walker carries the shared tables of one analysis through the rule forest.
type walker struct {
	flow     *Flow
	doc      string
	config   Config
	log      zerolog.Logger
	literals *int
}

// walkRule processes the clauses of r, then its child rules, depth-first.
func (w *walker) walkRule(r *structuremap.Rule, depth int) {
	w.log.Debug().Str("rule", r.Name).Int("depth", depth).Msg("Walking rule")

	for i := range r.Source {
		w.matchSource(r, &r.Source[i])
	}

	for i := range r.Target {
		w.assignTarget(r, &r.Target[i])
	}

	for i := range r.Dependent {
		w.recordDependent(r, &r.Dependent[i])
	}

	for i := range r.Rule {
		w.walkRule(&r.Rule[i], depth+1)
	}
}

// matchSource binds the clause variable to context.element. The context is
// looked up in the target table first, then in the source table, and the
// variable lands on the side where the context was found.
func (w *walker) matchSource(r *structuremap.Rule, s *structuremap.Source) {
	if s.Context == "" || s.Element == "" || s.Variable == "" {
		return
	}

	side := SideTarget

	ctxPath, ok := w.flow.Target.Lookup(s.Context)
	if !ok {
		side = SideSource
		ctxPath, ok = w.flow.Source.Lookup(s.Context)
	}

	if !ok {
		w.miss(r, "source context", s.Context, w.flow.Target.Names(), w.flow.Source.Names())
		return
	}

	w.bind(r, side, s.Variable, ctxPath.Child(s.Element), BindingVariable)
}

// assignTarget binds the target path of the clause and records an edge when
// its transform carries a value.
func (w *walker) assignTarget(r *structuremap.Rule, t *structuremap.Target) {
	if t.Context == "" || t.Element == "" {
		return
	}

	ctxPath, ok := w.flow.Target.Lookup(t.Context)
	if !ok {
		w.miss(r, "target context", t.Context, w.flow.Target.Names())
		return
	}

	to := ctxPath.Child(t.Element)

	if t.Variable != "" {
		w.bind(r, SideTarget, t.Variable, to, BindingVariable)
	}

	w.bind(r, SideTarget, t.Context+"."+t.Element, to, BindingImplicit)

	if !t.Transform.ProducesValue() {
		return
	}

	param, ok := t.FirstParameter()
	if !ok {
		w.log.Debug().Str("rule", r.Name).Str("transform", t.Transform.String()).
			Msg("Transform without parameters")

		return
	}

	if name, ok := param.Variable(); ok {
		from, found := w.flow.Source.Lookup(name)
		if !found {
			w.miss(r, "transform parameter", name, w.flow.Source.Names())
			return
		}

		w.addEdge(from, to, r.Name)

		return
	}

	if text, ok := param.Literal(); ok {
		w.addEdge(w.literal(text), to, r.Name)
	}
}

// recordDependent records every argument of an invocation under the rule.
// Variables resolve against the source table first, then the target table.
// Literals are synthesized like transform literals.
func (w *walker) recordDependent(r *structuremap.Rule, d *structuremap.Dependent) {
	for _, p := range d.Parameters() {
		if name, ok := p.Variable(); ok {
			side := SideSource

			path, found := w.flow.Source.Lookup(name)
			if !found {
				side = SideTarget
				path, found = w.flow.Target.Lookup(name)
			}

			if !found {
				w.miss(r, "dependent parameter", name, w.flow.Source.Names(), w.flow.Target.Names())
				continue
			}

			w.flow.Dependents.Record(r.Name, DependentRef{Invocation: d.Name, Name: name, Side: side, Path: path})

			continue
		}

		if text, ok := p.Literal(); ok {
			w.flow.Dependents.Record(r.Name, DependentRef{
				Invocation: d.Name,
				Name:       text,
				Side:       SideSource,
				Path:       w.literal(text),
			})
		}
	}
}

func (w *walker) bind(r *structuremap.Rule, side Side, name string, path Path, kind BindingKind) {
	changed, previous := w.flow.Table(side).Bind(name, path, kind)
	w.flow.Ports(side).Port(path)

	if changed {
		w.flow.Diagnostics.AddWarning(diagnostic.CodeRebinding,
			fmt.Sprintf("%s %q rebound from %s to %s", side, name, previous, path), w.doc, r.Name)
		w.log.Debug().Str("rule", r.Name).Str("name", name).Stringer("from", previous).Stringer("to", path).
			Msg("Rebound name")
	}
}

// literal synthesizes a fresh literal path in the source table.
// Literals are never shared, so equal texts get distinct ports.
func (w *walker) literal(text string) Path {
	*w.literals++
	path := LiteralPath(text, *w.literals)

	w.flow.Source.AddLiteral(path)
	w.flow.SourcePorts.Port(path)

	return path
}

func (w *walker) addEdge(from, to Path, rule string) {
	w.flow.Edges = append(w.flow.Edges, Edge{From: from, To: to, Rule: rule})
	w.log.Debug().Str("rule", rule).Stringer("from", from).Stringer("to", to).Msg("Recorded edge")
}

// miss reports a lookup that found nothing. The walk goes on.
func (w *walker) miss(r *structuremap.Rule, what, name string, known ...[]string) {
	var candidates []string
	for _, names := range known {
		candidates = append(candidates, names...)
	}

	suggestions := match.Suggest(name, candidates, w.config.MaxSuggestions, w.config.MinSuggestionScore)

	w.flow.Diagnostics.AddWarning(diagnostic.CodeUnresolvedBinding,
		fmt.Sprintf("%s %q is not bound", what, name), w.doc, r.Name, suggestions...)
	w.log.Debug().Str("rule", r.Name).Str("name", name).Strs("suggestions", suggestions).
		Msgf("Unresolved %s", what)
}
