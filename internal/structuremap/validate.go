package structuremap

import (
	"fmt"

	"smdiagram/internal/diagnostic"
)

// Validate checks the structural shape of a document before analysis.
// It doesn't resolve structure definitions; that happens during flow analysis.
func Validate(sm *StructureMap) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if sm == nil {
		res.AddError("map_is_nil", "structure map is nil", "", "")
		return res
	}

	doc := sm.Label()

	if len(sm.Group) == 0 {
		res.AddError(diagnostic.CodeInvalidMapping, "structure map declares no groups", doc, "")
	}

	if len(sm.StructuresByRole(InputModeSource)) == 0 {
		res.AddError(diagnostic.CodeInvalidMapping, "structure map declares no source structure", doc, "")
	}

	if len(sm.StructuresByRole(InputModeTarget)) == 0 {
		res.AddError(diagnostic.CodeInvalidMapping, "structure map declares no target structure", doc, "")
	}

	for i := range sm.Structure {
		validateStructure(res, doc, &sm.Structure[i])
	}

	seenGroups := map[string]struct{}{}

	for i := range sm.Group {
		g := &sm.Group[i]
		if g.Name == "" {
			res.AddError("missing_group_name", fmt.Sprintf("group #%d has no name", i+1), doc, "")
		} else if _, ok := seenGroups[g.Name]; ok {
			res.AddError("duplicate_group", fmt.Sprintf("duplicate group %q", g.Name), doc, "")
		}

		seenGroups[g.Name] = struct{}{}

		validateGroup(res, doc, g)
	}

	return res
}

func validateStructure(res *diagnostic.Diagnostics, doc string, s *Structure) {
	if s.URL == "" {
		res.AddError("missing_structure_url", "structure has no url", doc, "")
	}

	if !s.Mode.IsValid() {
		res.AddError("invalid_structure_mode", fmt.Sprintf("structure %q has invalid mode %q", s.URL, s.Mode), doc, "")
	}
}

func validateGroup(res *diagnostic.Diagnostics, doc string, g *Group) {
	for _, in := range g.Input {
		if in.Name == "" {
			res.AddError("missing_input_name", fmt.Sprintf("group %q has an input without name", g.Name), doc, "")
		}

		if !in.Mode.IsValid() {
			res.AddError("invalid_input_mode",
				fmt.Sprintf("input %q of group %q has invalid mode %q", in.Name, g.Name, in.Mode), doc, "")
		}
	}

	g.Walk(func(r *Rule, _ int) {
		if r.Name == "" {
			res.AddWarning("unnamed_rule", fmt.Sprintf("group %q has a rule without name", g.Name), doc, "")
		}

		for _, t := range r.Target {
			if t.Transform.ProducesValue() && len(t.Parameter) == 0 {
				res.AddWarning("missing_parameter",
					fmt.Sprintf("%s transform has no parameter", t.Transform), doc, r.Name)
			}
		}

		for _, d := range r.Dependent {
			if d.Name == "" {
				res.AddError("missing_dependent_name", "dependent invocation has no name", doc, r.Name)
			}
		}
	})
}
