package flow

import (
	"context"
	"errors"
	"fmt"

	"smdiagram/internal/definition"
	"smdiagram/internal/diagnostic"
	"smdiagram/internal/structuremap"
)

// seed resolves every declared structure and binds the matching inputs of
// group to the structure root. Queried structures seed the source side and
// produced structures the target side.
func (a *Analyzer) seed(ctx context.Context, sm *structuremap.StructureMap, group *structuremap.Group) error {
	doc := a.flow.Document
	resolved := make(map[structuremap.InputMode]int)

	for _, s := range sm.Structure {
		role := s.Mode.Role()
		if role == "" {
			a.log.Debug().Str("map", doc).Str("url", s.URL).Str("mode", string(s.Mode)).
				Msg("Skipping structure with unknown mode")

			continue
		}

		sd, err := a.resolver.Resolve(ctx, s.URL)
		if err != nil {
			if !errors.Is(err, definition.ErrNotFound) {
				return fmt.Errorf("resolving %s: %w", s.URL, err)
			}

			a.flow.Diagnostics.AddWarning(diagnostic.CodeUnresolvedStructure,
				fmt.Sprintf("no definition for %s structure %s", role, s.URL), doc, "")
			a.log.Warn().Str("map", doc).Str("url", s.URL).Msg("Structure definition not found")

			continue
		}

		resolved[role]++

		a.flow.Structures = append(a.flow.Structures, ResolvedStructure{
			Role:       role,
			Alias:      s.Alias,
			URL:        s.URL,
			Definition: sd,
		})

		side := SideSource
		if role == structuremap.InputModeTarget {
			side = SideTarget
		}

		root := RootPath(sd.TypeName())

		for _, in := range group.Input {
			if in.Mode != role || !inputMatches(in, s, sd) {
				continue
			}

			a.flow.Table(side).Bind(in.Name, root, BindingInput)
			a.flow.Ports(side).Port(root)

			a.log.Debug().Str("map", doc).Str("input", in.Name).Str("side", side.String()).
				Str("type", sd.TypeName()).Msg("Bound group input")
		}
	}

	for _, role := range []structuremap.InputMode{structuremap.InputModeSource, structuremap.InputModeTarget} {
		if resolved[role] > 0 {
			continue
		}

		a.flow.Diagnostics.AddError(diagnostic.CodeUnresolvedStructure,
			fmt.Sprintf("no %s structure could be resolved", role), doc, "")

		return fmt.Errorf("%w: no %s structure of %s could be resolved", ErrUnresolvedStructure, role, doc)
	}

	return nil
}

// inputMatches returns true if the input's declared type names the structure
// by alias, definition name or definition type.
func inputMatches(in structuremap.Input, s structuremap.Structure, sd *definition.StructureDefinition) bool {
	if s.Alias != "" && in.Type == s.Alias {
		return true
	}

	return sd.Matches(in.Type)
}
