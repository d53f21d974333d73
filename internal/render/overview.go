package render

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"smdiagram/internal/structuremap"
)

type overviewData struct {
	Name   string
	Groups []classData
	Arrows []string
}

type classData struct {
	Name     string
	ID       string
	Sections []sectionData
}

type sectionData struct {
	Title string
	Lines []string
}

var overviewTemplate = template.Must(template.New("overview").Funcs(funcs).Parse(`@startuml
skinparam groupInheritance 2
package {{quote .Name}} {
{{- range .Groups}}
  class {{if ne .Name .ID}}{{quote .Name}} as {{end}}{{.ID}} {
{{- range .Sections}}
    ..{{.Title}}..
{{- range .Lines}}
    {{.}}
{{- end}}
{{- end}}
  }
{{- end}}
{{- range .Arrows}}
  {{.}}
{{- end}}
}
@enduml
`))

var overviewSections = []struct {
	title string
	mode  structuremap.InputMode
}{
	{"Sources", structuremap.InputModeSource},
	{"Targets", structuremap.InputModeTarget},
	{"Unbound", ""},
}

// Overview renders the groups of sm as a PlantUML class diagram.
// Callers are listed before the groups they invoke.
func Overview(sm *structuremap.StructureMap) (string, error) {
	data := &overviewData{Name: sm.Label()}

	order := groupOrder(sm)
	ids := classIDs(sm)

	for _, i := range order {
		g := &sm.Group[i]
		data.Groups = append(data.Groups, buildClass(g, ids[g.Name]))
	}

	for _, i := range order {
		g := &sm.Group[i]
		data.Arrows = append(data.Arrows, inputArrows(g, ids[g.Name])...)
	}

	data.Arrows = append(data.Arrows, invocationArrows(sm, order, ids)...)

	var buf bytes.Buffer
	if err := overviewTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing overview template: %w", err)
	}

	return buf.String(), nil
}

// classIDs maps group names to PlantUML identifiers. Names that are not plain
// identifiers (FHIR ids may hold "-" and ".") get a sanitized alias, with a
// numeric suffix when two names sanitize alike.
func classIDs(sm *structuremap.StructureMap) map[string]string {
	ids := make(map[string]string, len(sm.Group))
	taken := make(map[string]bool, len(sm.Group))

	for _, g := range sm.Group {
		if _, ok := ids[g.Name]; ok {
			continue
		}

		base := sanitizeID(g.Name)

		id := base
		for n := 2; taken[id]; n++ {
			id = base + "_" + strconv.Itoa(n)
		}

		ids[g.Name] = id
		taken[id] = true
	}

	return ids
}

func sanitizeID(name string) string {
	var b strings.Builder

	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}

			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	if b.Len() == 0 {
		return "_"
	}

	return b.String()
}

func buildClass(g *structuremap.Group, id string) classData {
	class := classData{Name: g.Name, ID: id}

	for _, section := range overviewSections {
		var lines []string

		for _, in := range g.Input {
			if in.Mode != section.mode {
				continue
			}

			lines = append(lines, in.Type+" "+in.Name)

			if section.mode != "" {
				lines = append(lines, referencedElements(g.Rule, in.Name, section.mode)...)
			}
		}

		if len(lines) > 0 {
			class.Sections = append(class.Sections, sectionData{Title: section.title, Lines: lines})
		}
	}

	return class
}

// referencedElements lists the dotted element paths reached from the input
// through source (or target) clauses, sorted and without duplicates.
func referencedElements(rules []structuremap.Rule, input string, mode structuremap.InputMode) []string {
	seen := make(map[string]struct{})
	collectElements(rules, input, input+".", mode, seen)

	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}

	slices.Sort(out)

	return out
}

func collectElements(
	rules []structuremap.Rule,
	name, prefix string,
	mode structuremap.InputMode,
	seen map[string]struct{},
) {
	for i := range rules {
		r := &rules[i]

		if mode == structuremap.InputModeSource {
			for _, s := range r.Source {
				if s.Context != name || s.Element == "" {
					continue
				}

				path := prefix + s.Element

				label := path
				if s.Type != "" {
					label += " : " + s.Type
				}

				seen[label] = struct{}{}

				if s.Variable != "" {
					collectElements(r.Rule, s.Variable, path+".", mode, seen)
				}
			}
		} else {
			for _, t := range r.Target {
				if t.Context != name || t.Element == "" {
					continue
				}

				path := prefix + t.Element
				seen[path] = struct{}{}

				if t.Variable != "" {
					collectElements(r.Rule, t.Variable, path+".", mode, seen)
				}
			}
		}

		// The name stays visible in nested rules.
		collectElements(r.Rule, name, prefix, mode, seen)
	}
}

// inputArrows links every source input of g to every target input.
func inputArrows(g *structuremap.Group, id string) []string {
	var arrows []string

	for _, src := range g.Input {
		if src.Mode != structuremap.InputModeSource {
			continue
		}

		for _, tgt := range g.Input {
			if tgt.Mode != structuremap.InputModeTarget {
				continue
			}

			arrows = append(arrows, fmt.Sprintf("%s::%s --> %s::%s", id, src.Name, id, tgt.Name))
		}
	}

	return arrows
}

// invocationArrows links groups to the groups their rules invoke, labeled
// with the invoking rule.
func invocationArrows(sm *structuremap.StructureMap, order []int, ids map[string]string) []string {
	var arrows []string

	seen := make(map[string]bool)

	for _, i := range order {
		g := &sm.Group[i]

		g.Walk(func(r *structuremap.Rule, _ int) {
			for _, d := range r.Dependent {
				callee, ok := ids[d.Name]
				if !ok {
					continue
				}

				arrow := fmt.Sprintf("%s ..> %s : %s", ids[g.Name], callee, r.Name)
				if r.Name == "" {
					arrow = fmt.Sprintf("%s ..> %s", ids[g.Name], callee)
				}

				if !seen[arrow] {
					seen[arrow] = true
					arrows = append(arrows, arrow)
				}
			}
		})
	}

	return arrows
}
