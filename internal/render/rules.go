package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ddddddO/gtree"

	"smdiagram/internal/structuremap"
)

// RuleOutline renders the groups and rules of sm as an indented text tree.
// Sibling rules with identical text are shown once.
func RuleOutline(sm *structuremap.StructureMap) (string, error) {
	root := gtree.NewRoot(sm.Label())

	for i := range sm.Group {
		g := &sm.Group[i]
		node := root.Add(groupLabel(g))

		for j := range g.Rule {
			addRule(node, &g.Rule[j])
		}
	}

	var buf bytes.Buffer
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", fmt.Errorf("writing rule outline: %w", err)
	}

	return buf.String(), nil
}

func addRule(parent *gtree.Node, r *structuremap.Rule) {
	node := parent.Add(ruleLabel(r))

	for _, d := range r.Dependent {
		params := d.Parameters()

		args := make([]string, 0, len(params))
		for _, p := range params {
			args = append(args, p.String())
		}

		node.Add("then " + d.Name + "(" + strings.Join(args, ", ") + ")")
	}

	for i := range r.Rule {
		addRule(node, &r.Rule[i])
	}
}

// groupLabel reads like "group Name(source src : Patient, target tgt : Bundle)".
func groupLabel(g *structuremap.Group) string {
	inputs := make([]string, 0, len(g.Input))

	for _, in := range g.Input {
		s := in.Name
		if in.Mode != "" {
			s = string(in.Mode) + " " + s
		}

		if in.Type != "" {
			s += " : " + in.Type
		}

		inputs = append(inputs, s)
	}

	return "group " + g.Name + "(" + strings.Join(inputs, ", ") + ")"
}

// unnamedRule labels a rule that has neither a name nor clauses.
const unnamedRule = "(unnamed rule)"

// ruleLabel reads like "setId: src.identifier as v -> tgt.id = copy(v)".
func ruleLabel(r *structuremap.Rule) string {
	sources := make([]string, 0, len(r.Source))
	for _, s := range r.Source {
		sources = append(sources, clause(s.Context, s.Element, s.Variable))
	}

	label := strings.Join(sources, ", ")

	if len(r.Target) > 0 {
		targets := make([]string, 0, len(r.Target))
		for i := range r.Target {
			targets = append(targets, targetClause(&r.Target[i]))
		}

		arrow := "-> " + strings.Join(targets, ", ")
		if label == "" {
			label = arrow
		} else {
			label += " " + arrow
		}
	}

	label = strings.TrimSpace(label)

	switch {
	case r.Name != "" && label != "":
		return r.Name + ": " + label
	case r.Name != "":
		return r.Name
	case label != "":
		return label
	default:
		return unnamedRule
	}
}

func targetClause(t *structuremap.Target) string {
	s := clause(t.Context, t.Element, "")

	if t.HasTransform() {
		args := make([]string, 0, len(t.Parameter))
		for _, p := range t.Parameter {
			args = append(args, p.String())
		}

		call := t.Transform.String() + "(" + strings.Join(args, ", ") + ")"
		if s == "" {
			s = call
		} else {
			s += " = " + call
		}
	}

	if t.Variable != "" {
		if s == "" {
			s = t.Variable
		} else {
			s += " as " + t.Variable
		}
	}

	return s
}

func clause(context, element, variable string) string {
	s := context
	if element != "" {
		s += "." + element
	}

	if variable != "" {
		s += " as " + variable
	}

	return s
}
