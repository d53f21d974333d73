package flow

import (
	"smdiagram/internal/common"
	"smdiagram/internal/definition"
	"smdiagram/internal/diagnostic"
	"smdiagram/internal/structuremap"
)

// Edge is a value flowing from a source path or literal into a target path.
// Edges are kept in discovery order and never deduplicated.
type Edge struct {
	From Path
	To   Path
	// Rule is the name of the rule that assigns the target.
	Rule string
}

// DependentRef is one argument a rule passes to a dependent invocation.
type DependentRef struct {
	// Invocation is the name of the invoked group or rule.
	Invocation string
	// Name is the variable name or literal text passed.
	Name string
	// Side is where the argument resolved.
	Side Side
	Path Path
}

// DependentEntry lists the references one rule passes to its invocations.
type DependentEntry struct {
	Rule string
	Refs []DependentRef
}

// DependentTable maps rule names to the references they pass on,
// in first-seen order.
type DependentTable struct {
	entries []DependentEntry
	index   map[string]int
}

// NewDependentTable creates an empty table.
func NewDependentTable() *DependentTable {
	return &DependentTable{index: make(map[string]int)}
}

// Record appends ref under rule.
func (d *DependentTable) Record(rule string, ref DependentRef) {
	i, ok := d.index[rule]
	if !ok {
		i = len(d.entries)
		d.index[rule] = i
		d.entries = append(d.entries, DependentEntry{Rule: rule})
	}

	d.entries[i].Refs = append(d.entries[i].Refs, ref)
}

// Lookup returns the references recorded for rule.
func (d *DependentTable) Lookup(rule string) ([]DependentRef, bool) {
	i, ok := d.index[rule]
	if !ok {
		return nil, false
	}

	return d.entries[i].Refs, true
}

// Entries returns every entry in first-seen order.
func (d *DependentTable) Entries() []DependentEntry {
	return append([]DependentEntry(nil), d.entries...)
}

// Len returns the number of rules with dependent references.
func (d *DependentTable) Len() int {
	return len(d.entries)
}

// ResolvedStructure is a structure declaration with its definition.
type ResolvedStructure struct {
	Role       structuremap.InputMode
	Alias      string
	URL        string
	Definition *definition.StructureDefinition
}

// Flow is the result of analyzing one document.
type Flow struct {
	// Document is the label of the analyzed map.
	Document string
	// URL is the canonical URL of the map.
	URL string
	// Group is the name of the group whose rules were walked.
	Group string
	// Structures lists the structures that resolved, in declaration order.
	Structures []ResolvedStructure

	Source      *Table
	Target      *Table
	SourcePorts *PortTable
	TargetPorts *PortTable
	Edges       []Edge
	Dependents  *DependentTable

	Diagnostics diagnostic.Diagnostics
}

func newFlow() *Flow {
	return &Flow{
		Source:      NewTable(SideSource),
		Target:      NewTable(SideTarget),
		SourcePorts: NewPortTable("src"),
		TargetPorts: NewPortTable("tgt"),
		Dependents:  NewDependentTable(),
	}
}

// Table returns the binding table of side.
func (f *Flow) Table(side Side) *Table {
	if side == SideTarget {
		return f.Target
	}

	return f.Source
}

// Ports returns the port table of side.
func (f *Flow) Ports(side Side) *PortTable {
	if side == SideTarget {
		return f.TargetPorts
	}

	return f.SourcePorts
}

// StructuresBySide returns the resolved structures of side.
func (f *Flow) StructuresBySide(side Side) []ResolvedStructure {
	role := structuremap.InputModeSource
	if side == SideTarget {
		role = structuremap.InputModeTarget
	}

	var out []ResolvedStructure

	for _, s := range f.Structures {
		if s.Role == role {
			out = append(out, s)
		}
	}

	return out
}

// ElementType returns the snapshot type codes of the element at p, looked up
// in the definition of the side's structure that p is rooted at.
func (f *Flow) ElementType(side Side, p Path) (string, bool) {
	if p.IsLiteral() {
		return "", false
	}

	for _, s := range f.StructuresBySide(side) {
		sd := s.Definition
		if sd == nil || sd.TypeName() != p.Root {
			continue
		}

		el, ok := sd.Element(common.FirstNonEmpty(sd.Type, sd.Name) + common.TrimDot(p.Rel))
		if !ok || len(el.Type) == 0 {
			continue
		}

		return el.TypeCodes(), true
	}

	return "", false
}
