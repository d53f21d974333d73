package flow

import "smdiagram/internal/common"

// Side is one of the two halves of a data flow.
type Side int

const (
	SideSource Side = iota
	SideTarget
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SideSource:
		return "source"
	case SideTarget:
		return "target"
	default:
		return common.UnknownStr
	}
}

// BindingKind records what introduced a binding.
type BindingKind int

const (
	// BindingInput is a group input bound to a structure root.
	BindingInput BindingKind = iota
	// BindingVariable is a variable declared by a source or target clause.
	BindingVariable
	// BindingImplicit is the "context.element" key of a target assignment.
	BindingImplicit
	// BindingLiteral is an anonymous entry for a synthesized literal.
	BindingLiteral
)

// Binding is one entry of a Table.
type Binding struct {
	Name string
	Path Path
	Kind BindingKind
}

// Row groups the bindings sharing one path, in first-seen order.
type Row struct {
	Path Path
	// Names lists input and variable names bound to the path.
	// Implicit keys and literals contribute no name.
	Names []string
}

// Table maps names to paths for one side. Entries keep insertion order and
// are never removed.
type Table struct {
	side    Side
	entries []Binding
	index   map[string]int
}

// NewTable creates an empty table for side.
func NewTable(side Side) *Table {
	return &Table{side: side, index: make(map[string]int)}
}

// Side returns the side the table belongs to.
func (t *Table) Side() Side {
	return t.side
}

// Bind binds name to path. Rebinding a name to the same path is a no-op.
// Rebinding it to another path overwrites the entry in place and reports the
// previous path.
func (t *Table) Bind(name string, path Path, kind BindingKind) (changed bool, previous Path) {
	if i, ok := t.index[name]; ok {
		previous = t.entries[i].Path
		if previous == path {
			return false, previous
		}

		t.entries[i].Path = path
		t.entries[i].Kind = kind

		return true, previous
	}

	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Binding{Name: name, Path: path, Kind: kind})

	return false, Path{}
}

// AddLiteral appends an anonymous literal entry.
func (t *Table) AddLiteral(path Path) {
	t.entries = append(t.entries, Binding{Path: path, Kind: BindingLiteral})
}

// Lookup returns the path bound to name.
func (t *Table) Lookup(name string) (Path, bool) {
	i, ok := t.index[name]
	if !ok {
		return Path{}, false
	}

	return t.entries[i].Path, true
}

// Len returns the number of entries, literals included.
func (t *Table) Len() int {
	return len(t.entries)
}

// Names returns every bound name in insertion order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.index))

	for _, b := range t.entries {
		if b.Kind != BindingLiteral {
			names = append(names, b.Name)
		}
	}

	return names
}

// Bindings returns a copy of all entries in insertion order.
func (t *Table) Bindings() []Binding {
	return append([]Binding(nil), t.entries...)
}

// Rows returns one row per distinct path in first-seen order.
func (t *Table) Rows() []Row {
	var rows []Row

	at := make(map[Path]int)

	for _, b := range t.entries {
		i, ok := at[b.Path]
		if !ok {
			i = len(rows)
			at[b.Path] = i
			rows = append(rows, Row{Path: b.Path})
		}

		if b.Kind == BindingInput || b.Kind == BindingVariable {
			rows[i].Names = append(rows[i].Names, b.Name)
		}
	}

	return rows
}
