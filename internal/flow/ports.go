package flow

import (
	"strconv"
	"strings"
)

// PortTable assigns diagram anchor identifiers to paths. An identifier is
// fixed on first encounter and unique within the table.
type PortTable struct {
	prefix string
	ids    map[Path]string
	used   map[string]struct{}
	order  []Path
}

// NewPortTable creates an empty table whose identifiers start with prefix.
func NewPortTable(prefix string) *PortTable {
	return &PortTable{
		prefix: prefix,
		ids:    make(map[Path]string),
		used:   make(map[string]struct{}),
	}
}

// Port returns the identifier of path, assigning one if needed.
func (pt *PortTable) Port(path Path) string {
	if id, ok := pt.ids[path]; ok {
		return id
	}

	base := pt.prefix + "_" + sanitize(path)
	id := base

	for n := 2; ; n++ {
		if _, taken := pt.used[id]; !taken {
			break
		}

		id = base + "_" + strconv.Itoa(n)
	}

	pt.ids[path] = id
	pt.used[id] = struct{}{}
	pt.order = append(pt.order, path)

	return id
}

// Lookup returns the identifier of path without assigning one.
func (pt *PortTable) Lookup(path Path) (string, bool) {
	id, ok := pt.ids[path]
	return id, ok
}

// Len returns the number of assigned ports.
func (pt *PortTable) Len() int {
	return len(pt.ids)
}

// Paths returns the paths in assignment order.
func (pt *PortTable) Paths() []Path {
	return append([]Path(nil), pt.order...)
}

// sanitize reduces a path to characters safe in diagram identifiers.
func sanitize(path Path) string {
	if path.IsLiteral() {
		return "lit" + strconv.Itoa(path.Seq)
	}

	var b strings.Builder

	for _, r := range path.String() {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	if b.Len() == 0 {
		return "root"
	}

	return b.String()
}
