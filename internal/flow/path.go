package flow

import (
	"strconv"

	"smdiagram/internal/common"
)

// PathKind tags the variant held by a Path.
type PathKind int

const (
	// PathField is an element path inside a source or target structure.
	PathField PathKind = iota
	// PathLiteral is a constant parameter synthesized into the source side.
	PathLiteral
)

// Path is either a dotted element path rooted at a structure, or a literal.
// Paths are comparable and used as port table keys.
type Path struct {
	Kind PathKind
	// Root is the structure type name of a field path.
	Root string
	// Rel is "." for the structure root and ".a.b" below it.
	// For literals it holds the literal text.
	Rel string
	// Seq numbers literal occurrences within one document, starting at 1.
	Seq int
}

// RootPath returns the root path of a structure.
func RootPath(typeName string) Path {
	return Path{Kind: PathField, Root: typeName, Rel: "."}
}

// LiteralPath returns the seq-th literal of a document.
// Two literals with the same text but different seq are distinct paths.
func LiteralPath(text string, seq int) Path {
	return Path{Kind: PathLiteral, Rel: text, Seq: seq}
}

// IsLiteral returns true for literal paths.
func (p Path) IsLiteral() bool {
	return p.Kind == PathLiteral
}

// IsRoot returns true for structure roots.
func (p Path) IsRoot() bool {
	return p.Kind == PathField && p.Rel == "."
}

// Child returns the path of element below p. A trailing "." of p is dropped
// first, so the child of the root "." is ".element".
func (p Path) Child(element string) Path {
	return Path{
		Kind: PathField,
		Root: p.Root,
		Rel:  common.TrimDot(p.Rel) + "." + element,
	}
}

// String renders the qualified path, e.g. "Patient", "Patient.identifier",
// or a double-quoted literal.
func (p Path) String() string {
	if p.Kind == PathLiteral {
		return strconv.Quote(p.Rel)
	}

	if p.IsRoot() {
		if p.Root == "" {
			return "."
		}

		return p.Root
	}

	return p.Root + p.Rel
}
