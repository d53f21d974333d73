// Package definition resolves the StructureDefinitions that a StructureMap's
// structure declarations point at.
//
// Resolvers are small: one method taking a canonical URL. Registry holds
// definitions loaded from a package directory, CoreResolver synthesizes base
// FHIR types when no package is available, Chain tries resolvers in order and
// Cached puts an LRU cache in front of any of them.
package definition

import (
	"context"
	"errors"
	"strings"
)

// ResourceType is the FHIR resourceType of a StructureDefinition.
const ResourceType = "StructureDefinition"

// ErrNotFound is wrapped by every resolver miss.
var ErrNotFound = errors.New("structure definition not found")

// StructureDefinition is the subset of the FHIR resource the renderer needs.
type StructureDefinition struct {
	ResourceType string   `json:"resourceType" yaml:"resourceType"`
	ID           string   `json:"id,omitempty" yaml:"id,omitempty"`
	URL          string   `json:"url" yaml:"url"`
	Version      string   `json:"version,omitempty" yaml:"version,omitempty"`
	Name         string   `json:"name" yaml:"name"`
	Kind         string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Type         string   `json:"type,omitempty" yaml:"type,omitempty"`
	Snapshot     Snapshot `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
}

// Snapshot is the flattened element list of a definition.
type Snapshot struct {
	Element []ElementDefinition `json:"element,omitempty" yaml:"element,omitempty"`
}

// ElementDefinition describes one element path.
type ElementDefinition struct {
	ID   string    `json:"id,omitempty" yaml:"id,omitempty"`
	Path string    `json:"path" yaml:"path"`
	Type []TypeRef `json:"type,omitempty" yaml:"type,omitempty"`
}

// TypeRef is one allowed type of an element.
type TypeRef struct {
	Code string `json:"code" yaml:"code"`
}

// TypeName returns the name used for root paths and structure matching.
func (sd *StructureDefinition) TypeName() string {
	if sd.Name != "" {
		return sd.Name
	}

	return sd.Type
}

// Matches returns true if declaredType names this definition by name or type.
func (sd *StructureDefinition) Matches(declaredType string) bool {
	if declaredType == "" {
		return false
	}

	return declaredType == sd.Name || declaredType == sd.Type
}

// Element returns the element definition with the given path.
func (sd *StructureDefinition) Element(path string) (*ElementDefinition, bool) {
	for i := range sd.Snapshot.Element {
		if sd.Snapshot.Element[i].Path == path {
			return &sd.Snapshot.Element[i], true
		}
	}

	return nil, false
}

// TypeCodes returns the type codes of the element, comma separated.
func (e *ElementDefinition) TypeCodes() string {
	codes := make([]string, 0, len(e.Type))
	for _, t := range e.Type {
		codes = append(codes, t.Code)
	}

	return strings.Join(codes, ",")
}

// Resolver resolves a canonical URL to a definition.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*StructureDefinition, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, url string) (*StructureDefinition, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, url string) (*StructureDefinition, error) {
	return f(ctx, url)
}

// canonical strips a "|version" suffix from a canonical URL.
func canonical(url string) string {
	if i := strings.IndexByte(url, '|'); i >= 0 {
		return url[:i]
	}

	return url
}
