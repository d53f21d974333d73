package flow

import "errors"

var (
	// ErrInvalidMapping is returned for documents that can't seed a flow at all:
	// no groups, or no source or target structure declared.
	ErrInvalidMapping = errors.New("invalid mapping")
	// ErrUnresolvedStructure is returned when no source or no target structure
	// definition could be resolved.
	ErrUnresolvedStructure = errors.New("unresolved structure")
)
