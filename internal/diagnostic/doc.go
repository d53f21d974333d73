// Package diagnostic provides structured warnings and errors collected while
// loading, analyzing and rendering StructureMap documents.
//
// Key capabilities:
//   - Unresolved structure and binding reports
//   - "Did you mean" suggestions for unknown names
//   - Rebinding warnings
//   - Render failure reports
package diagnostic
