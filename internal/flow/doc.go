// Package flow infers the data flow of a StructureMap.
//
// Analysis runs in two steps over the first group of a document:
//
//  1. Seeding binds every group input whose declared type matches a resolved
//     source or target structure to that structure's root path ".".
//  2. The walker visits the rule forest depth-first. Source-match clauses bind
//     new variables below known contexts, target-assignment clauses bind target
//     paths and, when their transform carries a value, record an Edge from the
//     referenced source path or literal to the target path. Dependent
//     invocations are recorded per rule.
//
// Binding tables are shared by the whole walk: a binding made anywhere stays
// visible to every rule visited later, including later siblings of the rule
// that made it. Lookup misses never stop the walk; they are reported as
// diagnostics with suggestions and logged.
//
// An Analyzer keeps its per-document state between calls only as scratch
// space. Analyze resets it before every document, so analyzing the same
// document twice yields equal flows.
package flow
