// Package render turns StructureMaps into diagram sources.
//
// Three diagrams are produced:
//
//   - flow: a PlantUML-wrapped Graphviz digraph with one table node per side,
//     a row per bound path, an edge per value transfer and a marker node per
//     rule that invokes dependents.
//   - overview: a PlantUML class diagram with a class per group listing its
//     inputs and the elements referenced through them.
//   - rules: a plain text outline of the rule tree.
//
// Rendering is best-effort. Renderer.Render never fails; a diagram that can't
// be produced is logged and left out of the result.
package render
