// Package match ranks known variable names against one that a mapping rule
// references but that is not in scope, producing "did you mean" suggestions.
//
// Key functions:
//   - NormalizeIdent: folds case and separators
//   - Distance, Similarity, Score: rune-based edit distance and its 0..1 form
//   - RankNames, Suggest: order known names and keep the best few
package match
