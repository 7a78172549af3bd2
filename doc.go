// Package tableau is the public inference façade of spec.md §4.7: it
// composes the engine, rule registry and model extractor with
// system-appropriate initial signed formulas and interprets the
// result, adding a memoising cache (spec.md §4.7's last paragraph) on
// top of the single-shot internal engine.
//
// Logging, pretty-printing and output encoding remain the concern of
// external collaborators (spec.md §1); this package's surface is
// exactly IsSatisfiable, IsTheorem, FindModels, CompareSystems and the
// supplemented Analyze operation.
package tableau
