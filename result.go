package tableau

import (
	"tableau/internal/engine"
	"tableau/model"
)

// Stats re-exports the engine's statistics record for façade callers
// who want to inspect resource use without reaching into internal/engine.
type Stats = engine.Stats

// AnalyzeResult is SPEC_FULL.md's supplemented one-call operation: it
// reports satisfiability, theorem-hood, and up to a handful of
// extracted models for a single formula under one system, so a caller
// does not need three separate façade calls (Analyze still runs each
// of their engine builds) to get the full picture spec.md §6.3 describes as
// "advanced callers may inspect statistics, branch counts...".
type AnalyzeResult struct {
	Satisfiable bool
	Theorem     bool
	Models      []model.Model
	Stats       Stats
}
