package engine

import "time"

// Stats is the engine's statistics record (spec.md §3's "Engine
// state"), extended per SPEC_FULL.md's supplemented branch-statistics
// feature with separate δ/γ counters alongside the spec-mandated α/β
// split.
type Stats struct {
	RuleApplicationsAlpha int
	RuleApplicationsBeta  int
	RuleApplicationsDelta int
	RuleApplicationsGamma int
	BranchesCreated       int
	ClosureChecks         int
	Closures              int
	SubsumptionEliminated int
	MaxBranchSize         int
	Elapsed               time.Duration
}
