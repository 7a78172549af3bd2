// Package engine implements the tableau proof-search engine of
// spec.md §4.4: branch selection, rule application, branching,
// closure, and termination, for CPL, WK3 and wKrQ alike — the rule
// table and sign set carry all system variability (spec.md §9); there
// is a single concrete Branch type, no per-system subclassing.
package engine

import (
	"context"
	"time"

	"tableau/rule"
	"tableau/sign"
	"tableau/term"
)

// Engine drives one Build call to completion. It is single-shot:
// construct, Build, discard (spec.md §3's Engine-state lifecycle).
type Engine struct {
	system  sign.System
	options Options
}

// New constructs an engine for the given logical system.
func New(sys sign.System, opts Options) *Engine {
	return &Engine{system: sys, options: opts.withDefaults()}
}

// Build runs the tableau algorithm of spec.md §4.4 to completion,
// honoring ctx for cooperative cancellation (checked once per loop
// iteration, per spec.md §5's "no suspension points" concurrency
// model — this is the single place the core consults the outside
// world).
func (e *Engine) Build(ctx context.Context, initial []sign.SignedFormula) BuildResult {
	start := time.Now()
	log := e.options.Logger.Named("engine").With("system", string(e.system))

	var stats Stats
	var closed []*Branch
	var open []*Branch

	nextID := 0
	root := newRootBranch(nextID, e.system, e.options.MaxInstantiationsPerUniversal, &stats)
	nextID++
	stats.BranchesCreated++

	for _, sf := range initial {
		root.Add(sf)
	}
	trackMaxSize(&stats, root)

	pending := []*Branch{root}
	if root.Closed {
		stats.Closures++
		closed = append(closed, root)
		pending = nil
	}

	for len(pending) > 0 {
		if ctx.Err() != nil {
			log.Debug("build cancelled")
			stats.Elapsed = time.Since(start)
			return BuildResult{Outcome: Cancelled, Stats: stats}
		}
		if stats.BranchesCreated > e.options.MaxBranches {
			stats.Elapsed = time.Since(start)
			return BuildResult{
				Outcome:                 ResourceExhausted,
				ResourceExhaustedReason: "max_branches exceeded",
				Stats:                   stats,
			}
		}

		b := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entry, ok := b.PopHighestPriority()
		if !ok {
			b.Saturated = true
			open = append(open, b)
			continue
		}

		log.Trace("applying rule", "rule", rule.ID(entry.sf), "branch", b.ID)

		qctx := quantContextFor(b, entry)
		res := entry.fn(entry.sf, qctx)
		countApplication(&stats, entry.class)

		if len(res.Deltas) == 1 {
			for _, sf := range res.Deltas[0] {
				b.Add(sf)
			}
			trackMaxSize(&stats, b)
			if b.Closed {
				stats.Closures++
				closed = append(closed, b)
				continue
			}
			pending = append(pending, b)
			continue
		}

		for _, delta := range res.Deltas {
			child := b.clone(nextID)
			nextID++
			stats.BranchesCreated++
			last := entry.sf
			child.LastSplit = &last
			for _, sf := range delta {
				child.Add(sf)
			}
			trackMaxSize(&stats, child)
			if child.Closed {
				stats.Closures++
				closed = append(closed, child)
				continue
			}
			pending = append(pending, child)
		}
	}

	if e.options.EnableSubsumption {
		open, stats.SubsumptionEliminated = eliminateSubsumed(open)
	}

	stats.Elapsed = time.Since(start)
	if len(open) == 0 {
		return BuildResult{Outcome: Unsat, ClosedBranches: closed, Stats: stats}
	}
	return BuildResult{Outcome: Sat, OpenBranches: open, ClosedBranches: closed, Stats: stats}
}

func quantContextFor(b *Branch, entry queueEntry) *rule.QuantContext {
	if entry.target != nil {
		return &rule.QuantContext{Targets: []term.Const{*entry.target}}
	}
	if entry.class == rule.Delta {
		return &rule.QuantContext{FreshConstant: b.freshConstant}
	}
	return nil
}

func countApplication(stats *Stats, class rule.Class) {
	switch class {
	case rule.Alpha:
		stats.RuleApplicationsAlpha++
	case rule.Beta:
		stats.RuleApplicationsBeta++
	case rule.Delta:
		stats.RuleApplicationsDelta++
	case rule.Gamma:
		stats.RuleApplicationsGamma++
	}
}

func trackMaxSize(stats *Stats, b *Branch) {
	if b.Size() > stats.MaxBranchSize {
		stats.MaxBranchSize = b.Size()
	}
}

// eliminateSubsumed prunes any open branch whose signed-formula set is
// a (non-strict) superset of another's — per spec.md §4.4, "if branch
// A's signed-formula multiset is a subset of branch B's, B is
// redundant and may be pruned". Disabled by default; never changes
// the SAT/UNSAT verdict since it only discards redundant open
// branches, never the last witness of a verdict.
func eliminateSubsumed(branches []*Branch) ([]*Branch, int) {
	eliminated := 0
	keep := make([]bool, len(branches))
	for i := range branches {
		keep[i] = true
	}
	for i := range branches { // i is the candidate superset (B)
		if !keep[i] {
			continue
		}
		for j := range branches { // j is the candidate subset (A)
			if i == j || !keep[j] {
				continue
			}
			if branches[i].Subsumes(branches[j]) {
				keep[i] = false
				eliminated++
				break
			}
		}
	}
	var out []*Branch
	for i, k := range keep {
		if k {
			out = append(out, branches[i])
		}
	}
	return out, eliminated
}
