package tableau

import (
	"context"

	coreerrors "tableau/errors"
	"tableau/formula"
	"tableau/internal/engine"
	"tableau/model"
	"tableau/sign"
)

// maxCombinatorialFormulas bounds the {T,U} / {T,M} sign-combination
// search spec.md §4.7 describes for a single formula ("SAT(T:φ ∨
// U:φ)"), generalised here to a list. Beyond this many formulas the
// search falls back to the two extreme combinations (all-secondary,
// all-T) rather than enumerating 2^n combinations; this is a
// documented, sound-but-incomplete degradation (see DESIGN.md).
const maxCombinatorialFormulas = 14

// Facade is the entry point for spec.md §4.7's inference operations.
// It owns a query cache with its own lifecycle: construct with New,
// use, discard. The zero value is not usable; call New.
type Facade struct {
	opts  Options
	cache *cacheType
}

// New constructs a Facade. A nil-returning cache is substituted when
// opts.EnableCaching is false, so cache lookups are always safe to
// call unconditionally.
func New(opts Options) *Facade {
	f := &Facade{opts: opts}
	if opts.EnableCaching {
		f.cache = newCache(opts.CacheSize)
	}
	return f
}

// secondarySignForSat and secondarySignForTheorem return the
// non-classical sign each system contributes to
// the SAT/theorem combinatorics: WK3's U, wKrQ's M (for SAT) or N (for
// theorem-hood). CPL has none — it always runs the classical {T}/{F}
// case alone.
func secondarySignForSat(sys sign.System, f formula.Formula) (sign.SignedFormula, bool) {
	switch sys {
	case sign.WK3:
		return sign.USign(f), true
	case sign.WKrQ:
		return sign.MSign(f), true
	default:
		return sign.SignedFormula{}, false
	}
}

func secondarySignForTheorem(sys sign.System, f formula.Formula) (sign.SignedFormula, bool) {
	switch sys {
	case sign.WK3:
		return sign.USign(f), true
	case sign.WKrQ:
		return sign.NSign(f), true
	default:
		return sign.SignedFormula{}, false
	}
}

// satCombinations enumerates, per spec.md §4.7, every way of choosing
// T or the system's secondary sign for each formula, capped at
// maxCombinatorialFormulas; beyond the cap only the all-T and
// all-secondary combinations are tried.
func satCombinations(sys sign.System, formulas []formula.Formula, secondary func(sign.System, formula.Formula) (sign.SignedFormula, bool)) [][]sign.SignedFormula {
	n := len(formulas)
	primary := make([]sign.SignedFormula, n)
	alt := make([]sign.SignedFormula, n)
	hasAlt := false
	for i, f := range formulas {
		primary[i] = sign.TSign(sys, f)
		if s, ok := secondary(sys, f); ok {
			alt[i] = s
			hasAlt = true
		} else {
			alt[i] = primary[i]
		}
	}
	if !hasAlt {
		return [][]sign.SignedFormula{primary}
	}
	if n > maxCombinatorialFormulas {
		return [][]sign.SignedFormula{primary, alt}
	}
	combos := make([][]sign.SignedFormula, 0, 1<<uint(n))
	for mask := 0; mask < (1 << uint(n)); mask++ {
		combo := make([]sign.SignedFormula, n)
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				combo[i] = alt[i]
			} else {
				combo[i] = primary[i]
			}
		}
		combos = append(combos, combo)
	}
	return combos
}

func (fc *Facade) run(sys sign.System, initial []sign.SignedFormula) engine.BuildResult {
	e := engine.New(sys, fc.opts.engineOptions())
	return e.Build(context.Background(), initial)
}

// IsSatisfiable implements spec.md §4.7: CPL tests SAT(⋃T:φ); WK3 and
// wKrQ additionally try the system's secondary sign (U, M) per
// formula, since a formula that is not classically true may still be
// satisfiable as undefined/possible.
func (fc *Facade) IsSatisfiable(sys sign.System, formulas []formula.Formula) (bool, Stats, error) {
	if cached, ok := fc.lookup(sys, formulas, "sat"); ok {
		return cached.satisfiable, cached.stats, nil
	}
	var combined Stats
	for _, combo := range satCombinations(sys, formulas, secondarySignForSat) {
		res := fc.run(sys, combo)
		combined = mergeStats(combined, res.Stats)
		if res.Outcome == engine.Sat {
			fc.store(sys, formulas, "sat", cacheEntry{satisfiable: true, stats: combined})
			return true, combined, nil
		}
	}
	fc.store(sys, formulas, "sat", cacheEntry{satisfiable: false, stats: combined})
	return false, combined, nil
}

// IsTheorem implements spec.md §4.7: φ is a theorem iff its negation
// is unsatisfiable under every admissible reading of F — classically
// just F:φ, in WK3/wKrQ also the system's secondary sign (U, N) since
// an undefined/possible counter-reading also defeats theoremhood.
func (fc *Facade) IsTheorem(sys sign.System, f formula.Formula) (bool, Stats, error) {
	if cached, ok := fc.lookup(sys, []formula.Formula{f}, "theorem"); ok {
		return cached.satisfiable, cached.stats, nil
	}
	var combined Stats
	theorem := true
	counterSigns := []sign.SignedFormula{sign.FSign(sys, f)}
	if s, ok := secondarySignForTheorem(sys, f); ok {
		counterSigns = append(counterSigns, s)
	}
	for _, s := range counterSigns {
		res := fc.run(sys, []sign.SignedFormula{s})
		combined = mergeStats(combined, res.Stats)
		if res.Outcome != engine.Unsat {
			theorem = false
		}
	}
	fc.store(sys, []formula.Formula{f}, "theorem", cacheEntry{satisfiable: theorem, stats: combined})
	return theorem, combined, nil
}

// FindModels builds a tableau from a direct T-sign on every formula
// and extracts up to max models (0 means unbounded) via the model
// package. Weak-Kleene gaps and epistemic uncertainty surface through
// the extracted AtomValue.Sign/Value, not through the initial signs
// chosen here — see model.Extract.
func (fc *Facade) FindModels(sys sign.System, formulas []formula.Formula, max int) ([]model.Model, Stats, error) {
	initial := make([]sign.SignedFormula, len(formulas))
	for i, f := range formulas {
		initial[i] = sign.TSign(sys, f)
	}
	res := fc.run(sys, initial)
	if res.Outcome != engine.Sat {
		return nil, res.Stats, nil
	}
	models, err := model.ExtractAll(res.OpenBranches, sys, initial, max)
	if err != nil {
		return nil, res.Stats, err
	}
	return models, res.Stats, nil
}

// CompareSystems runs IsSatisfiable for the same formula list under
// all three systems, per spec.md §4.7's cross-system comparison. A
// failure in one system does not abort the others — every system
// still runs, and any failures are aggregated via errors.Append so a
// caller sees all of them at once rather than just the first.
func (fc *Facade) CompareSystems(formulas []formula.Formula) (map[sign.System]bool, error) {
	out := make(map[sign.System]bool, 3)
	var aggErr error
	for _, sys := range []sign.System{sign.CPL, sign.WK3, sign.WKrQ} {
		sat, _, err := fc.IsSatisfiable(sys, formulas)
		if err != nil {
			aggErr = coreerrors.Append(aggErr, err)
			continue
		}
		out[sys] = sat
	}
	return out, aggErr
}

// Analyze is SPEC_FULL.md's supplemented one-call operation: it
// reports satisfiability, theorem-hood and a handful of models for a
// single formula in one pass. Its Stats report the total cost of every
// tableau build it actually runs (the satisfiability build(s), the
// theorem-hood build(s), and — when satisfiable — model extraction),
// not just the first two queries.
func (fc *Facade) Analyze(sys sign.System, f formula.Formula) (AnalyzeResult, error) {
	sat, satStats, err := fc.IsSatisfiable(sys, []formula.Formula{f})
	if err != nil {
		return AnalyzeResult{}, err
	}
	theorem, theoremStats, err := fc.IsTheorem(sys, f)
	if err != nil {
		return AnalyzeResult{}, err
	}
	combined := mergeStats(satStats, theoremStats)
	var models []model.Model
	if sat {
		var modelStats Stats
		models, modelStats, err = fc.FindModels(sys, []formula.Formula{f}, 5)
		if err != nil {
			return AnalyzeResult{}, err
		}
		combined = mergeStats(combined, modelStats)
	}
	return AnalyzeResult{
		Satisfiable: sat,
		Theorem:     theorem,
		Models:      models,
		Stats:       combined,
	}, nil
}

func mergeStats(a, b Stats) Stats {
	return Stats{
		RuleApplicationsAlpha: a.RuleApplicationsAlpha + b.RuleApplicationsAlpha,
		RuleApplicationsBeta:  a.RuleApplicationsBeta + b.RuleApplicationsBeta,
		RuleApplicationsDelta: a.RuleApplicationsDelta + b.RuleApplicationsDelta,
		RuleApplicationsGamma: a.RuleApplicationsGamma + b.RuleApplicationsGamma,
		BranchesCreated:       a.BranchesCreated + b.BranchesCreated,
		ClosureChecks:         a.ClosureChecks + b.ClosureChecks,
		Closures:              a.Closures + b.Closures,
		SubsumptionEliminated: a.SubsumptionEliminated + b.SubsumptionEliminated,
		MaxBranchSize:         maxInt(a.MaxBranchSize, b.MaxBranchSize),
		Elapsed:               a.Elapsed + b.Elapsed,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// package-level convenience wrappers, for callers who do not need a
// cache across calls — spec.md §4.7 names these as bare operations.

// IsSatisfiable runs a single-shot Facade with default options.
func IsSatisfiable(sys sign.System, formulas []formula.Formula) (bool, Stats, error) {
	return New(DefaultOptions()).IsSatisfiable(sys, formulas)
}

// IsTheorem runs a single-shot Facade with default options.
func IsTheorem(sys sign.System, f formula.Formula) (bool, Stats, error) {
	return New(DefaultOptions()).IsTheorem(sys, f)
}

// FindModels runs a single-shot Facade with default options.
func FindModels(sys sign.System, formulas []formula.Formula, max int) ([]model.Model, Stats, error) {
	return New(DefaultOptions()).FindModels(sys, formulas, max)
}

// CompareSystems runs a single-shot Facade with default options.
func CompareSystems(formulas []formula.Formula) (map[sign.System]bool, error) {
	return New(DefaultOptions()).CompareSystems(formulas)
}

// Analyze runs a single-shot Facade with default options.
func Analyze(sys sign.System, f formula.Formula) (AnalyzeResult, error) {
	return New(DefaultOptions()).Analyze(sys, f)
}
