// Package rule implements the tableau rule system of spec.md §4.3: a
// registry mapping (system, sign, formula shape) to an expansion that
// yields branch deltas. Rules are pure data-driven closures — no class
// hierarchy — per the re-architecture guidance of spec.md §9.
package rule

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"tableau/formula"
	"tableau/sign"
	"tableau/term"
	"tableau/truthvalue"
)

// Class is the rule's shape class, which also fixes its scheduling
// priority: α < β < δ < γ (lower value = applied earlier).
type Class int

const (
	Alpha Class = 1
	Beta  Class = 2
	Delta Class = 3
	Gamma Class = 4
)

func (c Class) String() string {
	switch c {
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Delta:
		return "delta"
	case Gamma:
		return "gamma"
	default:
		return "unknown"
	}
}

// Delta is one branch's worth of new signed formulas produced by a
// rule application.
type Delta []sign.SignedFormula

// Result is the outcome of applying a rule: one Delta means the rule
// is α-shaped (linear, no branching); two or more means β-shaped.
type Result struct {
	Class  Class
	Deltas []Delta
}

// QuantContext carries the branch-domain information that δ/γ rules
// need but ordinary propositional rules do not. Supplied by the
// tableau engine, never constructed by this package.
type QuantContext struct {
	// FreshConstant returns a constant not yet present in the branch's
	// domain, used by δ-rules. Nil for γ-rule invocations.
	FreshConstant func() term.Const
	// Targets lists the domain constants this single call should
	// instantiate against, used by γ-rules. The engine calls a γ rule
	// once per newly-available domain constant so that each
	// instantiation's branch split is independent; Targets therefore
	// always has length 1 when set.
	Targets []term.Const
}

// Func is the expansion function attached to a registry entry.
type Func func(sf sign.SignedFormula, ctx *QuantContext) Result

// key identifies a registry entry: the system, the sign designation,
// and a structural tag for the formula shape.
type key struct {
	system      sign.System
	designation sign.Designation
	shape       string
}

// ID returns a stable, readable slug for a registry entry — used in
// engine tracing and in diagnostics, canonicalized with strcase the
// way the teacher toolchain canonicalizes its own identifiers.
func (k key) ID() string {
	return strcase.ToSnake(fmt.Sprintf("%s_%s_%s", k.system, k.designation, k.shape))
}

var registry = map[key]struct {
	class Class
	fn    Func
}{}

func register(sys sign.System, d sign.Designation, shape string, class Class, fn Func) {
	registry[key{sys, d, shape}] = struct {
		class Class
		fn    Func
	}{class, fn}
}

// shapeOf returns the structural tag used to look up a rule, or "" for
// a bare predicate, which has no rule under any sign — it is a leaf
// the closure index watches directly. Not is always "Not" regardless
// of its operand's shape: the elimination rule is uniform (T:¬A⇒F:A
// for any A), so a negated compound reduces one Not-application at a
// time rather than being special-cased here. This also means
// negated literals (¬p) are not terminal: the Not rule must still
// fire to flip ¬p into a bare, sign-flipped p before the literal
// index can use it for closure, since closure compares whole formulas.
func shapeOf(f formula.Formula) string {
	switch f.(type) {
	case formula.Not:
		return "Not"
	case formula.And:
		return "And"
	case formula.Or:
		return "Or"
	case formula.Imp:
		return "Imp"
	case formula.RExists:
		return "RExists"
	case formula.RForall:
		return "RForall"
	default: // formula.Pred
		return ""
	}
}

// Lookup finds the rule for a signed formula, if any. It returns
// ok=false for literals and for any (sign, shape) combination with no
// registered expansion (e.g. F on a restricted quantifier — spec.md
// leaves this case unspecified; see DESIGN.md).
func Lookup(sf sign.SignedFormula) (Class, Func, bool) {
	shape := shapeOf(sf.Formula)
	if shape == "" {
		return 0, nil, false
	}
	k := key{sf.Sign.System, sf.Sign.Designation, shape}
	entry, ok := registry[k]
	if !ok {
		return 0, nil, false
	}
	return entry.class, entry.fn, true
}

func one(sys sign.System, sfs ...sign.SignedFormula) Result {
	return Result{Class: Alpha, Deltas: []Delta{Delta(sfs)}}
}

func split(class Class, deltas ...Delta) Result {
	return Result{Class: class, Deltas: deltas}
}

func init() {
	registerNegationRules()
	registerClassicalRules(sign.CPL)
	registerClassicalRules(sign.WK3)
	registerClassicalRules(sign.WKrQ)
	registerWK3UndefinedRules()
	registerWKrQEpistemicRules()
	registerRestrictedQuantifierRules()
}

// registerNegationRules wires T:¬A, F:¬A (every system), U:¬A (WK3),
// and the M/N duality negation (wKrQ), plus double negation.
func registerNegationRules() {
	for _, sys := range []sign.System{sign.CPL, sign.WK3, sign.WKrQ} {
		sysCopy := sys
		register(sysCopy, sign.T, "Not", Alpha, func(sf sign.SignedFormula, _ *QuantContext) Result {
			n := sf.Formula.(formula.Not)
			return one(sysCopy, sign.FSign(sysCopy, n.Operand))
		})
		register(sysCopy, sign.F, "Not", Alpha, func(sf sign.SignedFormula, _ *QuantContext) Result {
			n := sf.Formula.(formula.Not)
			return one(sysCopy, sign.TSign(sysCopy, n.Operand))
		})
	}

	// WK3: U:¬A ⇒ U:A (dual(U) = U).
	register(sign.WK3, sign.U, "Not", Alpha, func(sf sign.SignedFormula, _ *QuantContext) Result {
		n := sf.Formula.(formula.Not)
		return one(sign.WK3, sign.USign(n.Operand))
	})

	// wKrQ: M/N negation duality; T:¬A⇒F:A and F:¬A⇒T:A registered above.
	register(sign.WKrQ, sign.M, "Not", Alpha, func(sf sign.SignedFormula, _ *QuantContext) Result {
		n := sf.Formula.(formula.Not)
		return one(sign.WKrQ, sign.NSign(n.Operand))
	})
	register(sign.WKrQ, sign.N, "Not", Alpha, func(sf sign.SignedFormula, _ *QuantContext) Result {
		n := sf.Formula.(formula.Not)
		return one(sign.WKrQ, sign.MSign(n.Operand))
	})
}

// registerClassicalRules wires the shared CPL/WK3/wKrQ T/F rules for
// ∧, ∨, → (§4.3's "CPL and WK3 classical-sign rules (identical)";
// wKrQ's classical signs obey the same table).
func registerClassicalRules(sys sign.System) {
	register(sys, sign.T, "And", Alpha, func(sf sign.SignedFormula, _ *QuantContext) Result {
		a := sf.Formula.(formula.And)
		return one(sys, sign.TSign(sys, a.Left), sign.TSign(sys, a.Right))
	})
	register(sys, sign.F, "And", Beta, func(sf sign.SignedFormula, _ *QuantContext) Result {
		a := sf.Formula.(formula.And)
		return split(Beta, Delta{sign.FSign(sys, a.Left)}, Delta{sign.FSign(sys, a.Right)})
	})
	register(sys, sign.T, "Or", Beta, func(sf sign.SignedFormula, _ *QuantContext) Result {
		o := sf.Formula.(formula.Or)
		return split(Beta, Delta{sign.TSign(sys, o.Left)}, Delta{sign.TSign(sys, o.Right)})
	})
	register(sys, sign.F, "Or", Alpha, func(sf sign.SignedFormula, _ *QuantContext) Result {
		o := sf.Formula.(formula.Or)
		return one(sys, sign.FSign(sys, o.Left), sign.FSign(sys, o.Right))
	})
	register(sys, sign.T, "Imp", Beta, func(sf sign.SignedFormula, _ *QuantContext) Result {
		i := sf.Formula.(formula.Imp)
		return split(Beta, Delta{sign.FSign(sys, i.Left)}, Delta{sign.TSign(sys, i.Right)})
	})
	register(sys, sign.F, "Imp", Alpha, func(sf sign.SignedFormula, _ *QuantContext) Result {
		i := sf.Formula.(formula.Imp)
		return one(sys, sign.TSign(sys, i.Left), sign.FSign(sys, i.Right))
	})
}

// registerWK3UndefinedRules wires U on ∧/∨/→ by enumerating every
// minimal sign combination whose weak-Kleene result is e, per
// spec.md §4.3 and the §6.1 tables — not the source's single-case
// simplification.
func registerWK3UndefinedRules() {
	signsFor := func(d sign.Designation) sign.Sign { return sign.Sign{System: sign.WK3, Designation: d} }
	definite := []sign.Designation{sign.T, sign.F}

	// U:(A∧B): preimages of e under weak-Kleene ∧ restricted to
	// {T,F,U}×{T,F,U}: every pair where at least one side is U.
	register(sign.WK3, sign.U, "And", Beta, func(sf sign.SignedFormula, _ *QuantContext) Result {
		a := sf.Formula.(formula.And)
		var deltas []Delta
		deltas = append(deltas, Delta{{Sign: signsFor(sign.U), Formula: a.Left}, {Sign: signsFor(sign.U), Formula: a.Right}})
		for _, d := range definite {
			deltas = append(deltas, Delta{{Sign: signsFor(d), Formula: a.Left}, {Sign: signsFor(sign.U), Formula: a.Right}})
			deltas = append(deltas, Delta{{Sign: signsFor(sign.U), Formula: a.Left}, {Sign: signsFor(d), Formula: a.Right}})
		}
		return split(Beta, deltas...)
	})

	register(sign.WK3, sign.U, "Or", Beta, func(sf sign.SignedFormula, _ *QuantContext) Result {
		o := sf.Formula.(formula.Or)
		var deltas []Delta
		deltas = append(deltas, Delta{{Sign: signsFor(sign.U), Formula: o.Left}, {Sign: signsFor(sign.U), Formula: o.Right}})
		for _, d := range definite {
			deltas = append(deltas, Delta{{Sign: signsFor(d), Formula: o.Left}, {Sign: signsFor(sign.U), Formula: o.Right}})
			deltas = append(deltas, Delta{{Sign: signsFor(sign.U), Formula: o.Left}, {Sign: signsFor(d), Formula: o.Right}})
		}
		return split(Beta, deltas...)
	})

	// U:(A→B) ≡ U:(¬A∨B) under weak Kleene, so its preimages mirror
	// U:∨ with the left operand negated in truth (not in sign: a T/F
	// sign on A still pins A's definite value, ¬ only matters for the
	// *value* fed into →, which the weak-Kleene table already encodes
	// directly — so the sign-level enumeration is identical in shape
	// to ∨'s, reusing the implication table of §6.1 instead of ∨'s).
	register(sign.WK3, sign.U, "Imp", Beta, func(sf sign.SignedFormula, _ *QuantContext) Result {
		i := sf.Formula.(formula.Imp)
		var deltas []Delta
		deltas = append(deltas, Delta{{Sign: signsFor(sign.U), Formula: i.Left}, {Sign: signsFor(sign.U), Formula: i.Right}})
		for _, d := range definite {
			deltas = append(deltas, Delta{{Sign: signsFor(d), Formula: i.Left}, {Sign: signsFor(sign.U), Formula: i.Right}})
			deltas = append(deltas, Delta{{Sign: signsFor(sign.U), Formula: i.Left}, {Sign: signsFor(d), Formula: i.Right}})
		}
		return split(Beta, deltas...)
	})
}

// registerWKrQEpistemicRules wires M/N on ∧/∨/→ per spec.md §4.3's
// wKrQ table.
func registerWKrQEpistemicRules() {
	register(sign.WKrQ, sign.M, "And", Alpha, func(sf sign.SignedFormula, _ *QuantContext) Result {
		a := sf.Formula.(formula.And)
		return one(sign.WKrQ, sign.MSign(a.Left), sign.MSign(a.Right))
	})
	register(sign.WKrQ, sign.N, "And", Beta, func(sf sign.SignedFormula, _ *QuantContext) Result {
		a := sf.Formula.(formula.And)
		return split(Beta, Delta{sign.NSign(a.Left)}, Delta{sign.NSign(a.Right)})
	})
	register(sign.WKrQ, sign.M, "Or", Beta, func(sf sign.SignedFormula, _ *QuantContext) Result {
		o := sf.Formula.(formula.Or)
		return split(Beta, Delta{sign.MSign(o.Left)}, Delta{sign.MSign(o.Right)})
	})
	register(sign.WKrQ, sign.N, "Or", Alpha, func(sf sign.SignedFormula, _ *QuantContext) Result {
		o := sf.Formula.(formula.Or)
		return one(sign.WKrQ, sign.NSign(o.Left), sign.NSign(o.Right))
	})
	register(sign.WKrQ, sign.M, "Imp", Beta, func(sf sign.SignedFormula, _ *QuantContext) Result {
		i := sf.Formula.(formula.Imp)
		return split(Beta, Delta{sign.NSign(i.Left)}, Delta{sign.MSign(i.Right)})
	})
	register(sign.WKrQ, sign.N, "Imp", Alpha, func(sf sign.SignedFormula, _ *QuantContext) Result {
		i := sf.Formula.(formula.Imp)
		return one(sign.WKrQ, sign.MSign(i.Left), sign.NSign(i.Right))
	})
}

// registerRestrictedQuantifierRules wires the δ/γ rules of spec.md
// §4.3. T:∃/M:∃/N:∀ are δ-style (fresh constant, single delta signing
// both guard and body with the outer sign). T:∀/M:∀/N:∃ are γ-style
// (per-domain-constant β-split between a definite guard failure and
// an outer-signed body). F on a restricted quantifier has no
// registered rule — see DESIGN.md for why this is a deliberate,
// documented gap rather than an oversight.
func registerRestrictedQuantifierRules() {
	deltaStyle := func(sys sign.System, d sign.Designation) Func {
		return func(sf sign.SignedFormula, ctx *QuantContext) Result {
			r := sf.Formula.(formula.RExists)
			c := ctx.FreshConstant()
			guard := r.Guard.Substitute(r.Var, c)
			body := r.Body.Substitute(r.Var, c)
			return one(sys,
				sign.SignedFormula{Sign: sign.Sign{System: sys, Designation: d}, Formula: guard},
				sign.SignedFormula{Sign: sign.Sign{System: sys, Designation: d}, Formula: body},
			)
		}
	}
	deltaStyleForall := func(sys sign.System, d sign.Designation) Func {
		return func(sf sign.SignedFormula, ctx *QuantContext) Result {
			r := sf.Formula.(formula.RForall)
			c := ctx.FreshConstant()
			guard := r.Guard.Substitute(r.Var, c)
			body := r.Body.Substitute(r.Var, c)
			return one(sys,
				sign.SignedFormula{Sign: sign.Sign{System: sys, Designation: d}, Formula: guard},
				sign.SignedFormula{Sign: sign.Sign{System: sys, Designation: d}, Formula: body},
			)
		}
	}
	gammaStyleForall := func(sys sign.System, bodyDesignation sign.Designation) Func {
		return func(sf sign.SignedFormula, ctx *QuantContext) Result {
			r := sf.Formula.(formula.RForall)
			c := ctx.Targets[0]
			guard := r.Guard.Substitute(r.Var, c)
			body := r.Body.Substitute(r.Var, c)
			return split(Beta,
				Delta{sign.FSign(sys, guard)},
				Delta{{Sign: sign.Sign{System: sys, Designation: bodyDesignation}, Formula: body}},
			)
		}
	}
	gammaStyleExists := func(sys sign.System, bodyDesignation sign.Designation) Func {
		return func(sf sign.SignedFormula, ctx *QuantContext) Result {
			r := sf.Formula.(formula.RExists)
			c := ctx.Targets[0]
			guard := r.Guard.Substitute(r.Var, c)
			body := r.Body.Substitute(r.Var, c)
			return split(Beta,
				Delta{sign.FSign(sys, guard)},
				Delta{{Sign: sign.Sign{System: sys, Designation: bodyDesignation}, Formula: body}},
			)
		}
	}

	for _, sys := range []sign.System{sign.CPL, sign.WK3, sign.WKrQ} {
		register(sys, sign.T, "RExists", Delta, deltaStyle(sys, sign.T))
		register(sys, sign.T, "RForall", Gamma, gammaStyleForall(sys, sign.T))
	}
	register(sign.WKrQ, sign.M, "RExists", Delta, deltaStyle(sign.WKrQ, sign.M))
	register(sign.WKrQ, sign.N, "RForall", Delta, deltaStyleForall(sign.WKrQ, sign.N))
	register(sign.WKrQ, sign.M, "RForall", Gamma, gammaStyleForall(sign.WKrQ, sign.M))
	register(sign.WKrQ, sign.N, "RExists", Gamma, gammaStyleExists(sign.WKrQ, sign.N))
}

// ID returns a stable, snake_case slug identifying which registry
// entry would handle sf — used by the engine's trace logging so a
// trace line can name the rule without printing the whole formula.
// Returns "" if sf has no registered rule.
func ID(sf sign.SignedFormula) string {
	shape := shapeOf(sf.Formula)
	if shape == "" {
		return ""
	}
	k := key{sf.Sign.System, sf.Sign.Designation, shape}
	if _, ok := registry[k]; !ok {
		return ""
	}
	return k.ID()
}

// IsQuantifierShape reports whether a formula is a restricted
// quantifier. The engine does not call it: it picks a *QuantContext
// from the queue entry's rule class and γ target instead.
func IsQuantifierShape(f formula.Formula) bool {
	switch f.(type) {
	case formula.RExists, formula.RForall:
		return true
	default:
		return false
	}
}

// weakKleeneSanityCheck reports whether op maps (a, b) to e under the
// truthvalue package's tables, the property the enumerated U-preimages
// above are built on. Nothing in the module calls it.
func weakKleeneSanityCheck(op func(truthvalue.Value, truthvalue.Value) truthvalue.Value, a, b truthvalue.Value) bool {
	return op(a, b) == truthvalue.Undefined
}
