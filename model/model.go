// Package model implements model extraction from a saturated open
// tableau branch, per spec.md §4.5: a valuation for propositional
// atoms, or a finite Herbrand-style interpretation when restricted
// quantifiers are in play.
package model

import (
	"fmt"
	"sort"

	coreerrors "tableau/errors"
	"tableau/formula"
	"tableau/internal/engine"
	"tableau/sign"
	"tableau/term"
	"tableau/truthvalue"
)

// AtomValue is the value assigned to one ground atomic formula,
// carrying both the projected truth value and the sign that produced
// it — the sign is kept so callers can distinguish a WK3 gap (U) from
// wKrQ epistemic uncertainty (M/N) even though both project to e
// (spec.md §4.2's "lossy projection" note).
type AtomValue struct {
	Value truthvalue.Value
	Sign  sign.Designation
	Set   bool // false for atoms reporting the canonical default, not an explicit branch sign
}

// Model is the result of extracting a valuation from one open,
// saturated branch.
type Model struct {
	System  sign.System
	Domain  []term.Const
	atoms   map[string]AtomValue
	defVal  truthvalue.Value
}

// Default returns the canonical fall-through value for atoms the
// branch never mentions: f for CPL, e for WK3/wKrQ (spec.md §4.5).
func Default(sys sign.System) truthvalue.Value {
	if sys == sign.CPL {
		return truthvalue.False
	}
	return truthvalue.Undefined
}

// Lookup returns the value assigned to a ground atomic formula,
// falling back to the model's canonical default when the branch never
// mentioned it.
func (m Model) Lookup(p formula.Pred) AtomValue {
	if v, ok := m.atoms[p.String()]; ok {
		return v
	}
	return AtomValue{Value: m.defVal, Set: false}
}

// Atoms returns every explicitly-assigned atom in deterministic order,
// for printing and testing.
func (m Model) Atoms() []string {
	out := make([]string, 0, len(m.atoms))
	for k := range m.atoms {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (m Model) String() string {
	out := fmt.Sprintf("Model[%s]", m.System)
	for _, k := range m.Atoms() {
		out += fmt.Sprintf(" %s=%s", k, m.atoms[k].Value)
	}
	return out
}

// Extract reads an open, saturated branch and produces a Model,
// verifying as a post-condition that the model satisfies every one of
// the query's initial signed formulas (spec.md §4.5, final paragraph).
// A post-condition failure is an engine bug, surfaced as
// InternalInvariantViolated rather than guessed past.
func Extract(b *engine.Branch, sys sign.System, initial []sign.SignedFormula) (Model, error) {
	m := Model{
		System: sys,
		Domain: b.Domain(),
		atoms:  map[string]AtomValue{},
		defVal: Default(sys),
	}

	type bucket struct {
		formula formula.Pred
		signs   map[sign.Designation]bool
	}
	buckets := map[string]*bucket{}
	var order []string

	for _, sf := range b.Formulas() {
		p, ok := sf.Formula.(formula.Pred)
		if !ok {
			continue
		}
		key := p.String()
		bk, ok := buckets[key]
		if !ok {
			bk = &bucket{formula: p, signs: map[sign.Designation]bool{}}
			buckets[key] = bk
			order = append(order, key)
		}
		bk.signs[sf.Sign.Designation] = true
	}

	for _, key := range order {
		bk := buckets[key]
		m.atoms[key] = decide(bk.signs)
	}

	for _, sf := range initial {
		if err := verify(m, sf); err != nil {
			return Model{}, err
		}
	}

	return m, nil
}

// ExtractAll extracts a model from every open branch in a build
// result's OpenBranches, in the engine's own (deterministic)
// discovery order, up to max models (max<=0 means unbounded).
func ExtractAll(branches []*engine.Branch, sys sign.System, initial []sign.SignedFormula, max int) ([]Model, error) {
	var out []Model
	for _, b := range branches {
		if max > 0 && len(out) >= max {
			break
		}
		m, err := Extract(b, sys, initial)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// decide applies spec.md §4.5 step 3's priority: T > F > U > (M or N,
// collapsing to e with the tag preserved) > default (handled by the
// caller, via AtomValue.Set == false).
func decide(signs map[sign.Designation]bool) AtomValue {
	switch {
	case signs[sign.T]:
		return AtomValue{Value: truthvalue.True, Sign: sign.T, Set: true}
	case signs[sign.F]:
		return AtomValue{Value: truthvalue.False, Sign: sign.F, Set: true}
	case signs[sign.U]:
		return AtomValue{Value: truthvalue.Undefined, Sign: sign.U, Set: true}
	case signs[sign.M]:
		return AtomValue{Value: truthvalue.Undefined, Sign: sign.M, Set: true}
	case signs[sign.N]:
		return AtomValue{Value: truthvalue.Undefined, Sign: sign.N, Set: true}
	default:
		return AtomValue{Set: false}
	}
}

// Evaluate computes f's weak-Kleene truth value under m. Restricted
// quantifiers are evaluated over m's finite domain directly (the ∃̌/∀̌
// truth function applied to the model), independent of whatever rule
// search produced the branch — see DESIGN.md's note on keeping
// model-side quantifier evaluation a pure function of the model.
func Evaluate(m Model, f formula.Formula) truthvalue.Value {
	switch v := f.(type) {
	case formula.Pred:
		return m.Lookup(v).orDefault(m.defVal)
	case formula.Not:
		return truthvalue.Not(Evaluate(m, v.Operand))
	case formula.And:
		return truthvalue.And(Evaluate(m, v.Left), Evaluate(m, v.Right))
	case formula.Or:
		return truthvalue.Or(Evaluate(m, v.Left), Evaluate(m, v.Right))
	case formula.Imp:
		return truthvalue.Implies(Evaluate(m, v.Left), Evaluate(m, v.Right))
	case formula.RExists:
		return evaluateExists(m, v)
	case formula.RForall:
		return evaluateForall(m, v)
	default:
		return truthvalue.Undefined
	}
}

func (a AtomValue) orDefault(def truthvalue.Value) truthvalue.Value {
	if !a.Set {
		return def
	}
	return a.Value
}

func evaluateExists(m Model, r formula.RExists) truthvalue.Value {
	acc := truthvalue.False
	for _, c := range m.Domain {
		guard := Evaluate(m, r.Guard.Substitute(r.Var, c))
		body := Evaluate(m, r.Body.Substitute(r.Var, c))
		acc = truthvalue.Or(acc, truthvalue.And(guard, body))
	}
	return acc
}

func evaluateForall(m Model, r formula.RForall) truthvalue.Value {
	acc := truthvalue.True
	for _, c := range m.Domain {
		guard := Evaluate(m, r.Guard.Substitute(r.Var, c))
		body := Evaluate(m, r.Body.Substitute(r.Var, c))
		acc = truthvalue.And(acc, truthvalue.Implies(guard, body))
	}
	return acc
}

// verify checks that m accepts sf under spec.md §4.5's sign
// acceptance rules.
func verify(m Model, sf sign.SignedFormula) error {
	v := Evaluate(m, sf.Formula)
	ok := false
	switch sf.Sign.Designation {
	case sign.T:
		ok = v == truthvalue.True
	case sign.F:
		ok = v == truthvalue.False
	case sign.U:
		ok = v == truthvalue.Undefined
	case sign.M:
		ok = v == truthvalue.True || v == truthvalue.Undefined
	case sign.N:
		ok = v == truthvalue.False || v == truthvalue.Undefined
	}
	if !ok {
		return coreerrors.InternalInvariantViolated(fmt.Sprintf(
			"model does not satisfy %s (evaluated to %s)", sf, v))
	}
	return nil
}
