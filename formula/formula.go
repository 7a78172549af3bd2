// Package formula implements the abstract syntax of propositional and
// restricted-quantifier formulas: atoms/predicates, negation,
// conjunction, disjunction, implication, and the two restricted
// quantifier forms from Ferguson's wKrQ.
package formula

import (
	"fmt"
	"sort"
	"strings"

	"tableau/term"
)

// Formula is a node in the formula AST. All variants are immutable
// after construction and compare by structural equality.
type Formula interface {
	fmt.Stringer
	// IsAtomic reports whether this is a Pred node.
	IsAtomic() bool
	// IsLiteral reports whether this is an atom or a negated atom.
	IsLiteral() bool
	// FreeVars returns the names of all free (unbound) variables.
	FreeVars() map[string]struct{}
	// Ground reports whether the formula contains no free variables.
	Ground() bool
	// Substitute replaces every free occurrence of v with t.
	Substitute(v term.Var, t term.Term) Formula
	// Equal reports structural equality.
	Equal(Formula) bool
	// Depth returns the formula's syntactic nesting depth, used for
	// tie-breaking rule-application priority within a priority class.
	Depth() int
}

// Pred is an n-ary predicate application R(t1,...,tn); n=0 is a
// propositional atom.
type Pred struct {
	Name string
	Args []term.Term
}

// NewPred constructs a predicate application. An empty name is a
// construction-time error the caller (parser or front end) must
// reject before reaching here; the core itself does not validate.
func NewPred(name string, args ...term.Term) Pred {
	return Pred{Name: name, Args: args}
}

func (p Pred) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(parts, ", "))
}

func (p Pred) IsAtomic() bool { return true }
func (p Pred) IsLiteral() bool { return true }
func (p Pred) Depth() int      { return 0 }

func (p Pred) Ground() bool {
	for _, a := range p.Args {
		if !a.IsGround() {
			return false
		}
	}
	return true
}

func (p Pred) FreeVars() map[string]struct{} {
	vars := map[string]struct{}{}
	for _, a := range p.Args {
		if v, ok := a.(term.Var); ok {
			vars[v.Name] = struct{}{}
		}
	}
	return vars
}

func (p Pred) Substitute(v term.Var, t term.Term) Formula {
	newArgs := make([]term.Term, len(p.Args))
	changed := false
	for i, a := range p.Args {
		sub := term.Substitute(a, v, t)
		if !sub.Equal(a) {
			changed = true
		}
		newArgs[i] = sub
	}
	if !changed {
		return p
	}
	return Pred{Name: p.Name, Args: newArgs}
}

func (p Pred) Equal(other Formula) bool {
	o, ok := other.(Pred)
	if !ok || o.Name != p.Name || len(o.Args) != len(p.Args) {
		return false
	}
	for i := range p.Args {
		if !p.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Not is logical negation ¬φ.
type Not struct {
	Operand Formula
}

func (n Not) String() string {
	if n.Operand.IsAtomic() {
		return "¬" + n.Operand.String()
	}
	return "¬(" + n.Operand.String() + ")"
}

func (n Not) IsAtomic() bool  { return false }
func (n Not) IsLiteral() bool { return n.Operand.IsAtomic() }
func (n Not) Ground() bool    { return n.Operand.Ground() }
func (n Not) FreeVars() map[string]struct{} { return n.Operand.FreeVars() }
func (n Not) Depth() int      { return n.Operand.Depth() + 1 }

func (n Not) Substitute(v term.Var, t term.Term) Formula {
	return Not{Operand: n.Operand.Substitute(v, t)}
}

func (n Not) Equal(other Formula) bool {
	o, ok := other.(Not)
	return ok && n.Operand.Equal(o.Operand)
}

// binary is the shared shape of And/Or/Imp.
type binary struct {
	Left, Right Formula
}

func (b binary) Ground() bool { return b.Left.Ground() && b.Right.Ground() }
func (b binary) IsAtomic() bool  { return false }
func (b binary) IsLiteral() bool { return false }
func (b binary) Depth() int {
	l, r := b.Left.Depth(), b.Right.Depth()
	if l > r {
		return l + 1
	}
	return r + 1
}

func (b binary) FreeVars() map[string]struct{} {
	vars := b.Left.FreeVars()
	for k := range b.Right.FreeVars() {
		vars[k] = struct{}{}
	}
	return vars
}

// And is conjunction A∧B.
type And struct{ binary }

func NewAnd(l, r Formula) And { return And{binary{l, r}} }
func (a And) String() string  { return fmt.Sprintf("(%s ∧ %s)", a.Left, a.Right) }
func (a And) Substitute(v term.Var, t term.Term) Formula {
	return NewAnd(a.Left.Substitute(v, t), a.Right.Substitute(v, t))
}
func (a And) Equal(other Formula) bool {
	o, ok := other.(And)
	return ok && a.Left.Equal(o.Left) && a.Right.Equal(o.Right)
}

// Or is disjunction A∨B.
type Or struct{ binary }

func NewOr(l, r Formula) Or  { return Or{binary{l, r}} }
func (o Or) String() string { return fmt.Sprintf("(%s ∨ %s)", o.Left, o.Right) }
func (o Or) Substitute(v term.Var, t term.Term) Formula {
	return NewOr(o.Left.Substitute(v, t), o.Right.Substitute(v, t))
}
func (o Or) Equal(other Formula) bool {
	x, ok := other.(Or)
	return ok && o.Left.Equal(x.Left) && o.Right.Equal(x.Right)
}

// Imp is implication A→B.
type Imp struct{ binary }

func NewImp(l, r Formula) Imp { return Imp{binary{l, r}} }
func (i Imp) String() string  { return fmt.Sprintf("(%s → %s)", i.Left, i.Right) }
func (i Imp) Substitute(v term.Var, t term.Term) Formula {
	return NewImp(i.Left.Substitute(v, t), i.Right.Substitute(v, t))
}
func (i Imp) Equal(other Formula) bool {
	o, ok := other.(Imp)
	return ok && i.Left.Equal(o.Left) && i.Right.Equal(o.Right)
}

// restricted is the shared shape of RExists/RForall: a bound variable,
// a guard (antecedent) and a body (consequent) — [Qx guard] body.
type restricted struct {
	Var    term.Var
	Guard  Formula
	Body   Formula
}

func (r restricted) IsAtomic() bool  { return false }
func (r restricted) IsLiteral() bool { return false }
func (r restricted) Ground() bool    { return len(r.FreeVars()) == 0 }
func (r restricted) Depth() int {
	g, b := r.Guard.Depth(), r.Body.Depth()
	if g > b {
		return g + 1
	}
	return b + 1
}

func (r restricted) FreeVars() map[string]struct{} {
	vars := map[string]struct{}{}
	for k := range r.Guard.FreeVars() {
		if k != r.Var.Name {
			vars[k] = struct{}{}
		}
	}
	for k := range r.Body.FreeVars() {
		if k != r.Var.Name {
			vars[k] = struct{}{}
		}
	}
	return vars
}

// RExists represents the restricted existential [∃x φ(x)]ψ(x).
type RExists struct{ restricted }

func NewRExists(v term.Var, guard, body Formula) RExists {
	return RExists{restricted{Var: v, Guard: guard, Body: body}}
}

func (r RExists) String() string {
	return fmt.Sprintf("[∃%s %s]%s", r.Var, r.Guard, r.Body)
}

func (r RExists) Substitute(v term.Var, t term.Term) Formula {
	if v.Name == r.Var.Name {
		return r
	}
	return NewRExists(r.Var, r.Guard.Substitute(v, t), r.Body.Substitute(v, t))
}

func (r RExists) Equal(other Formula) bool {
	o, ok := other.(RExists)
	return ok && r.Var.Equal(o.Var) && r.Guard.Equal(o.Guard) && r.Body.Equal(o.Body)
}

// RForall represents the restricted universal [∀x φ(x)]ψ(x).
type RForall struct{ restricted }

func NewRForall(v term.Var, guard, body Formula) RForall {
	return RForall{restricted{Var: v, Guard: guard, Body: body}}
}

func (r RForall) String() string {
	return fmt.Sprintf("[∀%s %s]%s", r.Var, r.Guard, r.Body)
}

func (r RForall) Substitute(v term.Var, t term.Term) Formula {
	if v.Name == r.Var.Name {
		return r
	}
	return NewRForall(r.Var, r.Guard.Substitute(v, t), r.Body.Substitute(v, t))
}

func (r RForall) Equal(other Formula) bool {
	o, ok := other.(RForall)
	return ok && r.Var.Equal(o.Var) && r.Guard.Equal(o.Guard) && r.Body.Equal(o.Body)
}

// SortedFreeVars returns FreeVars in deterministic order, for
// reproducible diagnostics and tests.
func SortedFreeVars(f Formula) []string {
	vars := f.FreeVars()
	out := make([]string, 0, len(vars))
	for v := range vars {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
