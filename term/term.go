// Package term implements the ground term language: constants and
// variables. The core requires only ground terms in predicate
// arguments; variables appear solely as quantifier-bound placeholders
// that substitution eliminates before a branch ever sees them.
package term

import "fmt"

// Term is either a Const or a Var.
type Term interface {
	fmt.Stringer
	termName() string
	// IsGround reports whether this term contains no variables.
	IsGround() bool
	// Equal reports structural equality.
	Equal(Term) bool
}

// Const is a ground term naming a single domain element. By the
// front-end parser's convention constants begin lowercase, but the
// core itself only enforces a non-empty name.
type Const struct {
	Name string
}

// NewConst constructs a constant, panicking on an empty name — callers
// inside this module never pass one; front-ends validate user input
// before reaching here.
func NewConst(name string) Const {
	if name == "" {
		panic("term: constant name must be non-empty")
	}
	return Const{Name: name}
}

func (c Const) String() string   { return c.Name }
func (c Const) termName() string { return c.Name }
func (c Const) IsGround() bool   { return true }
func (c Const) Equal(other Term) bool {
	o, ok := other.(Const)
	return ok && o.Name == c.Name
}

// Var is a variable bound by a restricted quantifier. By convention
// variables begin uppercase.
type Var struct {
	Name string
}

func NewVar(name string) Var {
	if name == "" {
		panic("term: variable name must be non-empty")
	}
	return Var{Name: name}
}

func (v Var) String() string   { return v.Name }
func (v Var) termName() string { return v.Name }
func (v Var) IsGround() bool   { return false }
func (v Var) Equal(other Term) bool {
	o, ok := other.(Var)
	return ok && o.Name == v.Name
}

// Substitute replaces every occurrence of the variable named target
// within t with replacement, returning t unchanged if t is not that
// variable (Const is always returned unchanged).
func Substitute(t Term, target Var, replacement Term) Term {
	if v, ok := t.(Var); ok && v.Name == target.Name {
		return replacement
	}
	return t
}
