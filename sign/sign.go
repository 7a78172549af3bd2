// Package sign implements the system-parameterised sign algebra of
// spec.md §3/§4.2: CPL's {T,F}, WK3's {T,F,U}, and wKrQ's {T,F,M,N},
// plus the SignedFormula pairing and the contradiction/dual relations
// that drive branch closure and negation rules.
package sign

import (
	"fmt"

	"tableau/formula"
	"tableau/truthvalue"
)

// System names a supported logical system.
type System string

const (
	CPL  System = "CPL"
	WK3  System = "WK3"
	WKrQ System = "wKrQ"
)

// Designation is the sign itself: one letter, system-qualified.
type Designation string

const (
	T Designation = "T"
	F Designation = "F"
	U Designation = "U"
	M Designation = "M"
	N Designation = "N"
)

// Sign is a designation scoped to the system it belongs to.
type Sign struct {
	System      System
	Designation Designation
}

func (s Sign) String() string { return string(s.Designation) }

// Valid reports whether this designation is a member of its System.
func (s Sign) Valid() bool {
	switch s.System {
	case CPL:
		return s.Designation == T || s.Designation == F
	case WK3:
		return s.Designation == T || s.Designation == F || s.Designation == U
	case WKrQ:
		return s.Designation == T || s.Designation == F || s.Designation == M || s.Designation == N
	default:
		return false
	}
}

// ContradictoryWith reports whether s and other jointly close a
// branch when attached to the same formula. Per spec.md §4.2, only
// {T,F} contradicts in every system; U never contradicts, and M/N
// never contradict each other or T/F.
func (s Sign) ContradictoryWith(other Sign) bool {
	if s.System != other.System {
		return false
	}
	return (s.Designation == T && other.Designation == F) ||
		(s.Designation == F && other.Designation == T)
}

// Dual returns the involution used by negation rules: T<->F in every
// system, U<->U in WK3, M<->N in wKrQ.
func (s Sign) Dual() Sign {
	switch s.Designation {
	case T:
		return Sign{s.System, F}
	case F:
		return Sign{s.System, T}
	case U:
		return Sign{s.System, U}
	case M:
		return Sign{s.System, N}
	case N:
		return Sign{s.System, M}
	default:
		panic(fmt.Sprintf("sign: invalid designation %q", s.Designation))
	}
}

// TruthValue projects a sign onto the weak-Kleene truth-value algebra:
// T↦t, F↦f, U↦e, M↦e, N↦e. The projection is lossy — M, N and U all
// collapse to Undefined — so callers that need to distinguish
// epistemic uncertainty from a genuine WK3 gap must keep the Sign
// alongside the projected value (see model.Model).
func (s Sign) TruthValue() truthvalue.Value {
	switch s.Designation {
	case T:
		return truthvalue.True
	case F:
		return truthvalue.False
	default: // U, M, N
		return truthvalue.Undefined
	}
}

// IsDefinite reports whether this is a classical T/F sign.
func (s Sign) IsDefinite() bool {
	return s.Designation == T || s.Designation == F
}

// IsEpistemic reports whether this is a wKrQ M/N sign.
func (s Sign) IsEpistemic() bool {
	return s.Designation == M || s.Designation == N
}

// Signs returns every sign of a system, in canonical display order.
func Signs(sys System) []Sign {
	switch sys {
	case CPL:
		return []Sign{{sys, T}, {sys, F}}
	case WK3:
		return []Sign{{sys, T}, {sys, F}, {sys, U}}
	case WKrQ:
		return []Sign{{sys, T}, {sys, F}, {sys, M}, {sys, N}}
	default:
		return nil
	}
}

// SignedFormula is the pair (sign, formula): the atomic proof object
// of the tableau method.
type SignedFormula struct {
	Sign    Sign
	Formula formula.Formula
}

func (sf SignedFormula) String() string {
	return fmt.Sprintf("%s:%s", sf.Sign, sf.Formula)
}

// ContradictoryWith implements spec.md §3's closure test: identical
// formula, contradictory signs. No cross-formula inference closes a
// branch.
func (sf SignedFormula) ContradictoryWith(other SignedFormula) bool {
	return sf.Formula.Equal(other.Formula) && sf.Sign.ContradictoryWith(other.Sign)
}

// constructors

func mk(sys System, d Designation, f formula.Formula) SignedFormula {
	return SignedFormula{Sign: Sign{System: sys, Designation: d}, Formula: f}
}

// TSign builds a T-signed formula for the given system.
func TSign(sys System, f formula.Formula) SignedFormula { return mk(sys, T, f) }

// FSign builds an F-signed formula for the given system.
func FSign(sys System, f formula.Formula) SignedFormula { return mk(sys, F, f) }

// USign builds a U-signed formula (WK3 only).
func USign(f formula.Formula) SignedFormula { return mk(WK3, U, f) }

// MSign builds an M-signed formula (wKrQ only).
func MSign(f formula.Formula) SignedFormula { return mk(WKrQ, M, f) }

// NSign builds an N-signed formula (wKrQ only).
func NSign(f formula.Formula) SignedFormula { return mk(WKrQ, N, f) }
