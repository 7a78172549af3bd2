package formula

import (
	"fmt"
	"sync"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/iancoleman/strcase"

	coreerrors "tableau/errors"
	"tableau/term"
)

// formulaLexer tokenizes the surface syntax of §6.2: ASCII and Unicode
// operator aliases, identifiers, and the bracket/paren punctuation
// used by restricted quantifiers. Modeled directly on the teacher's
// grammar/lexer.go stateful-lexer idiom.
var formulaLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "IFF", Pattern: `<->|↔`},
		{Name: "ARROW", Pattern: `->|→`},
		{Name: "AND", Pattern: `&|∧`},
		{Name: "OR", Pattern: `\||∨`},
		{Name: "NOT", Pattern: `~|¬`},
		{Name: "QSYM", Pattern: `∃|∀`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `[()\[\],]`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	},
})

// iffExpr is the lowest-precedence production: A <-> B desugars to
// (A->B)∧(B->A) at conversion time (§ SPEC_FULL supplemented features).
type iffExpr struct {
	Left  *implExpr `@@`
	Right *implExpr `( IFF @@ )?`
}

// implExpr is right-associative: A -> B -> C parses as A -> (B -> C).
type implExpr struct {
	Left  *orExpr   `@@`
	Right *implExpr `( ARROW @@ )?`
}

// orExpr is left-associative disjunction.
type orExpr struct {
	Left *andExpr   `@@`
	Rest []*andExpr `( OR @@ )*`
}

// andExpr is left-associative conjunction.
type andExpr struct {
	Left *notExpr   `@@`
	Rest []*notExpr `( AND @@ )*`
}

// notExpr is right-associative prefix negation.
type notExpr struct {
	Nots []string  `( @NOT )*`
	Atom *atomExpr `@@`
}

// atomExpr is a parenthesized expression, a restricted quantifier, or
// a predicate application — predicate application binds tightest.
type atomExpr struct {
	Paren *iffExpr   `  "(" @@ ")"`
	Quant *quantExpr `| @@`
	Pred  *predExpr  `| @@`
}

// quantExpr is [∃x guard]body or [∀x guard]body (ASCII: "exists"/"forall").
type quantExpr struct {
	Quantifier string    `"[" @( QSYM | "exists" | "forall" )`
	Var        string    `@Ident`
	Guard      *iffExpr  `@@ "]"`
	Body       *atomExpr `@@`
}

// predExpr is Name or Name(arg1, arg2, ...).
type predExpr struct {
	Name string   `@Ident`
	Args []string `( "(" ( @Ident ( "," @Ident )* )? ")" )?`
}

var (
	buildOnce    sync.Once
	builtParser  *participle.Parser[iffExpr]
	buildErr     error
)

func getParser() (*participle.Parser[iffExpr], error) {
	buildOnce.Do(func() {
		builtParser, buildErr = participle.Build[iffExpr](
			participle.Lexer(formulaLexer),
			participle.Elide("Whitespace"),
			participle.UseLookahead(2),
		)
	})
	return builtParser, buildErr
}

// Parse parses text per the surface syntax of spec.md §6.2 and returns
// a Formula, or a *errors.CoreError of Kind ParseError on malformed
// input.
func Parse(text string) (Formula, error) {
	if text == "" {
		return nil, coreerrors.ParseError("empty input", coreerrors.Position{})
	}

	p, err := getParser()
	if err != nil {
		return nil, coreerrors.ParseError(fmt.Sprintf("internal grammar build failure: %v", err), coreerrors.Position{})
	}

	tree, err := p.ParseString("", text)
	if err != nil {
		if pe, ok := err.(participle.Error); ok {
			pos := pe.Position()
			return nil, coreerrors.ParseError(pe.Message(), coreerrors.Position{
				Offset: pos.Offset, Line: pos.Line, Column: pos.Column,
			})
		}
		return nil, coreerrors.ParseError(err.Error(), coreerrors.Position{})
	}

	return convertIff(tree), nil
}

// ParseWithDiagnostics parses text exactly like Parse, additionally
// returning advisory naming-convention warnings (spec.md §3: constants
// lowercase, variables uppercase) — never a parse failure, just a
// note for front-ends that want to surface style issues to a user.
func ParseWithDiagnostics(text string) (Formula, []string, error) {
	f, err := Parse(text)
	if err != nil {
		return nil, nil, err
	}
	return f, NamingWarnings(f), nil
}

// NamingWarnings walks a formula and reports identifiers that do not
// follow the advisory convention: constants in lower/snake_case,
// variables in upper/screaming-snake-case, checked with
// github.com/iancoleman/strcase rather than a hand-rolled case check.
func NamingWarnings(f Formula) []string {
	var warnings []string
	seen := make(map[string]bool)
	note := func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			warnings = append(warnings, msg)
		}
	}
	checkTerm := func(t term.Term) {
		switch v := t.(type) {
		case term.Const:
			if v.Name != strcase.ToSnake(v.Name) {
				note(fmt.Sprintf("constant %q does not follow the lowercase/snake_case naming convention", v.Name))
			}
		case term.Var:
			if v.Name != strcase.ToScreamingSnake(v.Name) {
				note(fmt.Sprintf("variable %q does not follow the upper/screaming-snake-case naming convention", v.Name))
			}
		}
	}
	var walk func(Formula)
	walk = func(n Formula) {
		switch t := n.(type) {
		case Pred:
			for _, a := range t.Args {
				checkTerm(a)
			}
		case Not:
			walk(t.Operand)
		case And:
			walk(t.Left)
			walk(t.Right)
		case Or:
			walk(t.Left)
			walk(t.Right)
		case Imp:
			walk(t.Left)
			walk(t.Right)
		case RExists:
			checkTerm(t.Var)
			walk(t.Guard)
			walk(t.Body)
		case RForall:
			checkTerm(t.Var)
			walk(t.Guard)
			walk(t.Body)
		}
	}
	walk(f)
	return warnings
}

func convertIff(n *iffExpr) Formula {
	left := convertImpl(n.Left)
	if n.Right == nil {
		return left
	}
	right := convertImpl(n.Right)
	return NewAnd(NewImp(left, right), NewImp(right, left))
}

func convertImpl(n *implExpr) Formula {
	left := convertOr(n.Left)
	if n.Right == nil {
		return left
	}
	return NewImp(left, convertImpl(n.Right))
}

func convertOr(n *orExpr) Formula {
	acc := convertAnd(n.Left)
	for _, r := range n.Rest {
		acc = NewOr(acc, convertAnd(r))
	}
	return acc
}

func convertAnd(n *andExpr) Formula {
	acc := convertNot(n.Left)
	for _, r := range n.Rest {
		acc = NewAnd(acc, convertNot(r))
	}
	return acc
}

func convertNot(n *notExpr) Formula {
	f := convertAtom(n.Atom)
	for range n.Nots {
		f = Not{Operand: f}
	}
	return f
}

func convertAtom(n *atomExpr) Formula {
	switch {
	case n.Paren != nil:
		return convertIff(n.Paren)
	case n.Quant != nil:
		return convertQuant(n.Quant)
	case n.Pred != nil:
		return convertPred(n.Pred)
	default:
		panic("formula: parser produced an empty atom — grammar bug")
	}
}

func convertQuant(n *quantExpr) Formula {
	v := term.NewVar(n.Var)
	guard := convertIff(n.Guard)
	body := convertAtom(n.Body)
	if n.Quantifier == "∃" || n.Quantifier == "exists" {
		return NewRExists(v, guard, body)
	}
	return NewRForall(v, guard, body)
}

func convertPred(n *predExpr) Formula {
	args := make([]term.Term, len(n.Args))
	for i, name := range n.Args {
		args[i] = argTerm(name)
	}
	return NewPred(n.Name, args...)
}

// argTerm applies the front-end naming convention of spec.md §3:
// identifiers beginning with an uppercase letter are variables,
// everything else is a constant.
func argTerm(name string) term.Term {
	if name != "" && unicode.IsUpper(rune(name[0])) {
		return term.NewVar(name)
	}
	return term.NewConst(name)
}
