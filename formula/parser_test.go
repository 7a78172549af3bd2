package formula_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableau/formula"
	"tableau/term"
)

func TestParseAtomAndPredicate(t *testing.T) {
	f, err := formula.Parse("p")
	require.NoError(t, err)
	assert.Equal(t, formula.NewPred("p"), f)

	f, err = formula.Parse("Student(john)")
	require.NoError(t, err)
	assert.Equal(t, formula.NewPred("Student", term.NewConst("john")), f)
}

func TestParsePrecedence(t *testing.T) {
	// Conjunction binds tighter than implication; negation tighter than conjunction.
	f, err := formula.Parse("~p & q -> r")
	require.NoError(t, err)

	p := formula.NewPred("p")
	q := formula.NewPred("q")
	r := formula.NewPred("r")
	expected := formula.NewImp(formula.NewAnd(formula.Not{Operand: p}, q), r)
	assert.True(t, f.Equal(expected), "got %s", f)
}

func TestParseImplicationRightAssociative(t *testing.T) {
	f, err := formula.Parse("p -> q -> r")
	require.NoError(t, err)

	p, q, r := formula.NewPred("p"), formula.NewPred("q"), formula.NewPred("r")
	expected := formula.NewImp(p, formula.NewImp(q, r))
	assert.True(t, f.Equal(expected))
}

func TestParseBiconditionalSugar(t *testing.T) {
	f, err := formula.Parse("p <-> q")
	require.NoError(t, err)

	p, q := formula.NewPred("p"), formula.NewPred("q")
	expected := formula.NewAnd(formula.NewImp(p, q), formula.NewImp(q, p))
	assert.True(t, f.Equal(expected))
}

func TestParseRestrictedExistential(t *testing.T) {
	f, err := formula.Parse("[∃X Student(X)] Human(X)")
	require.NoError(t, err)

	x := term.NewVar("X")
	expected := formula.NewRExists(x,
		formula.NewPred("Student", x),
		formula.NewPred("Human", x))
	assert.True(t, f.Equal(expected), "got %s", f)
}

func TestParseRestrictedUniversalASCII(t *testing.T) {
	f, err := formula.Parse("[forall X Bird(X)] Flies(X)")
	require.NoError(t, err)

	x := term.NewVar("X")
	expected := formula.NewRForall(x,
		formula.NewPred("Bird", x),
		formula.NewPred("Flies", x))
	assert.True(t, f.Equal(expected))
}

func TestParseEmptyInput(t *testing.T) {
	_, err := formula.Parse("")
	require.Error(t, err)
}

func TestParseUnmatchedParen(t *testing.T) {
	_, err := formula.Parse("(p & q")
	require.Error(t, err)
}

func TestNamingWarningsFlagsNonConventionalIdentifiers(t *testing.T) {
	f, warnings, err := formula.ParseWithDiagnostics("Student(John_Smith)")
	require.NoError(t, err)
	require.NotNil(t, f)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "John_Smith")
	assert.Contains(t, warnings[0], "variable")
}

func TestNamingWarningsSilentOnConventionalIdentifiers(t *testing.T) {
	f, warnings, err := formula.ParseWithDiagnostics("[exists X Student(X)] Human(X)")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Empty(t, warnings)
}

func TestNamingWarningsFlagsNonConventionalConstant(t *testing.T) {
	warnings := formula.NamingWarnings(formula.NewPred("Likes", term.NewConst("johnSmith")))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "johnSmith")
	assert.Contains(t, warnings[0], "constant")
}
