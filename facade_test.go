package tableau_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableau"
	"tableau/formula"
	"tableau/sign"
)

func TestCPLContradictionIsUnsatisfiable(t *testing.T) {
	p := formula.NewPred("p")
	conj := formula.NewAnd(p, formula.Not{Operand: p})
	sat, _, err := tableau.IsSatisfiable(sign.CPL, []formula.Formula{conj})
	require.NoError(t, err)
	assert.False(t, sat)
}

func TestWK3ContradictionIsSatisfiableAsUndefined(t *testing.T) {
	p := formula.NewPred("p")
	conj := formula.NewAnd(p, formula.Not{Operand: p})
	sat, _, err := tableau.IsSatisfiable(sign.WK3, []formula.Formula{conj})
	require.NoError(t, err)
	assert.True(t, sat)
}

func TestCPLRoundTripTheoremAndSatisfiableNegation(t *testing.T) {
	p := formula.NewPred("p")
	tautology := formula.NewOr(p, formula.Not{Operand: p})

	theorem, _, err := tableau.IsTheorem(sign.CPL, tautology)
	require.NoError(t, err)
	assert.True(t, theorem)

	satNegation, _, err := tableau.IsSatisfiable(sign.CPL, []formula.Formula{formula.Not{Operand: tautology}})
	require.NoError(t, err)
	assert.Equal(t, !theorem, satNegation)
}

func TestWK3ExcludedMiddleIsNotATheorem(t *testing.T) {
	p := formula.NewPred("p")
	tautology := formula.NewOr(p, formula.Not{Operand: p})
	theorem, _, err := tableau.IsTheorem(sign.WK3, tautology)
	require.NoError(t, err)
	assert.False(t, theorem, "p∨¬p can be undefined under weak Kleene semantics, so is not a WK3 theorem")
}

func TestCompareSystemsDiffersOnContradiction(t *testing.T) {
	p := formula.NewPred("p")
	conj := formula.NewAnd(p, formula.Not{Operand: p})
	results, err := tableau.CompareSystems([]formula.Formula{conj})
	require.NoError(t, err)
	assert.False(t, results[sign.CPL])
	assert.True(t, results[sign.WK3])
	assert.True(t, results[sign.WKrQ])
}

func TestFindModelsReturnsAModel(t *testing.T) {
	p, q := formula.NewPred("p"), formula.NewPred("q")
	models, _, err := tableau.FindModels(sign.CPL, []formula.Formula{formula.NewImp(p, q), p}, 0)
	require.NoError(t, err)
	require.NotEmpty(t, models)
	assert.Equal(t, sign.T, models[0].Lookup(q).Sign)
}

func TestAnalyzeComposesSatTheoremAndModels(t *testing.T) {
	p := formula.NewPred("p")
	result, err := tableau.Analyze(sign.CPL, p)
	require.NoError(t, err)
	assert.True(t, result.Satisfiable)
	assert.False(t, result.Theorem)
	assert.NotEmpty(t, result.Models)
}

func TestAnalyzeStatsIncludeModelExtractionBuild(t *testing.T) {
	p := formula.NewPred("p")

	f := tableau.New(tableau.DefaultOptions())
	_, satStats, err := f.IsSatisfiable(sign.CPL, []formula.Formula{p})
	require.NoError(t, err)
	_, theoremStats, err := f.IsTheorem(sign.CPL, p)
	require.NoError(t, err)
	satAndTheoremBranches := satStats.BranchesCreated + theoremStats.BranchesCreated

	result, err := tableau.New(tableau.DefaultOptions()).Analyze(sign.CPL, p)
	require.NoError(t, err)
	assert.True(t, result.Satisfiable)
	assert.Greater(t, result.Stats.BranchesCreated, satAndTheoremBranches,
		"Analyze's reported Stats should also account for the model-extraction build, not just sat+theorem")
}

func TestFacadeCachingIsStableAcrossRepeatedCalls(t *testing.T) {
	f := tableau.New(tableau.DefaultOptions())
	p := formula.NewPred("p")
	conj := formula.NewAnd(p, formula.Not{Operand: p})

	first, _, err := f.IsSatisfiable(sign.CPL, []formula.Formula{conj})
	require.NoError(t, err)
	second, _, err := f.IsSatisfiable(sign.CPL, []formula.Formula{conj})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFacadeCachingDisabledStillWorks(t *testing.T) {
	opts := tableau.DefaultOptions()
	opts.EnableCaching = false
	f := tableau.New(opts)
	p := formula.NewPred("p")
	sat, _, err := f.IsSatisfiable(sign.CPL, []formula.Formula{p})
	require.NoError(t, err)
	assert.True(t, sat)
}
