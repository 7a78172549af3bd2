package model_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableau/formula"
	"tableau/internal/engine"
	"tableau/model"
	"tableau/sign"
	"tableau/term"
	"tableau/truthvalue"
)

func buildAndExtract(t *testing.T, sys sign.System, initial []sign.SignedFormula) []model.Model {
	t.Helper()
	e := engine.New(sys, engine.DefaultOptions())
	res := e.Build(context.Background(), initial)
	require.Equal(t, engine.Sat, res.Outcome)
	models, err := model.ExtractAll(res.OpenBranches, sys, initial, 0)
	require.NoError(t, err)
	return models
}

// atomSnapshot flattens a Model's exported-field view for structural
// comparison with go-cmp, since Model keeps its atom table unexported.
type atomSnapshot struct {
	Domain []term.Const
	Atoms  map[string]model.AtomValue
}

func snapshot(m model.Model) atomSnapshot {
	atoms := make(map[string]model.AtomValue, len(m.Atoms()))
	for _, name := range m.Atoms() {
		atoms[name] = m.Lookup(formula.NewPred(name))
	}
	return atomSnapshot{Domain: m.Domain, Atoms: atoms}
}

func TestExtractedModelsAreStructurallyDeterministic(t *testing.T) {
	p, q := formula.NewPred("p"), formula.NewPred("q")
	initial := []sign.SignedFormula{
		sign.TSign(sign.CPL, formula.NewOr(p, q)),
		sign.FSign(sign.CPL, p),
	}
	first := buildAndExtract(t, sign.CPL, initial)
	second := buildAndExtract(t, sign.CPL, initial)
	require.NotEmpty(t, first)
	require.NotEmpty(t, second)
	if diff := cmp.Diff(snapshot(first[0]), snapshot(second[0]), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("model extraction is not structurally deterministic (-first +second):\n%s", diff)
	}
}

func TestSingleLiteralModel(t *testing.T) {
	p := formula.NewPred("p")
	models := buildAndExtract(t, sign.CPL, []sign.SignedFormula{sign.TSign(sign.CPL, p)})
	require.NotEmpty(t, models)
	assert.Equal(t, truthvalue.True, models[0].Lookup(p).Value)
}

func TestUndefinedModelWK3(t *testing.T) {
	p := formula.NewPred("p")
	models := buildAndExtract(t, sign.WK3, []sign.SignedFormula{sign.USign(p)})
	require.NotEmpty(t, models)
	assert.Equal(t, truthvalue.Undefined, models[0].Lookup(p).Value)
	assert.Equal(t, sign.U, models[0].Lookup(p).Sign)
}

func TestEpistemicTagPreserved(t *testing.T) {
	p := formula.NewPred("p")
	models := buildAndExtract(t, sign.WKrQ, []sign.SignedFormula{sign.MSign(p), sign.NSign(p)})
	require.NotEmpty(t, models)
	av := models[0].Lookup(p)
	assert.Equal(t, truthvalue.Undefined, av.Value)
	assert.Contains(t, []sign.Designation{sign.M, sign.N}, av.Sign)
}

func TestDefaultValueUnmentionedAtom(t *testing.T) {
	p, q := formula.NewPred("p"), formula.NewPred("q")
	models := buildAndExtract(t, sign.CPL, []sign.SignedFormula{sign.TSign(sign.CPL, p)})
	require.NotEmpty(t, models)
	assert.Equal(t, truthvalue.False, models[0].Lookup(q).Value)

	modelsWK3 := buildAndExtract(t, sign.WK3, []sign.SignedFormula{sign.TSign(sign.WK3, p)})
	require.NotEmpty(t, modelsWK3)
	assert.Equal(t, truthvalue.Undefined, modelsWK3[0].Lookup(q).Value)
}

func TestInfectionLawOnExtractedModel(t *testing.T) {
	p, q := formula.NewPred("p"), formula.NewPred("q")
	conj := formula.NewAnd(p, q)
	models := buildAndExtract(t, sign.WK3, []sign.SignedFormula{sign.USign(p), sign.TSign(sign.WK3, q)})
	require.NotEmpty(t, models)
	assert.Equal(t, truthvalue.Undefined, model.Evaluate(models[0], conj))
}

func TestRestrictedExistentialModelHasWitness(t *testing.T) {
	x := term.NewVar("X")
	ex := formula.NewRExists(x, formula.NewPred("Student", x), formula.NewPred("Human", x))
	models := buildAndExtract(t, sign.WKrQ, []sign.SignedFormula{sign.TSign(sign.WKrQ, ex)})
	require.NotEmpty(t, models)
	assert.Equal(t, truthvalue.True, model.Evaluate(models[0], ex))
}

func TestModelFaithfulnessAcrossScenarios(t *testing.T) {
	p, q, r := formula.NewPred("p"), formula.NewPred("q"), formula.NewPred("r")
	initial := []sign.SignedFormula{
		sign.TSign(sign.CPL, formula.NewImp(p, q)),
		sign.FSign(sign.CPL, r),
	}
	models := buildAndExtract(t, sign.CPL, initial)
	for _, m := range models {
		for _, sf := range initial {
			v := model.Evaluate(m, sf.Formula)
			switch sf.Sign.Designation {
			case sign.T:
				assert.Equal(t, truthvalue.True, v)
			case sign.F:
				assert.Equal(t, truthvalue.False, v)
			}
		}
	}
}
