package sign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tableau/formula"
	"tableau/sign"
)

func TestContradictionTables(t *testing.T) {
	p := formula.NewPred("p")

	assert.True(t, sign.TSign(sign.CPL, p).ContradictoryWith(sign.FSign(sign.CPL, p)))
	assert.True(t, sign.TSign(sign.WK3, p).ContradictoryWith(sign.FSign(sign.WK3, p)))
	assert.True(t, sign.TSign(sign.WKrQ, p).ContradictoryWith(sign.FSign(sign.WKrQ, p)))

	assert.False(t, sign.USign(p).ContradictoryWith(sign.TSign(sign.WK3, p)))
	assert.False(t, sign.USign(p).ContradictoryWith(sign.USign(p)))

	assert.False(t, sign.MSign(p).ContradictoryWith(sign.NSign(p)))
	assert.False(t, sign.MSign(p).ContradictoryWith(sign.TSign(sign.WKrQ, p)))
}

func TestDualIsInvolution(t *testing.T) {
	for _, s := range sign.Signs(sign.CPL) {
		assert.Equal(t, s, s.Dual().Dual())
	}
	for _, s := range sign.Signs(sign.WK3) {
		assert.Equal(t, s, s.Dual().Dual())
	}
	for _, s := range sign.Signs(sign.WKrQ) {
		assert.Equal(t, s, s.Dual().Dual())
	}
}

func TestDualPairs(t *testing.T) {
	assert.Equal(t, sign.Sign{System: sign.CPL, Designation: sign.F}, sign.Sign{System: sign.CPL, Designation: sign.T}.Dual())
	assert.Equal(t, sign.Sign{System: sign.WK3, Designation: sign.U}, sign.Sign{System: sign.WK3, Designation: sign.U}.Dual())
	assert.Equal(t, sign.Sign{System: sign.WKrQ, Designation: sign.N}, sign.Sign{System: sign.WKrQ, Designation: sign.M}.Dual())
}

func TestTruthValueProjection(t *testing.T) {
	p := formula.NewPred("p")
	assert.Equal(t, "t", sign.TSign(sign.CPL, p).Sign.TruthValue().String())
	assert.Equal(t, "f", sign.FSign(sign.CPL, p).Sign.TruthValue().String())
	assert.Equal(t, "e", sign.USign(p).Sign.TruthValue().String())
	assert.Equal(t, "e", sign.MSign(p).Sign.TruthValue().String())
	assert.Equal(t, "e", sign.NSign(p).Sign.TruthValue().String())
}

func TestSignedFormulaNoCrossFormulaClosure(t *testing.T) {
	p := formula.NewPred("p")
	q := formula.NewPred("q")
	assert.False(t, sign.TSign(sign.CPL, p).ContradictoryWith(sign.FSign(sign.CPL, q)))
}
