package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "tableau/errors"
)

func TestBuilderFluentConstruction(t *testing.T) {
	err := coreerrors.New(coreerrors.KindInvalidFormula, "empty predicate name").
		At(coreerrors.Position{Line: 1, Column: 4, Offset: 3}).
		WithNote("predicate names must be non-empty").
		Build()
	assert.Equal(t, coreerrors.KindInvalidFormula, err.Kind)
	assert.Equal(t, "InvalidFormula at 1:4: empty predicate name", err.Error())
	assert.Equal(t, []string{"predicate names must be non-empty"}, err.Notes)
}

func TestConvenienceConstructors(t *testing.T) {
	parse := coreerrors.ParseError("unexpected token", coreerrors.Position{Line: 2, Column: 5})
	assert.Equal(t, coreerrors.KindParseError, parse.Kind)

	mismatch := coreerrors.SystemMismatch("U sign used with a CPL engine")
	assert.Equal(t, coreerrors.KindSystemMismatch, mismatch.Kind)
	assert.Equal(t, "SystemMismatch: U sign used with a CPL engine", mismatch.Error())

	invalid := coreerrors.InvalidFormula("restricted quantifier missing a body")
	assert.Equal(t, coreerrors.KindInvalidFormula, invalid.Kind)

	exhausted := coreerrors.ResourceExhausted("max_branches exceeded")
	assert.Equal(t, coreerrors.KindResourceExhausted, exhausted.Kind)

	cancelled := coreerrors.Cancelled("context cancelled mid-build")
	assert.Equal(t, coreerrors.KindCancelled, cancelled.Kind)

	invariant := coreerrors.InternalInvariantViolated("extracted model failed post-condition check")
	assert.Equal(t, coreerrors.KindInternalInvariantViolated, invariant.Kind)
}

func TestPositionStringFallsBackWithoutLine(t *testing.T) {
	assert.Equal(t, "?", coreerrors.Position{}.String())
	assert.Equal(t, "3:7", coreerrors.Position{Line: 3, Column: 7}.String())
}

func TestAppendAggregatesMultipleErrors(t *testing.T) {
	a := coreerrors.SystemMismatch("CPL failure")
	b := coreerrors.SystemMismatch("WK3 failure")

	var agg error
	agg = coreerrors.Append(agg, a)
	agg = coreerrors.Append(agg, b)

	require.Error(t, agg)
	assert.Contains(t, agg.Error(), "CPL failure")
	assert.Contains(t, agg.Error(), "WK3 failure")
}

func TestAppendSkipsNilErrors(t *testing.T) {
	only := coreerrors.SystemMismatch("wKrQ failure")
	agg := coreerrors.Append(nil, nil, only, nil)
	require.Error(t, agg)
	assert.Contains(t, agg.Error(), "wKrQ failure")
}

func TestAppendReturnsNilWhenNothingFailed(t *testing.T) {
	assert.NoError(t, coreerrors.Append(nil))
	assert.NoError(t, coreerrors.Append(nil, nil, nil))
}
