package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRat(t *testing.T) {
	assert.Equal(t, "5", FormatRat(NewRat(5)))
	assert.Equal(t, "5.5", FormatRat(NewRat(5.5)))
	assert.Equal(t, "0.0001", FormatRat(NewRat("0.0001")))
	assert.Equal(t, "0", FormatRat(NewRat(0.0)))
	assert.Nil(t, NewRat("not-a-number"))
	assert.Nil(t, NewRat(true))
}

func TestFormatRatNil(t *testing.T) {
	assert.Equal(t, "null", FormatRat(nil))
}

func TestIsMultipleOf(t *testing.T) {
	assert.True(t, isMultipleOf(NewRat(10), NewRat(5)))
	assert.True(t, isMultipleOf(NewRat("0.0075"), NewRat("0.0001")))
	assert.False(t, isMultipleOf(NewRat("0.00751"), NewRat("0.0001")))
	assert.False(t, isMultipleOf(NewRat(10), NewRat(3)))

	// a zero or negative divisor is never satisfied
	assert.False(t, isMultipleOf(NewRat(10), NewRat(0)))
	assert.False(t, isMultipleOf(NewRat(10), NewRat(-5)))

	// large operands cannot overflow big.Rat
	assert.True(t, isMultipleOf(NewRat("1e308"), NewRat("1e154")))
}

func TestRatJSONRoundTrip(t *testing.T) {
	r := &Rat{}
	require.NoError(t, r.UnmarshalJSON([]byte("2.5")))
	assert.Equal(t, "2.5", FormatRat(r))

	data, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(data))
}

func TestNumericValueEquality(t *testing.T) {
	a, ok := numericValue(1)
	require.True(t, ok)
	b, ok := numericValue(1.0)
	require.True(t, ok)
	assert.Zero(t, a.Cmp(b))

	_, ok = numericValue("1")
	assert.False(t, ok)
}
