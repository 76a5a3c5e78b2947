package das

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMonetaryCandidates(t *testing.T) {
	v, ok := ResolveMonetaryCandidates([]float64{150, 3412.23})
	assert.True(t, ok)
	assert.Equal(t, 3412.23, v)

	_, ok = ResolveMonetaryCandidates(nil)
	assert.False(t, ok, "empty pool is absence")

	v, ok = ResolveMonetaryCandidates([]float64{0})
	assert.True(t, ok, "zero-due document")
	assert.Equal(t, 0.0, v)

	_, ok = ResolveMonetaryCandidates([]float64{-1, math.NaN(), math.Inf(1)})
	assert.False(t, ok)

	v, ok = ResolveMonetaryCandidates([]float64{-5, 0})
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestResolveCandidatesPrefersLowerRuleOnTie(t *testing.T) {
	c, ok := ResolveCandidates([]Candidate{
		{Value: 10, Raw: "10,00", RuleIndex: 2},
		{Value: 10, Raw: "10,00", RuleIndex: 1},
		{Value: 4, Raw: "4,00", RuleIndex: 0},
	})
	assert.True(t, ok)
	assert.Equal(t, 10.0, c.Value)
	assert.Equal(t, 1, c.RuleIndex)
}
