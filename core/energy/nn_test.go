package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimatePerfectDuplex(t *testing.T) {
	// 4.09 init + 2×0.45 terminal AU − 9.84 stacks
	got := New().Estimate("AUUCGA", "UAAGCU")
	assert.InDelta(t, -4.85, got, 1e-9)
}

func TestEstimateNoStack(t *testing.T) {
	nn := New()
	cases := []struct{ q, r string }{
		{"", ""},
		{"A", "U"},
		{"A-A", "UAU"},
		{"AAAA", "AAAA"},
		{"ACAC", "UUUU"},
	}
	for _, c := range cases {
		assert.Zero(t, nn.Estimate(c.q, c.r), "%s/%s", c.q, c.r)
	}
}

func TestEstimateCaseInsensitive(t *testing.T) {
	nn := New()
	assert.Equal(t, nn.Estimate("AUUCGA", "UAAGCU"), nn.Estimate("auucga", "uaagcu"))
}

func TestEstimateStrandSymmetry(t *testing.T) {
	nn := New()
	assert.InDelta(t, 4.09-3.26, nn.Estimate("GG", "CC"), 1e-9)
	assert.Equal(t, nn.Estimate("GG", "CC"), nn.Estimate("CC", "GG"))
}

func TestEstimateOrdering(t *testing.T) {
	nn := New()
	gc := nn.Estimate("GGGGGG", "CCCCCC")
	au := nn.Estimate("AAAAAA", "UUUUUU")
	wobble := nn.Estimate("GGGGGG", "UUUUUU")
	assert.Less(t, gc, au)
	assert.Less(t, au, wobble)

	perfect := nn.Estimate("AUUCGA", "UAAGCU")
	bulged := nn.Estimate("AUU-CGA", "UAAGGCU")
	assert.InDelta(t, 1.48, bulged, 1e-9)
	assert.Less(t, perfect, bulged)
}

func TestEstimateInternalLoop(t *testing.T) {
	nn := New()
	// two helices around a 1×1 mismatch: loop of two unpaired bases
	got := nn.Estimate("GGAGG", "CCACC")
	want := 4.09 + 2*-3.26 + 0.5 + 0.5*2
	assert.InDelta(t, want, got, 1e-9)
}
