package scan

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlapInclusive(t *testing.T) {
	o := NewOverlapSet(OverlapInclusive)
	assert.True(t, o.TryAdd(10, 20))

	cases := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"start inside", 15, 30, true},
		{"end inside", 0, 12, true},
		{"contains", 5, 25, true},
		{"contained", 12, 18, true},
		{"touch left", 0, 10, true},
		{"touch right", 20, 22, true},
		{"disjoint left", 0, 9, false},
		{"disjoint right", 21, 40, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, o.Overlaps(c.start, c.end), c.name)
	}
	assert.Equal(t, 1, o.Len())
}

func TestOverlapExclusive(t *testing.T) {
	o := NewOverlapSet(OverlapExclusive)
	assert.True(t, o.TryAdd(10, 20))
	assert.True(t, o.TryAdd(20, 25), "touching is allowed")
	assert.True(t, o.TryAdd(0, 10))
	assert.False(t, o.TryAdd(19, 21))
	assert.False(t, o.TryAdd(0, 10), "identical span")
	assert.Equal(t, 3, o.Len())
}

func TestOverlapRejectedSpanNotRecorded(t *testing.T) {
	o := NewOverlapSet(OverlapInclusive)
	assert.True(t, o.TryAdd(10, 20))
	assert.False(t, o.TryAdd(18, 30))
	// 25 would only conflict with the rejected span
	assert.True(t, o.TryAdd(25, 26))
}

// testforOverlap is the linear rule the bitmap must agree with.
func testforOverlap(spans []span, s, e int) bool {
	for _, x := range spans {
		if (s >= x.start && s <= x.end) || (e >= x.start && e <= x.end) || (s <= x.start && e >= x.end) {
			return true
		}
	}
	return false
}

func TestOverlapInclusiveMatchesLinearRule(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	o := NewOverlapSet(OverlapInclusive)
	var accepted []span
	for range 2000 {
		s := rng.IntN(5000)
		e := s + 1 + rng.IntN(40)
		want := !testforOverlap(accepted, s, e)
		got := o.TryAdd(s, e)
		if !assert.Equal(t, want, got, "span [%d,%d]", s, e) {
			return
		}
		if got {
			accepted = append(accepted, span{s, e})
		}
	}
	assert.Equal(t, len(accepted), o.Len())
}

func TestParseOverlapRule(t *testing.T) {
	r, err := ParseOverlapRule("Exclusive")
	assert.NoError(t, err)
	assert.Equal(t, OverlapExclusive, r)

	r, err = ParseOverlapRule("")
	assert.NoError(t, err)
	assert.Equal(t, OverlapInclusive, r)

	_, err = ParseOverlapRule("touching")
	assert.Error(t, err)
}
