package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirscan-core/align"
)

func loadedHit(t *testing.T, q, m, r string, qs, qe, rs, re int) *Hit {
	t.Helper()
	h := newHit(16, 16)
	h.load(&align.Trace{
		Query: []byte(q), Match: []byte(m), Ref: []byte(r),
		QueryStart: qs, QueryEnd: qe, RefStart: rs, RefEnd: re,
	}, 1)
	return &h
}

func TestExtendFlanks(t *testing.T) {
	h := loadedHit(t, "gua", "|||", "uac", 2, 5, 1, 4)
	utr3p, utr5p := h.extend("ACGUACGU", "GGCCAU")

	assert.Equal(t, 1, utr3p)
	assert.Equal(t, 2, utr5p)
	assert.Equal(t, "ac", string(h.Flank5Query))
	assert.Equal(t, "-g", string(h.Flank5Ref))
	assert.Equal(t, "  ", string(h.Flank5Match))
	assert.Equal(t, "cgu", string(h.Flank3Query))
	assert.Equal(t, "au-", string(h.Flank3Ref))
	assert.Equal(t, "   ", string(h.Flank3Match))

	assert.Equal(t, "GUA", string(h.QueryAln))
	assert.Equal(t, "UAC", string(h.RefAln))
	assert.Equal(t, "acGUAcgu", h.QueryLine())
	assert.Equal(t, "  |||   ", h.MatchLine())
	assert.Equal(t, "-gUACau-", h.RefLine())
}

func TestExtendNoFlanks(t *testing.T) {
	h := loadedHit(t, "A", "|", "U", 0, 1, 0, 1)
	utr3p, utr5p := h.extend("A", "U")
	assert.Zero(t, utr3p)
	assert.Zero(t, utr5p)
	assert.Empty(t, h.Flank5Query)
	assert.Empty(t, h.Flank3Ref)
}

func TestExtendReferenceShorterThanQuery(t *testing.T) {
	h := loadedHit(t, "CG", "||", "GC", 3, 5, 0, 2)
	utr3p, utr5p := h.extend("AAACGAAA", "GC")
	assert.Zero(t, utr3p)
	assert.Zero(t, utr5p)
	assert.Equal(t, "---", string(h.Flank5Ref))
	assert.Equal(t, "---", string(h.Flank3Ref))
}

func TestSeedMatch(t *testing.T) {
	cases := []struct {
		name           string
		flank3, query  string
		flank3m, match string
		want           bool
	}{
		{"perfect", "", "ACGUACGUA", "", "|||||||||", true},
		{"first base unpaired", "", "ACGUACGUA", "", " ||||||||", true},
		{"wobble in window", "", "ACGUACGUA", "", "|||:|||||", false},
		{"mismatch after window", "", "ACGUACGUA", "", "|||||||| ", true},
		{"gap in window", "", "ACG-UACGU", "", "||| |||||", false},
		{"flank in window", "ac", "GUACGUAC", "  ", "||||||||", false},
		{"too short", "", "ACGU", "", "||||", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHit(16, 16)
			h.Flank3Query = append(h.Flank3Query, c.flank3...)
			h.Flank3Match = append(h.Flank3Match, c.flank3m...)
			h.QueryAln = append(h.QueryAln, c.query...)
			h.MatchAln = append(h.MatchAln, c.match...)
			ok, q, m := seedMatch(&h, nil, nil)
			require.Equal(t, c.want, ok)
			assert.Len(t, q, len(c.flank3)+len(c.query))
			assert.Len(t, m, len(q))
		})
	}
}

func TestCloneOwnsStorage(t *testing.T) {
	h := loadedHit(t, "GUA", "|||", "UAC", 0, 3, 0, 3)
	c := h.clone()
	h.reset()
	h.QueryAln = append(h.QueryAln, "XXX"...)
	assert.Equal(t, "GUA", string(c.QueryAln))
}
