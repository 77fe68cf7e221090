// internal/output/json.go
package output

import (
	"io"

	"mirscan-core/scan"
	"mirscan/internal/jsonutil"
	"mirscan/pkg/api"
)

// ToAPIHit converts an accepted hit to the stable wire schema (v1).
// Internal coordinates are 0-based; the wire form is 1-based inclusive.
func ToAPIHit(h scan.Hit) api.HitV1 {
	return api.HitV1{
		Score:      api.Fixed2(h.Score),
		Energy:     api.Fixed2(h.Energy),
		QueryStart: h.QueryStart + 1,
		QueryEnd:   h.QueryEnd,
		RefStart:   h.RefStart + 1,
		RefEnd:     h.RefEnd + 1,
		AlnLength:  h.AlnLen(),
		QueryAln:   h.QueryLine(),
		MatchAln:   h.MatchLine(),
		RefAln:     h.RefLine(),
	}
}

// ToAPIDigest converts the scan digest; a failed digest renders as {"error":true}.
func ToAPIDigest(d scan.Digest) api.DigestV1 {
	if !d.OK {
		return api.DigestV1{Error: true}
	}
	return api.DigestV1{
		TotalScore:  api.Fixed2(d.TotalScore),
		TotalEnergy: api.Fixed2(d.TotalEnergy),
		MaxScore:    api.Fixed2(d.MaxScore),
		MaxEnergy:   api.Fixed2(d.MaxEnergy),
		MirnaLen:    d.QueryLen,
		GeneLen:     d.ReferenceLen,
		Positions:   append([]int{}, d.Positions...),
	}
}

// ToAPIReport converts one scan report. Hits stay in acceptance order.
func ToAPIReport(r scan.Report) api.ReportV1 {
	hits := make([]api.HitV1, 0, len(r.Hits))
	for _, h := range r.Hits {
		v := ToAPIHit(h)
		v.QueryID, v.ReferenceID = r.QueryID, r.ReferenceID
		hits = append(hits, v)
	}
	return api.ReportV1{
		QueryID:     r.QueryID,
		ReferenceID: r.ReferenceID,
		Hits:        hits,
		Digest:      ToAPIDigest(r.Digest),
	}
}

func toAPIReports(list []scan.Report) []api.ReportV1 {
	out := make([]api.ReportV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIReport(r))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 reports (pretty-indented).
func WriteJSON(w io.Writer, list []scan.Report) error {
	return jsonutil.EncodePretty(w, toAPIReports(list))
}
