// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"mirscan-core/scan"
)

// RenderHit draws one hit as a three-line alignment block preceded by a
// header line. The query reads 3'→5' against the reference 5'→3'.
func RenderHit(r scan.Report, h scan.Hit) string {
	v := ToAPIHit(h)
	var b strings.Builder
	fmt.Fprintf(&b, ">%s\t%s\tscore=%.2f\tenergy=%.2f\tq=%d-%d\tr=%d-%d\tlen=%d\n",
		orDash(r.QueryID), orDash(r.ReferenceID), h.Score, h.Energy,
		v.QueryStart, v.QueryEnd, v.RefStart, v.RefEnd, v.AlnLength)
	fmt.Fprintf(&b, "   Query:  3' %s 5'\n", v.QueryAln)
	fmt.Fprintf(&b, "              %s\n", v.MatchAln)
	fmt.Fprintf(&b, "   Ref:    5' %s 3'\n", v.RefAln)
	return b.String()
}

// RenderDigest returns the one-line digest closing a report.
func RenderDigest(r scan.Report) string {
	d := r.Digest
	if !d.OK {
		return fmt.Sprintf("#digest\t%s\t%s\terror\n", orDash(r.QueryID), orDash(r.ReferenceID))
	}
	return fmt.Sprintf("#digest\t%s\t%s\ttotal_score=%.2f\ttotal_energy=%.2f\tmax_score=%.2f\tmax_energy=%.2f\tmirna_len=%d\tgene_len=%d\tpositions=%s\n",
		orDash(r.QueryID), orDash(r.ReferenceID),
		d.TotalScore, d.TotalEnergy, d.MaxScore, d.MaxEnergy,
		d.QueryLen, d.ReferenceLen, IntsCSV(d.Positions))
}

// WriteText renders a single report: its hits, a blank line after each, then the digest.
func WriteText(w io.Writer, r scan.Report) error {
	for _, h := range r.Hits {
		if _, err := io.WriteString(w, RenderHit(r, h)+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, RenderDigest(r))
	return err
}

// StreamText renders reports as they arrive.
func StreamText(w io.Writer, in <-chan scan.Report) error {
	for r := range in {
		if err := WriteText(w, r); err != nil {
			return err
		}
	}
	return nil
}

// IntsCSV joins a with commas; empty input yields "".
func IntsCSV(a []int) string {
	if len(a) == 0 {
		return ""
	}
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = strconv.Itoa(v)
	}
	return strings.Join(ss, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
