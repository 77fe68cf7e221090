package output

import (
	"bytes"
	"strings"
	"testing"

	"mirscan-core/scan"
)

func TestWriteText(t *testing.T) {
	rep := scan.Report{
		QueryID: "q", ReferenceID: "r", QueryLen: 8, ReferenceLen: 20,
		Hits: []scan.Hit{{
			Flank5Query: []byte("a"), Flank5Match: []byte(" "), Flank5Ref: []byte("g"),
			QueryAln: []byte("UCGA"), MatchAln: []byte("||:|"), RefAln: []byte("AGUU"),
			Flank3Query: []byte("cgu"), Flank3Match: []byte("   "), Flank3Ref: []byte("cc-"),
			QueryStart: 1, QueryEnd: 5, RefStart: 3, RefEnd: 10, Score: 141, Energy: -7.13,
		}},
		Digest: scan.Digest{OK: true, TotalScore: 141, TotalEnergy: 7.13, MaxScore: 141, MaxEnergy: -7.13, QueryLen: 8, ReferenceLen: 20, Positions: []int{4}},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, rep); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		">q\tr\tscore=141.00\tenergy=-7.13\tq=2-5\tr=4-11\tlen=4\n",
		"   Query:  3' aUCGAcgu 5'\n",
		"               ||:|   \n",
		"   Ref:    5' gAGUUcc- 3'\n",
		"#digest\tq\tr\ttotal_score=141.00\ttotal_energy=7.13\tmax_score=141.00\tmax_energy=-7.13\tmirna_len=8\tgene_len=20\tpositions=4\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestWriteTextErrorDigest(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, scan.Report{}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if got := buf.String(); got != "#digest\t-\t-\terror\n" {
		t.Fatalf("got %q", got)
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range Formats {
		if !ValidFormat(f) {
			t.Fatalf("%s should be valid", f)
		}
	}
	if ValidFormat("fasta") {
		t.Fatal("fasta is not an output format")
	}
}
