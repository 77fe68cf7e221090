// pkg/api/report_v1.go
package api

import (
	"encoding/json"
	"strconv"
)

// Fixed2 is a float that always renders with exactly two decimals.
type Fixed2 float64

func (f Fixed2) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(f), 'f', 2, 64), nil
}

func (f *Fixed2) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = Fixed2(v)
	return nil
}

// HitV1 is the stable schema for one accepted binding site.
// Coordinates are 1-based and inclusive. query_start/query_end bound the aligned
// core, counted along the query as printed (3'→5'); ref_start/ref_end bound the
// reference under the whole query line, flanks included. Alignment lines carry
// lowercase flanks.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type HitV1 struct {
	QueryID     string `json:"query_id,omitempty"`
	ReferenceID string `json:"reference_id,omitempty"`
	Score       Fixed2 `json:"score"`
	Energy      Fixed2 `json:"energy"`
	QueryStart  int    `json:"query_start"`
	QueryEnd    int    `json:"query_end"`
	RefStart    int    `json:"ref_start"`
	RefEnd      int    `json:"ref_end"`
	AlnLength   int    `json:"aln_length"`
	QueryAln    string `json:"query_aln"`
	MatchAln    string `json:"match_aln"`
	RefAln      string `json:"ref_aln"`
}

// DigestV1 summarizes a scan. When Error is set the digest renders as
// {"error":true} and every other field is omitted.
type DigestV1 struct {
	Error       bool
	TotalScore  Fixed2
	TotalEnergy Fixed2
	MaxScore    Fixed2
	MaxEnergy   Fixed2
	MirnaLen    int
	GeneLen     int
	Positions   []int
}

type digestOK struct {
	TotalScore  Fixed2 `json:"total_score"`
	TotalEnergy Fixed2 `json:"total_energy"`
	MaxScore    Fixed2 `json:"max_score"`
	MaxEnergy   Fixed2 `json:"max_energy"`
	MirnaLen    int    `json:"mirna_len"`
	GeneLen     int    `json:"gene_len"`
	Positions   []int  `json:"positions"`
}

func (d DigestV1) MarshalJSON() ([]byte, error) {
	if d.Error {
		return []byte(`{"error":true}`), nil
	}
	pos := d.Positions
	if pos == nil {
		pos = []int{}
	}
	return json.Marshal(digestOK{
		TotalScore:  d.TotalScore,
		TotalEnergy: d.TotalEnergy,
		MaxScore:    d.MaxScore,
		MaxEnergy:   d.MaxEnergy,
		MirnaLen:    d.MirnaLen,
		GeneLen:     d.GeneLen,
		Positions:   pos,
	})
}

func (d *DigestV1) UnmarshalJSON(b []byte) error {
	var probe struct {
		Error bool `json:"error"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if probe.Error {
		*d = DigestV1{Error: true}
		return nil
	}
	var ok digestOK
	if err := json.Unmarshal(b, &ok); err != nil {
		return err
	}
	*d = DigestV1{
		TotalScore:  ok.TotalScore,
		TotalEnergy: ok.TotalEnergy,
		MaxScore:    ok.MaxScore,
		MaxEnergy:   ok.MaxEnergy,
		MirnaLen:    ok.MirnaLen,
		GeneLen:     ok.GeneLen,
		Positions:   ok.Positions,
	}
	return nil
}

// ReportV1 is the stable schema for one query/reference scan.
type ReportV1 struct {
	QueryID     string   `json:"query_id,omitempty"`
	ReferenceID string   `json:"reference_id,omitempty"`
	Hits        []HitV1  `json:"hits"`
	Digest      DigestV1 `json:"digest"`
}
