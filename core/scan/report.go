package scan

// Digest is the per-scan aggregate. When OK is false only the error flag is
// meaningful: no accepted hit was favorable enough.
type Digest struct {
	OK           bool
	TotalScore   float64
	TotalEnergy  float64 // accumulated -Energy of accepted hits
	MaxScore     float64
	MaxEnergy    float64 // most negative accepted energy
	QueryLen     int
	ReferenceLen int
	Positions    []int
}

// Report is the result of one scan. Hits are in acceptance order.
type Report struct {
	QueryID      string
	ReferenceID  string
	QueryLen     int
	ReferenceLen int
	Hits         []Hit
	Digest       Digest
}

// ReportBuilder collects accepted hits and produces the final Report once.
type ReportBuilder struct {
	r    Report
	done bool
}

// NewReportBuilder starts a report for one query/reference pair.
func NewReportBuilder(queryID, refID string, queryLen, refLen int) *ReportBuilder {
	return &ReportBuilder{r: Report{
		QueryID:      queryID,
		ReferenceID:  refID,
		QueryLen:     queryLen,
		ReferenceLen: refLen,
	}}
}

// Add appends an accepted hit. The builder takes ownership of h.
func (b *ReportBuilder) Add(h Hit) {
	if b.done {
		panic("scan: ReportBuilder.Add after Build")
	}
	b.r.Hits = append(b.r.Hits, h)
}

// Build finalizes the digest from s. Further Add calls panic.
func (b *ReportBuilder) Build(s Summary) Report {
	b.done = true
	r := b.r
	if s.ScanScore > 0 {
		r.Digest = Digest{
			OK:           true,
			TotalScore:   s.TotalScore,
			TotalEnergy:  s.ScanScore,
			MaxScore:     s.MaxScore,
			MaxEnergy:    s.MinEnergy,
			QueryLen:     r.QueryLen,
			ReferenceLen: r.ReferenceLen,
			Positions:    append([]int{}, s.Positions...),
		}
	}
	return r
}
