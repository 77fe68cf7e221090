package scan

// Summary accumulates the accepted hits of one scan.
type Summary struct {
	Hits       int
	MinEnergy  float64 // most negative accepted energy, 0 if none was negative
	MaxScore   float64
	TotalScore float64 // sum of raw scores
	ScanScore  float64 // sum of -Energy
	Positions  []int   // 1-based reference starts, acceptance order
}

func (s *Summary) accept(h *Hit) {
	s.ScanScore += -h.Energy
	s.Hits++
	s.Positions = append(s.Positions, h.RefStart+1)
	if h.Energy < s.MinEnergy {
		s.MinEnergy = h.Energy
	}
	s.TotalScore += h.Score
	if h.Score > s.MaxScore {
		s.MaxScore = h.Score
	}
}
