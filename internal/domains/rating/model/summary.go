package model

// Summary aggregates a product's ratings. It is always computed from the
// rating rows, never stored.
type Summary struct {
	Average      float64     `json:"average"`
	Total        int         `json:"total"`
	Distribution map[int]int `json:"distribution"`
}

// NewSummary builds a Summary from per-star counts.
// Every star value 1..5 appears in Distribution; counts outside that range are ignored.
// Average is the arithmetic mean, 0 when there are no ratings.
func NewSummary(counts map[int]int) Summary {
	s := Summary{Distribution: make(map[int]int, MaxStars)}

	sum := 0
	for stars := MinStars; stars <= MaxStars; stars++ {
		n := counts[stars]
		if n < 0 {
			n = 0
		}
		s.Distribution[stars] = n
		s.Total += n
		sum += stars * n
	}

	if s.Total > 0 {
		s.Average = float64(sum) / float64(s.Total)
	}
	return s
}
