package series

import "strconv"

// Summary holds whole-history statistics for a parameter.
type Summary struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}

// Summarize computes count, min, max and arithmetic mean.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{Count: len(values), Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		sum += v
	}
	s.Avg = sum / float64(len(values))
	return s
}

// Empty reports whether no values contributed.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// Fixed returns min, max and avg formatted with two decimals, or "--" each
// when the summary is empty.
func (s Summary) Fixed() (string, string, string) {
	if s.Empty() {
		return "--", "--", "--"
	}
	return fixed2(s.Min), fixed2(s.Max), fixed2(s.Avg)
}

func fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
