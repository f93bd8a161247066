package series_test

import (
	"testing"

	"github.com/kpumuk/nodescope/internal/series"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := series.Summarize([]float64{4, -2, 10, 0})
	if s.Count != 4 || s.Min != -2 || s.Max != 10 || s.Avg != 3 {
		t.Fatalf("Summarize = %+v", s)
	}
	minText, maxText, avgText := s.Fixed()
	if minText != "-2.00" || maxText != "10.00" || avgText != "3.00" {
		t.Fatalf("Fixed() = %q %q %q", minText, maxText, avgText)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	s := series.Summarize(nil)
	if !s.Empty() {
		t.Fatalf("Summarize(nil) = %+v, want empty", s)
	}
	minText, maxText, avgText := s.Fixed()
	if minText != "--" || maxText != "--" || avgText != "--" {
		t.Fatalf("Fixed() = %q %q %q", minText, maxText, avgText)
	}
}
