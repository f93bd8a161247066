package pipeline_test

import (
	"testing"

	"github.com/kpumuk/nodescope/internal/pipeline"
)

func TestAxisFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		min    float64
		max    float64
	}{
		{name: "no values", values: nil, min: 0, max: 100},
		{name: "tens", values: []float64{20, 120}, min: 13.95, max: 126.05},
		{name: "single digits across zero", values: []float64{-5, 5}, min: -5.605, max: 5.605},
		{name: "fraction", values: []float64{0.5}, min: 0.4895, max: 0.5105},
		{name: "small positive floors at zero", values: []float64{0.005}, min: 0, max: 0.02075},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := pipeline.AxisFor(tt.values)
			if !approx(got.Min, tt.min) || !approx(got.Max, tt.max) {
				t.Fatalf("AxisFor(%v) = %+v, want [%v, %v]", tt.values, got, tt.min, tt.max)
			}
			if !approx(got.Step, (got.Max-got.Min)/5) {
				t.Fatalf("Step = %v", got.Step)
			}
		})
	}
}
