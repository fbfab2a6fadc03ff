package utils

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"below range", 0.1, 0.2, 0.8, 0.2},
		{"above range", 0.9, 0.2, 0.8, 0.8},
		{"inside range", 0.5, 0.2, 0.8, 0.5},
		{"at lower bound", 0.2, 0.2, 0.8, 0.2},
		{"at upper bound", 0.8, 0.2, 0.8, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestMeanStdDev(t *testing.T) {
	mean, stddev := MeanStdDev([]float64{0.2, 0.4, 0.6})
	if math.Abs(mean-0.4) > 1e-9 {
		t.Errorf("mean = %v, want 0.4", mean)
	}
	want := math.Sqrt(((0.04) + 0 + (0.04)) / 3)
	if math.Abs(stddev-want) > 1e-9 {
		t.Errorf("stddev = %v, want %v", stddev, want)
	}

	mean, stddev = MeanStdDev(nil)
	if mean != 0 || stddev != 0 {
		t.Errorf("empty input: got (%v, %v), want (0, 0)", mean, stddev)
	}
}

func TestMinMax(t *testing.T) {
	minV, maxV := MinMax([]float64{0.5, 0.1, 0.9, 0.3})
	if minV != 0.1 || maxV != 0.9 {
		t.Errorf("MinMax = (%v, %v), want (0.1, 0.9)", minV, maxV)
	}
}

func TestNormalizeL2(t *testing.T) {
	v := []float32{3, 4}
	NormalizeL2(v)
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("NormalizeL2 = %v, want [0.6 0.8]", v)
	}

	zero := []float32{0, 0}
	NormalizeL2(zero)
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector changed: %v", zero)
	}
}
