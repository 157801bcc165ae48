package lm

import (
	"math"
	"testing"
)

func TestFloat16RoundTrip(t *testing.T) {
	cases := []float32{0, 1, 5.11, 13.641709, 20, 0.5, 255.875, -3.25}
	for _, f := range cases {
		h := Float32ToFloat16(f)
		got := Float16ToFloat32(h)
		if math.Abs(float64(got-f)) > 0.01*math.Abs(float64(f))+0.001 {
			t.Errorf("round trip %v -> %#04x -> %v, too far off", f, h, got)
		}
	}
}

func TestFloat16Zero(t *testing.T) {
	if got := Float16ToFloat32(Float32ToFloat16(0)); got != 0 {
		t.Errorf("round trip of 0 = %v", got)
	}
}
