package utils

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
}

func TestWorldScreenRoundTrip(t *testing.T) {
	sx, sy := WorldToScreen(2, 3)
	x, y := ScreenToWorld(int(sx), int(sy))
	if math.Abs(x-2) > 1e-9 || math.Abs(y-3) > 1e-9 {
		t.Errorf("round trip gave (%v, %v)", x, y)
	}
}

func TestClamp01(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0.25: 0.25, 7: 1} {
		if got := Clamp01(in); got != want {
			t.Errorf("Clamp01(%v) = %v, want %v", in, got, want)
		}
	}
}
