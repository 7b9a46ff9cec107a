package util

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	// Salt Lake City to Provo, roughly 63 km.
	d := DistanceKm(40.7608, -111.8910, 40.2338, -111.6585)
	if d < 55 || d > 70 {
		t.Errorf("SLC-Provo distance out of range: %f km", d)
	}

	if d := DistanceKm(40.5, -111.5, 40.5, -111.5); d > 1e-6 {
		t.Errorf("distance to self should be zero, got %f", d)
	}
}

func TestMinDistanceToPathKm(t *testing.T) {
	path := [][2]float64{
		{40.0, -111.0},
		{40.5, -111.5},
		{41.0, -112.0},
	}

	d := MinDistanceToPathKm(40.5, -111.5, path)
	if d > 1e-6 {
		t.Errorf("point on path should have zero distance, got %f", d)
	}

	if d := MinDistanceToPathKm(40.5, -111.5, nil); !math.IsInf(d, 1) {
		t.Errorf("empty path should give +Inf, got %f", d)
	}
}

func TestClosestPointIndex(t *testing.T) {
	path := [][2]float64{
		{40.0, -111.0},
		{40.5, -111.5},
		{41.0, -112.0},
	}

	if idx := ClosestPointIndex(40.51, -111.51, path); idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if idx := ClosestPointIndex(40.0, -111.0, nil); idx != -1 {
		t.Errorf("expected -1 for empty path, got %d", idx)
	}
}

func TestShortUUID(t *testing.T) {
	a := ShortUUID()
	b := ShortUUID()
	if len(a) != 22 {
		t.Errorf("expected 22 symbols, got %d", len(a))
	}
	if a == b {
		t.Error("two generated IDs should differ")
	}
}
