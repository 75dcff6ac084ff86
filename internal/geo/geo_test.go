package geo

import (
	"math"
	"testing"
)

func TestDistanceKMZeroForSamePoint(t *testing.T) {
	if d := DistanceKM(36.48, 127.29, 36.48, 127.29); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestDistanceKMKnownValue(t *testing.T) {
	// Seoul City Hall to Busan Station is roughly 325 km.
	d := DistanceKM(37.5663, 126.9779, 35.1151, 129.0403)
	if math.Abs(d-325) > 5 {
		t.Errorf("Seoul-Busan distance = %v km, want ~325", d)
	}
}

func TestDistanceKMSymmetric(t *testing.T) {
	d1 := DistanceKM(36.48, 127.29, 36.50, 127.31)
	d2 := DistanceKM(36.50, 127.31, 36.48, 127.29)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}
