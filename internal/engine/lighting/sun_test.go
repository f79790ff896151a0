package lighting

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		lon, lat float32
		x, y, z  float32
	}{
		{0, 90, 0, 1, 0},
		{0, 0, 0, 0, 1},
		{90, 0, 1, 0, 0},
		{180, 45, 0, math32.Sqrt(0.5), -math32.Sqrt(0.5)},
	}

	for _, tt := range tests {
		d := SunDirection(tt.lon, tt.lat)
		if math32.Abs(d.X-tt.x) > 1e-5 || math32.Abs(d.Y-tt.y) > 1e-5 || math32.Abs(d.Z-tt.z) > 1e-5 {
			t.Errorf("SunDirection(%v, %v) = %v, want (%v, %v, %v)", tt.lon, tt.lat, d, tt.x, tt.y, tt.z)
		}
		if l := d.Length(); math32.Abs(l-1) > 1e-5 {
			t.Errorf("SunDirection(%v, %v) has length %v", tt.lon, tt.lat, l)
		}
	}
}

func TestSunUsesAngles(t *testing.T) {
	s := Sun{Longitude: 45, Latitude: 50}
	if s.Direction() != SunDirection(45, 50) {
		t.Error("Sun.Direction should match SunDirection")
	}
}
