package math

import (
	"testing"
)

func near(a, b float32) bool {
	d := a - b
	return d > -1e-4 && d < 1e-4
}

func nearVec(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

var identity = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

func TestMulIdentity(t *testing.T) {
	m := Perspective(Radians(60), 1.5, 0.5, 200)
	result := m.Mul(identity)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	// A unit-extent box centred on (-10, -20, -30) only shifts points.
	m := Ortho(-11, -9, -21, -19, 31, 29)
	got := m.TransformPoint(Vec3{1, 2, 3})
	if got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformPoint: got %v, want (11, 22, 33)", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(Radians(45), 1, 0.1, 100)

	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}

	// Points on the near and far planes map to -1 and +1 depth
	if z := m.TransformPoint(Vec3{0, 0, -0.1}).Z; !near(z, -1) {
		t.Errorf("near plane depth = %f, want -1", z)
	}
	if z := m.TransformPoint(Vec3{0, 0, -100}).Z; !near(z, 1) {
		t.Errorf("far plane depth = %f, want 1", z)
	}
}

func TestOrthoMapsBoxToClipCube(t *testing.T) {
	m := Ortho(-10, 10, -5, 5, 1, 21)

	if got := m.TransformPoint(Vec3{10, 5, -1}); !nearVec(got, Vec3{1, 1, -1}) {
		t.Errorf("corner maps to %v, want (1, 1, -1)", got)
	}
	if got := m.TransformPoint(Vec3{-10, -5, -21}); !nearVec(got, Vec3{-1, -1, 1}) {
		t.Errorf("corner maps to %v, want (-1, -1, 1)", got)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{3, 4, 5}
	m := LookAt(eye, Vec3{}, Up)

	if got := m.TransformPoint(eye); !nearVec(got, Vec3{}) {
		t.Errorf("eye maps to %v, want origin", got)
	}

	// The target lies straight ahead on -Z
	dist := eye.Length()
	if got := m.TransformPoint(Vec3{}); !nearVec(got, Vec3{0, 0, -dist}) {
		t.Errorf("target maps to %v, want (0, 0, %f)", got, -dist)
	}
}
