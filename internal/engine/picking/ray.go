// Package picking casts rays against streamed terrain.
package picking

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/chunkscape/internal/engine/terrain"
	"github.com/Faultbox/chunkscape/pkg/math"
)

// Refinement steps once a march step crosses the surface.
const bisectSteps = 16

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// NewRay creates a ray, normalizing dir.
func NewRay(origin, dir math.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if math32.Abs(r.Direction.Y) < 0.001 {
		return 0, 0, false // Parallel
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Behind origin
	}

	p := r.At(t)
	return p.X, p.Z, true
}

// GroundHit is a point found by PickGround.
type GroundHit struct {
	Point   math.Vec3
	Terrain bool // false when the point lies on the fallback plane
}

// PickGround marches the ray against field inside loaded. When nothing is
// loaded (nil) or the march misses, it falls back to the horizontal plane at
// planeY.
func (r Ray) PickGround(field terrain.HeightField, loaded *terrain.Bounds, step, planeY float32) (GroundHit, bool) {
	if loaded != nil {
		if p, ok := r.IntersectHeightField(field, *loaded, step); ok {
			return GroundHit{Point: p, Terrain: true}, true
		}
	}

	x, z, ok := r.IntersectPlaneY(planeY)
	if !ok {
		return GroundHit{}, false
	}
	return GroundHit{Point: math.Vec3{X: x, Y: planeY, Z: z}}, true
}

// IntersectBounds tests ray intersection with an axis-aligned box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectBounds(b terrain.Bounds) (t float32, hit bool) {
	tmin, tmax, ok := r.slabs(b)
	if !ok {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// slabs clips the ray to b and returns the entry and exit distances.
func (r Ray) slabs(b terrain.Bounds) (tmin, tmax float32, ok bool) {
	tmin = -gomath.MaxFloat32
	tmax = gomath.MaxFloat32

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := b.Min.Array()
	hi := b.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, 0, false
			}
			continue
		}

		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// IntersectHeightField finds the first point where the ray passes below
// field inside b. It marches in steps of step world units and refines the
// crossing by bisection.
func (r Ray) IntersectHeightField(field terrain.HeightField, b terrain.Bounds, step float32) (math.Vec3, bool) {
	if step <= 0 {
		return math.Vec3{}, false
	}

	tmin, tmax, ok := r.slabs(b)
	if !ok {
		return math.Vec3{}, false
	}
	tmin = max(tmin, 0)

	above := func(t float32) bool {
		p := r.At(t)
		return p.Y > field.Height(p.X, p.Z)
	}

	if !above(tmin) {
		return r.At(tmin), true
	}

	prev := tmin
	for t := tmin + step; ; t += step {
		t = min(t, tmax)
		if !above(t) {
			lo, hi := prev, t
			for i := 0; i < bisectSteps; i++ {
				mid := (lo + hi) / 2
				if above(mid) {
					lo = mid
				} else {
					hi = mid
				}
			}
			return r.At(hi), true
		}
		if t >= tmax {
			return math.Vec3{}, false
		}
		prev = t
	}
}
