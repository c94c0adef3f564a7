package scene

import (
	"math"

	"github.com/expedition0/lumen/pkg/beam"
)

// Epsilon is the smallest ray parameter counted as a hit, so a ray never
// hits the point it starts from.
const Epsilon = 1e-9

// Shape is analytic geometry a ray can be intersected with. Intersect
// expects a unit dir and returns the ray parameter of the nearest hit in
// (Epsilon, maxDistance] and the unit surface normal there.
type Shape interface {
	Intersect(origin, dir beam.Vec3, maxDistance float64) (float64, beam.Vec3, bool)
}

// Plane is an infinite plane. Its normal is reported as given, whichever
// side the ray comes from.
type Plane struct {
	Point  beam.Vec3
	Normal beam.Vec3
}

func (p Plane) Intersect(origin, dir beam.Vec3, maxDistance float64) (float64, beam.Vec3, bool) {
	n := p.Normal.Normalize()
	denom := n.Dot(dir)
	if math.Abs(denom) < 1e-12 {
		return 0, beam.Vec3{}, false
	}
	t := p.Point.Sub(origin).Dot(n) / denom
	if t <= Epsilon || t > maxDistance {
		return 0, beam.Vec3{}, false
	}
	return t, n, true
}

// Sphere reports outward normals, also for rays cast from inside.
type Sphere struct {
	Center beam.Vec3
	Radius float64
}

func (s Sphere) Intersect(origin, dir beam.Vec3, maxDistance float64) (float64, beam.Vec3, bool) {
	oc := origin.Sub(s.Center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, beam.Vec3{}, false
	}
	sq := math.Sqrt(disc)
	for _, t := range []float64{-b - sq, -b + sq} {
		if t > Epsilon && t <= maxDistance {
			hit := origin.Add(dir.Scale(t))
			return t, hit.Sub(s.Center).Scale(1 / s.Radius), true
		}
	}
	return 0, beam.Vec3{}, false
}

// Box is an axis-aligned box. It reports outward normals, also for rays
// cast from inside.
type Box struct {
	Min, Max beam.Vec3
}

func axes(v beam.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func axisNormal(axis int, sign float64) beam.Vec3 {
	var c [3]float64
	c[axis] = sign
	return beam.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

func (b Box) Intersect(origin, dir beam.Vec3, maxDistance float64) (float64, beam.Vec3, bool) {
	o, d := axes(origin), axes(dir)
	lo, hi := axes(b.Min), axes(b.Max)

	tNear, tFar := math.Inf(-1), math.Inf(1)
	nearAxis, farAxis := -1, -1
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, beam.Vec3{}, false
			}
			continue
		}
		t1, t2 := (lo[i]-o[i])/d[i], (hi[i]-o[i])/d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear, nearAxis = t1, i
		}
		if t2 < tFar {
			tFar, farAxis = t2, i
		}
	}
	if tNear > tFar || farAxis < 0 {
		return 0, beam.Vec3{}, false
	}

	if tNear > Epsilon && nearAxis >= 0 {
		if tNear > maxDistance {
			return 0, beam.Vec3{}, false
		}
		return tNear, axisNormal(nearAxis, -math.Copysign(1, d[nearAxis])), true
	}
	if tFar > Epsilon && tFar <= maxDistance {
		return tFar, axisNormal(farAxis, math.Copysign(1, d[farAxis])), true
	}
	return 0, beam.Vec3{}, false
}
