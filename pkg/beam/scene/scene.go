package scene

import (
	"github.com/blang/semver/v4"

	"github.com/expedition0/lumen/pkg/beam"
)

// Object is a shape with an optional surface policy and damage target.
type Object struct {
	Name    string
	Shape   Shape
	Surface *beam.Surface
	Target  beam.TargetID
}

// Scene is a read-only set of objects and the beam configuration that
// came with them. It implements beam.Oracle.
type Scene struct {
	Version semver.Version
	Objects []Object
	Config  beam.Config
}

var _ beam.Oracle = &Scene{}

func New(objects ...Object) *Scene {
	return &Scene{Version: FormatVersion, Objects: objects, Config: beam.DefaultConfig()}
}

// Cast returns the nearest hit along the ray. Ties go to the object listed
// first. dir need not be unit length; maxDistance is measured in scene
// units either way.
func (s *Scene) Cast(origin, dir beam.Vec3, maxDistance float64) (beam.Hit, bool) {
	if dir.IsZero() {
		return beam.Hit{}, false
	}
	dir = dir.Normalize()
	best := -1
	var bestT float64
	var bestNormal beam.Vec3
	for i, o := range s.Objects {
		t, n, ok := o.Shape.Intersect(origin, dir, maxDistance)
		if !ok || (best >= 0 && t >= bestT) {
			continue
		}
		best, bestT, bestNormal = i, t, n
	}
	if best < 0 {
		return beam.Hit{}, false
	}
	o := s.Objects[best]
	return beam.Hit{
		Point:   origin.Add(dir.Scale(bestT)),
		Normal:  bestNormal,
		Surface: o.Surface,
		Target:  o.Target,
	}, true
}

// Object returns the named object.
func (s *Scene) Object(name string) (Object, bool) {
	for _, o := range s.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return Object{}, false
}
