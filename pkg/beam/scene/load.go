package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blang/semver/v4"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/expedition0/lumen/pkg/beam"
)

var validate = validator.New()

// FormatVersion is the scene format this package writes documents for.
// Documents without a version are read as FormatVersion.
var FormatVersion = semver.MustParse("1.1.0")

// SupportedVersions accepts every document a 1.x reader understands.
var SupportedVersions = semver.MustParseRange(">=1.0.0 <2.0.0")

type document struct {
	Version string      `yaml:"version"`
	Beam    *configDoc  `yaml:"beam" validate:"omitempty"`
	Objects []objectDoc `yaml:"objects" validate:"required,min=1,dive"`
}

type configDoc struct {
	MaxBounces    *int             `yaml:"maxBounces" validate:"omitempty,gte=0"`
	MaxDistance   *float64         `yaml:"maxDistance" validate:"omitempty,gt=0"`
	NudgeDistance *float64         `yaml:"nudgeDistance" validate:"omitempty,gte=0"`
	Damage        *float64         `yaml:"damage" validate:"omitempty,gte=0"`
	Mode          *beam.DamageMode `yaml:"mode"`
}

type objectDoc struct {
	Name    string      `yaml:"name"`
	Target  string      `yaml:"target"`
	Plane   *planeDoc   `yaml:"plane" validate:"omitempty"`
	Sphere  *sphereDoc  `yaml:"sphere" validate:"omitempty"`
	Box     *boxDoc     `yaml:"box" validate:"omitempty"`
	Surface *surfaceDoc `yaml:"surface" validate:"omitempty"`
}

type planeDoc struct {
	Point  []float64 `yaml:"point" validate:"len=3"`
	Normal []float64 `yaml:"normal" validate:"len=3"`
}

type sphereDoc struct {
	Center []float64 `yaml:"center" validate:"len=3"`
	Radius float64   `yaml:"radius" validate:"gt=0"`
}

type boxDoc struct {
	Min []float64 `yaml:"min" validate:"len=3"`
	Max []float64 `yaml:"max" validate:"len=3"`
}

type surfaceDoc struct {
	Kind            *beam.Interaction `yaml:"kind"`
	BounceIntensity *float64          `yaml:"bounceIntensity" validate:"omitempty,gte=0,lte=1"`
	IOR             *float64          `yaml:"ior" validate:"omitempty,gte=1"`
}

func vec(c []float64) beam.Vec3 {
	return beam.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

// Load reads a YAML scene. Surfaces and the beam section start from the
// package defaults, so a document only names what it overrides.
func Load(r io.Reader) (*Scene, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scene document")
		}
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	s := New()
	if doc.Version != "" {
		v, err := semver.ParseTolerant(doc.Version)
		if err != nil {
			return nil, fmt.Errorf("invalid scene version: %w", err)
		}
		if !SupportedVersions(v) {
			return nil, fmt.Errorf("scene version %s is not supported, want 1.x", v)
		}
		s.Version = v
	}
	if doc.Beam != nil {
		s.Config = doc.Beam.apply(s.Config)
	}
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}

	for i, o := range doc.Objects {
		obj, err := o.object()
		if err != nil {
			return nil, fmt.Errorf("object %d (%q): %w", i, o.Name, err)
		}
		s.Objects = append(s.Objects, obj)
	}
	return s, nil
}

// LoadBytes is Load over an in-memory document.
func LoadBytes(b []byte) (*Scene, error) {
	return Load(bytes.NewReader(b))
}

func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func (c configDoc) apply(cfg beam.Config) beam.Config {
	if c.MaxBounces != nil {
		cfg.MaxBounces = *c.MaxBounces
	}
	if c.MaxDistance != nil {
		cfg.MaxDistance = *c.MaxDistance
	}
	if c.NudgeDistance != nil {
		cfg.NudgeDistance = *c.NudgeDistance
	}
	if c.Damage != nil {
		cfg.Damage = *c.Damage
	}
	if c.Mode != nil {
		cfg.Mode = *c.Mode
	}
	return cfg
}

func (o objectDoc) object() (Object, error) {
	obj := Object{Name: o.Name, Target: beam.TargetID(o.Target)}

	var shapes []Shape
	if o.Plane != nil {
		n := vec(o.Plane.Normal)
		if n.IsZero() {
			return Object{}, fmt.Errorf("plane normal must not be zero")
		}
		shapes = append(shapes, Plane{Point: vec(o.Plane.Point), Normal: n.Normalize()})
	}
	if o.Sphere != nil {
		shapes = append(shapes, Sphere{Center: vec(o.Sphere.Center), Radius: o.Sphere.Radius})
	}
	if o.Box != nil {
		lo, hi := vec(o.Box.Min), vec(o.Box.Max)
		if lo.X >= hi.X || lo.Y >= hi.Y || lo.Z >= hi.Z {
			return Object{}, fmt.Errorf("box min %s must be below max %s on every axis", lo, hi)
		}
		shapes = append(shapes, Box{Min: lo, Max: hi})
	}
	if len(shapes) != 1 {
		return Object{}, fmt.Errorf("exactly one of plane, sphere or box is required, got %d", len(shapes))
	}
	obj.Shape = shapes[0]

	if o.Surface != nil {
		surface := beam.DefaultSurface()
		if o.Surface.Kind != nil {
			surface.Kind = *o.Surface.Kind
		}
		if o.Surface.BounceIntensity != nil {
			surface.BounceIntensity = *o.Surface.BounceIntensity
		}
		if o.Surface.IOR != nil {
			surface.IOR = *o.Surface.IOR
		}
		if err := surface.Validate(); err != nil {
			return Object{}, err
		}
		obj.Surface = &surface
	}
	return obj, nil
}
