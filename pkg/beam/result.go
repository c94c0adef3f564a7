package beam

import "fmt"

// Segment is one straight stretch of the beam.
type Segment struct {
	Start, End Vec3
	Intensity  float64
}

func (s Segment) Len() float64 {
	return s.Start.Dist(s.End)
}

// DamageEvent records one application of damage to a target.
type DamageEvent struct {
	ID        string
	Target    TargetID
	Intensity float64
	Amount    float64
}

// Outcome is why a trace stopped.
type Outcome int

const (
	// NoHit means the last cast found nothing within MaxDistance.
	NoHit Outcome = iota
	// Absorbed means the beam ended on absorbing or untagged geometry.
	Absorbed
	// Extinguished means the intensity fell to MinIntensity or below.
	Extinguished
	// Trapped means a refracted beam found no exit from its medium.
	Trapped
	// InternalReflection means the beam could not leave a medium.
	InternalReflection
	// BounceLimit means MaxBounces reflections or refractions happened.
	BounceLimit
	// IterationLimit means the safety counter ran out first.
	IterationLimit
)

var outcomeNames = [...]string{
	"NoHit", "Absorbed", "Extinguished", "Trapped",
	"InternalReflection", "BounceLimit", "IterationLimit",
}

// Outcomes lists every outcome in declaration order.
var Outcomes = []Outcome{NoHit, Absorbed, Extinguished, Trapped, InternalReflection, BounceLimit, IterationLimit}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Result is everything one solve produced.
type Result struct {
	Segments []Segment
	// HitSomething is false only when the last cast hit nothing.
	HitSomething bool
	// FinalPoint is the last point the beam reached: the last hit, the
	// exit point of a medium, or the far end of a beam that hit nothing.
	FinalPoint Vec3
	Damage     []DamageEvent
	Bounces    int
	Outcome    Outcome
}

func (r *Result) segment(start, end Vec3, intensity float64) {
	r.Segments = append(r.Segments, Segment{Start: start, End: end, Intensity: intensity})
}
