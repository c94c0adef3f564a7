package beam

import (
	"errors"
	"time"

	"github.com/go-logr/logr"

	"github.com/expedition0/lumen/pkg/beam/eventid"
)

// MinIntensity is the intensity at or below which a beam goes out.
const MinIntensity = 0.01

var ErrNoOracle = errors.New("no oracle to cast rays against")

// Solver traces beams through a scene and applies their damage. A Solver
// remembers which targets were damaged during the current Instant firing
// session, so it is not safe for concurrent use. Independent beams should
// use independent solvers.
type Solver struct {
	oracle   Oracle
	config   Config
	sink     DamageSink
	now      func() time.Time
	tracer   Tracer
	logger   logr.Logger
	recorder Recorder
	ids      eventid.Provider

	last    time.Time
	instant map[TargetID]struct{}
}

type Option func(s *Solver) error

func WithConfig(c Config) Option {
	return func(s *Solver) error {
		if err := c.Validate(); err != nil {
			return err
		}
		s.config = c
		return nil
	}
}

func WithSink(sink DamageSink) Option {
	return func(s *Solver) error {
		s.sink = sink
		return nil
	}
}

// WithClock sets the clock Solve uses to measure time between calls.
func WithClock(now func() time.Time) Option {
	return func(s *Solver) error {
		s.now = now
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

func WithLogger(l logr.Logger) Option {
	return func(s *Solver) error {
		s.logger = l
		return nil
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Solver) error {
		s.recorder = r
		return nil
	}
}

func WithEventIDs(p eventid.Provider) Option {
	return func(s *Solver) error {
		s.ids = p
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.oracle == nil {
			return ErrNoOracle
		}
		return nil
	},
	func(s *Solver) error {
		if s.config == (Config{}) {
			s.config = DefaultConfig()
		}
		return nil
	},
	func(s *Solver) error {
		if s.sink == nil {
			s.sink = discardSink{}
		}
		return nil
	},
	func(s *Solver) error {
		if s.now == nil {
			s.now = time.Now
		}
		return nil
	},
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
	func(s *Solver) error {
		if s.logger.GetSink() == nil {
			s.logger = logr.Discard()
		}
		return nil
	},
	func(s *Solver) error {
		if s.recorder == nil {
			s.recorder = discardRecorder{}
		}
		return nil
	},
	func(s *Solver) error {
		if s.ids == nil {
			s.ids = eventid.Counter()
		}
		return nil
	},
}

func NewSolver(oracle Oracle, options ...Option) (*Solver, error) {
	s := Solver{
		oracle:  oracle,
		instant: map[TargetID]struct{}{},
	}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (s *Solver) Config() Config {
	return s.config
}

// ResetInstantDamage ends the current firing session: targets already
// damaged in Instant mode can be damaged again, and the next Solve starts
// a new OverTime measurement with dt = 0 instead of spanning the pause.
func (s *Solver) ResetInstantDamage() {
	s.instant = map[TargetID]struct{}{}
	s.last = time.Time{}
	s.logger.V(1).Info("instant damage reset")
}

// Solve traces a beam from origin along dir. In OverTime mode damage is
// scaled by the time since the previous Solve, zero on the first call of
// a firing session.
func (s *Solver) Solve(origin, dir Vec3) Result {
	now := s.now()
	var dt float64
	if !s.last.IsZero() {
		dt = now.Sub(s.last).Seconds()
	}
	s.last = now
	return s.SolveDelta(origin, dir, dt)
}

// SolveDelta is Solve with the elapsed time given in seconds. It does not
// touch the clock Solve measures against.
func (s *Solver) SolveDelta(origin, dir Vec3, dt float64) Result {
	t := tracing{
		Solver:  s,
		dt:      dt,
		damaged: map[TargetID]struct{}{},
	}
	r := t.run(origin, dir.Normalize())
	s.recorder.Observe(r)
	s.logger.V(1).Info("beam solved",
		"outcome", r.Outcome.String(),
		"segments", len(r.Segments),
		"bounces", r.Bounces,
		"damageEvents", len(r.Damage),
		"finalPoint", r.FinalPoint.String(),
	)
	return r
}

// tracing is the state of a single solve.
type tracing struct {
	*Solver
	dt      float64
	damaged map[TargetID]struct{}
	result  Result
}

func (t *tracing) run(origin, dir Vec3) Result {
	cfg := t.config
	r := &t.result
	pos, intensity := origin, 1.0
	maxIterations := 2*cfg.MaxBounces + 5

	if dir.IsZero() {
		r.segment(pos, pos, intensity)
		r.FinalPoint = pos
		r.Outcome = NoHit
		return *r
	}

	for iteration := 1; ; iteration++ {
		if r.Bounces >= cfg.MaxBounces {
			r.Outcome = BounceLimit
			return *r
		}
		if iteration > maxIterations {
			r.Outcome = IterationLimit
			return *r
		}

		hit, ok := t.oracle.Cast(pos, dir, cfg.MaxDistance)
		step := Step{Iteration: iteration, Position: pos, Direction: dir, Intensity: intensity, Bounces: r.Bounces}
		if ok {
			step.Hit = &hit
		}
		t.tracer.Trace(step)

		if !ok {
			end := pos.Add(dir.Scale(cfg.MaxDistance))
			r.segment(pos, end, intensity)
			r.HitSomething = false
			r.FinalPoint = end
			r.Outcome = NoHit
			return *r
		}
		r.HitSomething = true
		r.FinalPoint = hit.Point

		surface := hit.Surface
		if surface == nil || surface.Kind == Absorb {
			r.segment(pos, hit.Point, intensity)
			t.damage(hit.Target, intensity)
			r.Outcome = Absorbed
			return *r
		}
		if surface.Kind == Ignore {
			r.segment(pos, hit.Point, intensity)
			pos = hit.Point.Add(dir.Scale(cfg.NudgeDistance))
			continue
		}

		previous := intensity
		intensity *= surface.BounceIntensity
		t.damage(hit.Target, previous)
		r.segment(pos, hit.Point, previous)
		if intensity <= MinIntensity {
			r.Outcome = Extinguished
			return *r
		}

		switch surface.Kind {
		case Passthrough:
			pos = hit.Point.Add(dir.Scale(cfg.NudgeDistance))
		case Reflect:
			dir = dir.Reflect(hit.Normal)
			pos = hit.Point.Add(dir.Scale(cfg.NudgeDistance))
			r.Bounces++
		case Refract:
			var stop bool
			pos, dir, stop = t.refract(hit, dir, intensity, surface.IOR)
			if stop {
				return *r
			}
			r.Bounces++
		default:
			// unknown kinds absorb like untagged geometry
			r.Outcome = Absorbed
			return *r
		}
	}
}

// refract carries the beam into the medium behind hit and out of its far
// side. It reports stop when the trace ends inside the medium.
func (t *tracing) refract(hit Hit, dir Vec3, intensity, ior float64) (Vec3, Vec3, bool) {
	cfg := t.config
	r := &t.result

	entry, ok := RefractDir(dir, hit.Normal, 1.0, ior)
	if !ok {
		dir = dir.Reflect(hit.Normal)
		return hit.Point.Add(dir.Scale(cfg.NudgeDistance)), dir, false
	}

	inside := hit.Point.Add(entry.Scale(cfg.NudgeDistance))
	exit, ok := t.oracle.Cast(inside, entry, cfg.MaxDistance)
	if !ok {
		t.logger.V(2).Info("beam trapped in medium", "entry", hit.Point.String())
		r.Outcome = Trapped
		return hit.Point, entry, true
	}
	r.segment(hit.Point, exit.Point, intensity)
	r.FinalPoint = exit.Point

	out, ok := RefractDir(entry, exit.Normal.Neg(), ior, 1.0)
	if !ok {
		// reflect internally and stop there
		dir = entry.Reflect(exit.Normal.Neg())
		r.Outcome = InternalReflection
		return exit.Point.Add(dir.Scale(cfg.NudgeDistance)), dir, true
	}
	return exit.Point.Add(out.Scale(cfg.NudgeDistance)), out, false
}

// damage applies at most one hit per target per solve and, in Instant
// mode, one per target per firing session.
func (t *tracing) damage(target TargetID, intensity float64) {
	if target == "" {
		return
	}
	if _, ok := t.damaged[target]; ok {
		return
	}
	t.damaged[target] = struct{}{}

	amount := t.config.Damage * intensity
	switch t.config.Mode {
	case Instant:
		if _, ok := t.instant[target]; ok {
			return
		}
		t.instant[target] = struct{}{}
	case OverTime:
		amount *= t.dt
	}

	ev := DamageEvent{
		ID:        t.ids.Next(),
		Target:    target,
		Intensity: intensity,
		Amount:    amount,
	}
	t.result.Damage = append(t.result.Damage, ev)
	t.logger.V(2).Info("damage applied", "id", ev.ID, "target", string(target), "amount", amount)
	t.sink.Apply(target, amount)
}
