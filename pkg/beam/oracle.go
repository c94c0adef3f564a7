package beam

// TargetID identifies something that can take damage. The empty id means
// the geometry is not damageable.
type TargetID string

// Hit is the nearest intersection along a ray.
type Hit struct {
	Point  Vec3
	Normal Vec3
	// Surface is nil for untagged geometry, which absorbs.
	Surface *Surface
	Target  TargetID
}

// Oracle answers ray casts against the host's scene.
type Oracle interface {
	Cast(origin, dir Vec3, maxDistance float64) (Hit, bool)
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(origin, dir Vec3, maxDistance float64) (Hit, bool)

func (f OracleFunc) Cast(origin, dir Vec3, maxDistance float64) (Hit, bool) {
	return f(origin, dir, maxDistance)
}

// DamageSink receives damage for targets the beam strikes.
type DamageSink interface {
	Apply(target TargetID, amount float64)
}

type SinkFunc func(target TargetID, amount float64)

func (f SinkFunc) Apply(target TargetID, amount float64) {
	f(target, amount)
}

type discardSink struct{}

func (discardSink) Apply(TargetID, float64) {}

// Recorder observes every finished solve.
type Recorder interface {
	Observe(Result)
}

type discardRecorder struct{}

func (discardRecorder) Observe(Result) {}
