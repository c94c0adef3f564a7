package beam

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DamageMode selects how often a target can be damaged by a beam.
type DamageMode int

const (
	// Instant damages each target once per firing session, until
	// ResetInstantDamage.
	Instant DamageMode = iota
	// OverTime damages every solve, scaled by the elapsed time.
	OverTime
)

var damageModeNames = [...]string{"Instant", "OverTime"}

func (m DamageMode) String() string {
	if m < 0 || int(m) >= len(damageModeNames) {
		return fmt.Sprintf("DamageMode(%d)", int(m))
	}
	return damageModeNames[m]
}

func ParseDamageMode(s string) (DamageMode, error) {
	for i, name := range damageModeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return DamageMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown damage mode %q", s)
}

func (m DamageMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *DamageMode) UnmarshalText(text []byte) error {
	parsed, err := ParseDamageMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Config holds the per-solver beam parameters.
type Config struct {
	MaxBounces    int        `yaml:"maxBounces" validate:"gte=0"`
	MaxDistance   float64    `yaml:"maxDistance" validate:"gt=0"`
	NudgeDistance float64    `yaml:"nudgeDistance" validate:"gte=0"`
	Damage        float64    `yaml:"damage" validate:"gte=0"`
	Mode          DamageMode `yaml:"mode" validate:"gte=0,lte=1"`
}

func DefaultConfig() Config {
	return Config{
		MaxBounces:    5,
		MaxDistance:   100,
		NudgeDistance: 0.001,
		Damage:        10,
		Mode:          Instant,
	}
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid beam config: %w", err)
	}
	return nil
}

func (s Surface) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid surface: %w", err)
	}
	return nil
}
