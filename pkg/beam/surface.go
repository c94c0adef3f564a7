package beam

import (
	"fmt"
	"strings"
)

// Interaction is how a surface treats a beam that strikes it.
type Interaction int

const (
	// Absorb stops the beam. Untagged geometry behaves the same way.
	Absorb Interaction = iota
	// Reflect mirrors the beam about the surface normal.
	Reflect
	// Refract bends the beam into the medium and out again.
	Refract
	// Passthrough keeps the direction but still loses intensity.
	Passthrough
	// Ignore lets the beam through untouched.
	Ignore
)

var interactionNames = [...]string{"Absorb", "Reflect", "Refract", "Passthrough", "Ignore"}

func (i Interaction) String() string {
	if i < 0 || int(i) >= len(interactionNames) {
		return fmt.Sprintf("Interaction(%d)", int(i))
	}
	return interactionNames[i]
}

func ParseInteraction(s string) (Interaction, error) {
	for i, name := range interactionNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Interaction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown surface interaction %q", s)
}

func (i Interaction) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Interaction) UnmarshalText(text []byte) error {
	parsed, err := ParseInteraction(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Surface is the interaction policy attached to a piece of geometry.
type Surface struct {
	Kind Interaction `yaml:"kind" validate:"gte=0,lte=4"`
	// BounceIntensity is the fraction of intensity kept on reflect,
	// refract and passthrough.
	BounceIntensity float64 `yaml:"bounceIntensity" validate:"gte=0,lte=1"`
	// IOR is the index of refraction, used by Refract only.
	IOR float64 `yaml:"ior" validate:"gte=1"`
}

// DefaultSurface is a tagged surface with nothing overridden.
func DefaultSurface() Surface {
	return Surface{
		Kind:            Reflect,
		BounceIntensity: 0.75,
		IOR:             1.5,
	}
}
