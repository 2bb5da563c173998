package orafm

import (
	"errors"
	"fmt"
)

type (
	// GenSpec is the declarative description of one generator: the core
	// ugen class and the parameters exposed to the outside. It is
	// usually read from a YAML file and handed to BuildSynthDef.
	GenSpec struct {
		Name string `yaml:"name"`

		// UGen is the class of the core generator, e.g. "Saw" or
		// "SinOsc". The core inputs are fed to it in declared order.
		UGen string `yaml:"ugen"`

		Params []ParamSpec `yaml:"params"`
	}

	// ParamSpec declares one externally controllable parameter.
	ParamSpec struct {
		Name    string  `yaml:"name"`
		Default float32 `yaml:"default"`

		// Role is RoleCore ("" or "core") or RoleAmp ("amp"). At most
		// one parameter may carry RoleAmp; it scales the core output
		// and is clamped to be non-negative unless an explicit clamp is
		// given.
		Role Role `yaml:"role,omitempty"`

		// Mod, when non-empty, additionally declares an audio-rate
		// modulation parameter under that name, added to the base value
		// at audio rate.
		Mod string `yaml:"mod,omitempty"`

		// Trig marks the parameter as a one-shot trigger exposed
		// through TrigControl. Triggers cannot be modulated, clamped or
		// used as amplitude.
		Trig bool `yaml:"trig,omitempty"`

		Clamp *ClampSpec `yaml:"clamp,omitempty"`
	}

	// ClampSpec bounds the resolved parameter signal. Min alone clamps
	// from below; Min and Max together clip to the range. Max alone is
	// invalid.
	ClampSpec struct {
		Min *float32 `yaml:"min"`
		Max *float32 `yaml:"max,omitempty"`
	}

	Role string
)

const (
	RoleCore Role = "core"
	RoleAmp  Role = "amp"
)

// Names the pattern builder appends itself; specs may not declare them.
const (
	ParamPan    = "pan"
	ParamOutBus = "out_bus"
)

// Validate checks the spec invariants that are not caught naturally
// while building: role values, the single-amplitude rule, trigger
// exclusions and clamp shape. Duplicate parameter names are reported by
// the build itself as DuplicateParameterError.
func (s *GenSpec) Validate() error {
	if s.Name == "" {
		return errors.New("generator has no name")
	}
	if s.UGen == "" {
		return fmt.Errorf("generator %q has no core ugen class", s.Name)
	}
	amps := 0
	for _, p := range s.Params {
		if p.Name == "" {
			return fmt.Errorf("generator %q has a parameter without a name", s.Name)
		}
		if p.Name == ParamPan || p.Name == ParamOutBus {
			return fmt.Errorf("parameter name %q is reserved", p.Name)
		}
		switch p.Role {
		case "", RoleCore:
		case RoleAmp:
			amps++
		default:
			return fmt.Errorf("parameter %q has unknown role %q", p.Name, p.Role)
		}
		if p.Trig && (p.Mod != "" || p.Clamp != nil || p.Role == RoleAmp) {
			return fmt.Errorf("trigger parameter %q cannot have modulation, clamp or amplitude role", p.Name)
		}
		if p.Clamp != nil && p.Clamp.Min == nil {
			return fmt.Errorf("parameter %q has a clamp without a lower bound", p.Name)
		}
	}
	if amps > 1 {
		return fmt.Errorf("generator %q declares %d amplitude parameters, at most one is allowed", s.Name, amps)
	}
	return nil
}
