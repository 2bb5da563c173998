package orafm

import (
	"fmt"
	"strconv"
)

type (
	// Rate tells how often a signal is evaluated by the engine. The
	// values are the rate bytes of the synthdef wire format.
	Rate int8

	// Ref points a ugen input at the output of an earlier ugen, or at an
	// entry of the constant pool when UGen is ConstantIndex. Build Refs
	// only through SynthDef.Const and Input; AddUGen rejects anything
	// that does not resolve.
	Ref struct {
		UGen   int32
		Output int32
	}

	// UGen is one unit-generator instance in the graph: a class name the
	// engine resolves against its plugin library, an evaluation rate,
	// input references, output rates and the special index (operator
	// selector for BinaryOpUGen, first parameter index for the control
	// ugens).
	UGen struct {
		Class   string
		Rate    Rate
		Special int16
		Inputs  []Ref
		Outputs []Rate
	}

	// Param is one named, externally controllable input of a synthdef.
	// Its position in SynthDef.Params is the absolute index the engine
	// uses to address it at runtime.
	Param struct {
		Name    string
		Default float32
		Rate    Rate
	}

	// SynthDef is a named unit-generator graph plus its constant pool
	// and parameter table. It is built once, top to bottom, and is
	// read-only after being handed to the encoder; the zero value is not
	// usable, use NewSynthDef.
	SynthDef struct {
		name       string
		constants  []float32
		constIndex map[string]int
		params     []Param
		paramIndex map[string]int
		numAudio   int
		ugens      []UGen
	}
)

const (
	RateScalar Rate = 0
	RateBlock  Rate = 1
	RateAudio  Rate = 2
)

// ConstantIndex is the ugen index that marks a Ref as a constant-pool
// reference, with Ref.Output holding the pool index.
const ConstantIndex int32 = -1

func (r Rate) String() string {
	switch r {
	case RateScalar:
		return "ir"
	case RateBlock:
		return "kr"
	case RateAudio:
		return "ar"
	}
	return "??"
}

// IsConstant reports whether the reference reads from the constant pool
// rather than from another ugen's output.
func (r Ref) IsConstant() bool {
	return r.UGen == ConstantIndex
}

func (r Ref) String() string {
	if r.IsConstant() {
		return fmt.Sprintf("c%d", r.Output)
	}
	return fmt.Sprintf("u%d.%d", r.UGen, r.Output)
}

// Input makes a reference to output slot output of the ugen at index
// ugen. The reference is validated when it is passed to AddUGen.
func Input(ugen, output int) Ref {
	return Ref{UGen: int32(ugen), Output: int32(output)}
}

func NewSynthDef(name string) *SynthDef {
	return &SynthDef{
		name:       name,
		constIndex: map[string]int{},
		paramIndex: map[string]int{},
	}
}

func (d *SynthDef) Name() string { return d.name }

// Constants returns the constant pool in interning order. The returned
// slice is owned by the SynthDef and must not be mutated.
func (d *SynthDef) Constants() []float32 { return d.constants }

// Params returns the parameter table in absolute-index order: all
// block-rate parameters first, then all audio-rate ones. The returned
// slice is owned by the SynthDef and must not be mutated.
func (d *SynthDef) Params() []Param { return d.params }

// UGens returns the ugens in graph order. The returned slice is owned
// by the SynthDef and must not be mutated.
func (d *SynthDef) UGens() []UGen { return d.ugens }

// NumBlockParams returns the number of block-rate parameters, which is
// also the absolute index of the first audio-rate parameter.
func (d *SynthDef) NumBlockParams() int { return len(d.params) - d.numAudio }

// ParamIndex returns the absolute index of the named parameter.
func (d *SynthDef) ParamIndex(name string) (int, bool) {
	i, ok := d.paramIndex[name]
	return i, ok
}

// constKey is the interning key of a constant: the value rounded to 8
// decimal digits. Values closer than that collapse to one pool entry;
// this tolerance is part of the format the engine-facing callers rely
// on. Negative zero keys as zero, since the rounded string otherwise
// keeps the sign.
func constKey(v float32) string {
	if v == 0 {
		return "0.00000000"
	}
	return strconv.FormatFloat(float64(v), 'f', 8, 32)
}

// Const interns v into the constant pool and returns a reference to it.
// Interning the same value (under the 8-decimal rounding key) twice
// returns the same pool slot; the pool only grows.
func (d *SynthDef) Const(v float32) Ref {
	key := constKey(v)
	i, ok := d.constIndex[key]
	if !ok {
		i = len(d.constants)
		d.constIndex[key] = i
		d.constants = append(d.constants, v)
	}
	return Ref{UGen: ConstantIndex, Output: int32(i)}
}

// AddParam declares a named parameter and returns its absolute index.
// All block-rate parameters must be declared before any audio-rate one,
// because the absolute index of every audio-rate parameter would
// otherwise shift under earlier callers.
func (d *SynthDef) AddParam(name string, defaultValue float32, rate Rate) (int, error) {
	if _, ok := d.paramIndex[name]; ok {
		return 0, &DuplicateParameterError{Name: name}
	}
	switch rate {
	case RateBlock:
		if d.numAudio > 0 {
			return 0, fmt.Errorf("cannot declare block-rate parameter %q after audio-rate parameters", name)
		}
	case RateAudio:
		d.numAudio++
	default:
		return 0, fmt.Errorf("parameter %q must be block or audio rate, got %v", name, rate)
	}
	index := len(d.params)
	d.paramIndex[name] = index
	d.params = append(d.params, Param{Name: name, Default: defaultValue, Rate: rate})
	return index, nil
}

// AddUGen appends a ugen to the graph and returns its index. Every
// input must reference either the constant pool or an output of a ugen
// already in the graph; the node list stays a topologically ordered DAG
// by construction, so the engine can evaluate it front to back.
func (d *SynthDef) AddUGen(class string, rate Rate, inputs []Ref, numOutputs int, special int16) (int, error) {
	index := len(d.ugens)
	for i, in := range inputs {
		if err := d.checkRef(in); err != nil {
			return 0, &DanglingReferenceError{UGen: index, Input: i, Ref: in, Class: class}
		}
	}
	outputs := make([]Rate, numOutputs)
	for i := range outputs {
		outputs[i] = rate
	}
	ins := make([]Ref, len(inputs))
	copy(ins, inputs)
	d.ugens = append(d.ugens, UGen{
		Class:   class,
		Rate:    rate,
		Special: special,
		Inputs:  ins,
		Outputs: outputs,
	})
	return index, nil
}

func (d *SynthDef) checkRef(r Ref) error {
	if r.IsConstant() {
		if r.Output < 0 || int(r.Output) >= len(d.constants) {
			return fmt.Errorf("constant %d out of pool range", r.Output)
		}
		return nil
	}
	if r.UGen < 0 || int(r.UGen) >= len(d.ugens) {
		return fmt.Errorf("ugen %d does not exist yet", r.UGen)
	}
	if r.Output < 0 || int(r.Output) >= len(d.ugens[r.UGen].Outputs) {
		return fmt.Errorf("ugen %d has no output %d", r.UGen, r.Output)
	}
	return nil
}
