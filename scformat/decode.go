package scformat

import (
	"encoding/binary"
	"fmt"
	"math"
)

type (
	// Def is a decoded synthdef, kept as flat wire-level records. The
	// decoder exists for round-trip verification of the encoder; it is
	// not a general synthdef reader and does not rebuild a SynthDef.
	Def struct {
		Name          string
		Constants     []float32
		ParamDefaults []float32
		ParamNames    []ParamName
		UGens         []UGenDef
	}

	ParamName struct {
		Name  string
		Index int32
	}

	UGenDef struct {
		Class   string
		Rate    int8
		Special int16
		Inputs  []InputDef
		Outputs []int8
	}

	InputDef struct {
		UGen   int32
		Output int32
	}
)

// Decode parses an encoded synthdef file produced by Encode.
func Decode(data []byte) ([]Def, error) {
	r := &reader{data: data}
	if got := string(r.bytes(4)); r.err == nil && got != magic {
		return nil, fmt.Errorf("bad magic %q, want %q", got, magic)
	}
	if v := r.int32(); r.err == nil && v != version {
		return nil, fmt.Errorf("unsupported format version %d, want %d", v, version)
	}
	numDefs := r.int16()
	defs := make([]Def, 0, numDefs)
	for i := int16(0); i < numDefs && r.err == nil; i++ {
		defs = append(defs, r.def())
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.pos != len(r.data) {
		return nil, fmt.Errorf("%d trailing bytes after %d synthdefs", len(r.data)-r.pos, numDefs)
	}
	return defs, nil
}

type reader struct {
	data []byte
	pos  int
	err  error
}

func (r *reader) def() (d Def) {
	d.Name = r.pstring()
	d.Constants = r.floats(int(r.int32()))
	d.ParamDefaults = r.floats(int(r.int32()))
	numNames := r.int32()
	for i := int32(0); i < numNames && r.err == nil; i++ {
		d.ParamNames = append(d.ParamNames, ParamName{Name: r.pstring(), Index: r.int32()})
	}
	numUGens := r.int32()
	for i := int32(0); i < numUGens && r.err == nil; i++ {
		u := UGenDef{Class: r.pstring(), Rate: r.int8()}
		numInputs := r.int32()
		numOutputs := r.int32()
		u.Special = r.int16()
		for j := int32(0); j < numInputs && r.err == nil; j++ {
			u.Inputs = append(u.Inputs, InputDef{UGen: r.int32(), Output: r.int32()})
		}
		for j := int32(0); j < numOutputs && r.err == nil; j++ {
			u.Outputs = append(u.Outputs, r.int8())
		}
		d.UGens = append(d.UGens, u)
	}
	if numVariants := r.int16(); r.err == nil && numVariants != 0 {
		r.err = fmt.Errorf("synthdef %q carries %d variants, the format writes none", d.Name, numVariants)
	}
	return d
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.pos+n > len(r.data) {
		r.err = fmt.Errorf("unexpected end of data at byte %d", r.pos)
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) int8() int8 {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return int8(b[0])
}

func (r *reader) int16() int16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return int16(binary.BigEndian.Uint16(b))
}

func (r *reader) int32() int32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(b))
}

func (r *reader) float32() float32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}

func (r *reader) floats(n int) []float32 {
	if r.err != nil || n < 0 {
		return nil
	}
	out := make([]float32, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		out = append(out, r.float32())
	}
	return out
}

func (r *reader) pstring() string {
	n := r.bytes(1)
	if n == nil {
		return ""
	}
	return string(r.bytes(int(n[0])))
}
