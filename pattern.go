package orafm

// BuildSynthDef assembles the complete unit-generator graph for one
// generator spec:
//
//	Control/TrigControl/AudioControl expose the parameters
//	  -> per parameter: optional audio-rate modulation add + clamp
//	  -> core generator (core inputs in declared order)
//	  -> amplitude multiply (when an amp parameter exists)
//	  -> Pan2 stereo panning
//	  -> per-channel safety Clip to [-1, 1]
//	  -> out_bus <= 0 comparison + per-channel Select
//	  -> Out writes both channels to out_bus
//
// The parameter table is laid out as: declared non-trigger parameters
// in order, then "pan", then "out_bus", then the trigger parameters,
// then the modulation parameters in declared order. The engine
// addresses parameters purely by absolute index, so this layout is
// frozen for existing callers.
//
// Every call builds an independent document; building the same spec
// twice yields byte-identical encodings.
func BuildSynthDef(spec GenSpec) (*SynthDef, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	d := NewSynthDef(spec.Name)
	b := &graphBuilder{d: d}

	nCtl := 0
	for _, p := range spec.Params {
		if !p.Trig {
			b.param(p.Name, p.Default, RateBlock)
			nCtl++
		}
	}
	panIndex := b.param(ParamPan, 0, RateBlock)
	busIndex := b.param(ParamOutBus, 0, RateBlock)
	nCtl += 2
	nTrig := 0
	for _, p := range spec.Params {
		if p.Trig {
			b.param(p.Name, p.Default, RateBlock)
			nTrig++
		}
	}
	nMod := 0
	for _, p := range spec.Params {
		if p.Mod != "" {
			b.param(p.Mod, 0, RateAudio)
			nMod++
		}
	}
	if b.err != nil {
		return nil, b.err
	}

	ctl := b.ugen(ClassControl, RateBlock, nil, nCtl, 0)
	trigCtl := 0
	if nTrig > 0 {
		trigCtl = b.ugen(ClassTrigControl, RateBlock, nil, nTrig, int16(nCtl))
	}
	audioCtl := 0
	if nMod > 0 {
		audioCtl = b.ugen(ClassAudioControl, RateAudio, nil, nMod, int16(nCtl+nTrig))
	}

	// resolve each parameter to the reference the rest of the graph
	// consumes; unmodulated, unclamped parameters contribute their raw
	// control output with no extra nodes
	var (
		core   []Ref
		amp    Ref
		hasAmp bool
	)
	blockNo, trigNo, modNo := 0, 0, 0
	for _, p := range spec.Params {
		if p.Trig {
			core = append(core, Input(trigCtl, trigNo))
			trigNo++
			continue
		}
		sig := Input(ctl, blockNo)
		blockNo++
		rate := RateBlock
		if p.Mod != "" {
			sig = b.binop(OpAdd, RateAudio, sig, Input(audioCtl, modNo))
			modNo++
			rate = RateAudio
		}
		switch {
		case p.Clamp != nil && p.Clamp.Max != nil:
			clip := b.ugen(ClassClip, rate, []Ref{sig, d.Const(*p.Clamp.Min), d.Const(*p.Clamp.Max)}, 1, 0)
			sig = Input(clip, 0)
		case p.Clamp != nil:
			sig = b.binop(OpMax, rate, sig, d.Const(*p.Clamp.Min))
		case p.Role == RoleAmp:
			// amplitude is never negative
			sig = b.binop(OpMax, rate, sig, d.Const(0))
		}
		if p.Role == RoleAmp {
			amp, hasAmp = sig, true
		} else {
			core = append(core, sig)
		}
	}

	gen := b.ugen(spec.UGen, RateAudio, core, 1, 0)
	sig := Input(gen, 0)
	if hasAmp {
		sig = b.binop(OpMul, RateAudio, sig, amp)
	}
	pan := b.ugen(ClassPan2, RateAudio, []Ref{sig, Input(ctl, panIndex), d.Const(1)}, 2, 0)
	clipL := b.ugen(ClassClip, RateAudio, []Ref{Input(pan, 0), d.Const(-1), d.Const(1)}, 1, 0)
	clipR := b.ugen(ClassClip, RateAudio, []Ref{Input(pan, 1), d.Const(-1), d.Const(1)}, 1, 0)
	// bus 0 is the hardware output and always receives the clipped
	// signal; internal routing busses get the full-range one
	hw := b.binop(OpLe, RateBlock, Input(ctl, busIndex), d.Const(0))
	selL := b.ugen(ClassSelect, RateAudio, []Ref{hw, Input(pan, 0), Input(clipL, 0)}, 1, 0)
	selR := b.ugen(ClassSelect, RateAudio, []Ref{hw, Input(pan, 1), Input(clipR, 0)}, 1, 0)
	b.ugen(ClassOut, RateAudio, []Ref{Input(ctl, busIndex), Input(selL, 0), Input(selR, 0)}, 0, 0)
	if b.err != nil {
		return nil, b.err
	}
	return d, nil
}

// graphBuilder wraps a SynthDef with sticky error handling so the
// assembly above reads as straight-line wiring.
type graphBuilder struct {
	d   *SynthDef
	err error
}

func (b *graphBuilder) param(name string, defaultValue float32, rate Rate) int {
	if b.err != nil {
		return 0
	}
	i, err := b.d.AddParam(name, defaultValue, rate)
	if err != nil {
		b.err = err
	}
	return i
}

func (b *graphBuilder) ugen(class string, rate Rate, inputs []Ref, numOutputs int, special int16) int {
	if b.err != nil {
		return 0
	}
	i, err := b.d.AddUGen(class, rate, inputs, numOutputs, special)
	if err != nil {
		b.err = err
	}
	return i
}

func (b *graphBuilder) binop(op BinOp, rate Rate, x, y Ref) Ref {
	return Input(b.ugen(ClassBinaryOp, rate, []Ref{x, y}, 1, int16(op)), 0)
}
