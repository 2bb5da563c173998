package orafm

// Class names of the ugens the pattern builder emits. The engine
// resolves classes by name against its plugin library, so these must
// match it verbatim.
const (
	// ClassControl exposes a contiguous run of block-rate parameters as
	// one output per parameter; its special index is the absolute index
	// of the first exposed parameter.
	ClassControl = "Control"
	// ClassAudioControl is the audio-rate analogue of ClassControl,
	// used for the modulation parameters.
	ClassAudioControl = "AudioControl"
	// ClassTrigControl exposes one-shot trigger parameters; the engine
	// resets each output to zero after one control block.
	ClassTrigControl = "TrigControl"
	ClassBinaryOp    = "BinaryOpUGen"
	ClassClip        = "Clip"
	ClassPan2        = "Pan2"
	ClassSelect      = "Select"
	ClassOut         = "Out"
)

// BinOp is a BinaryOpUGen operator selector, carried in the ugen's
// special index. The integer values are fixed by the engine's operator
// table and must never be renumbered.
type BinOp int16

const (
	OpAdd BinOp = 0
	OpSub BinOp = 1
	OpMul BinOp = 2
	OpLe  BinOp = 10
	OpMin BinOp = 12
	OpMax BinOp = 13
)

func (o BinOp) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpLe:
		return "le"
	case OpMin:
		return "min"
	case OpMax:
		return "max"
	}
	return "??"
}
