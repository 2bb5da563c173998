package scformat

import (
	orafm "github.com/kylecombs/ORA-FM-sub001"
)

const (
	magic   = "SCgf"
	version = 2
)

// Extension is the conventional file name suffix for encoded synthdef
// files.
const Extension = ".scsyndef"

// Encode serializes one or more synthdefs into a single engine-loadable
// file. The exact byte length is computed before a single byte is
// written; if the written length ever differs from it, Encode fails
// with SizeMismatchError and produces no output. Never weaken this
// check: a silently truncated or padded file crashes the engine at
// load time with no useful diagnostics.
func Encode(defs ...*orafm.SynthDef) ([]byte, error) {
	var c counter
	if err := encodeTo(&c, defs); err != nil {
		return nil, err
	}
	var w writer
	w.buf.Grow(c.n)
	if err := encodeTo(&w, defs); err != nil {
		return nil, err
	}
	if w.buf.Len() != c.n {
		return nil, &SizeMismatchError{Expected: c.n, Actual: w.buf.Len()}
	}
	return w.buf.Bytes(), nil
}

// EncodedSize returns the byte length Encode would produce.
func EncodedSize(defs ...*orafm.SynthDef) (int, error) {
	var c counter
	if err := encodeTo(&c, defs); err != nil {
		return 0, err
	}
	return c.n, nil
}

func encodeTo(s sink, defs []*orafm.SynthDef) error {
	for i := 0; i < len(magic); i++ {
		s.int8(int8(magic[i]))
	}
	s.int32(version)
	s.int16(int16(len(defs)))
	for _, d := range defs {
		if err := encodeDef(s, d); err != nil {
			return err
		}
	}
	return nil
}

func encodeDef(s sink, d *orafm.SynthDef) error {
	if err := s.pstring(d.Name()); err != nil {
		return err
	}
	consts := d.Constants()
	s.int32(int32(len(consts)))
	for _, c := range consts {
		s.float32(c)
	}
	params := d.Params()
	s.int32(int32(len(params)))
	for _, p := range params {
		s.float32(p.Default)
	}
	s.int32(int32(len(params)))
	for i, p := range params {
		if err := s.pstring(p.Name); err != nil {
			return err
		}
		s.int32(int32(i))
	}
	ugens := d.UGens()
	s.int32(int32(len(ugens)))
	for _, u := range ugens {
		if err := s.pstring(u.Class); err != nil {
			return err
		}
		s.int8(int8(u.Rate))
		s.int32(int32(len(u.Inputs)))
		s.int32(int32(len(u.Outputs)))
		s.int16(u.Special)
		for _, in := range u.Inputs {
			s.int32(in.UGen)
			s.int32(in.Output)
		}
		for _, r := range u.Outputs {
			s.int8(int8(r))
		}
	}
	s.int16(0) // variant table, always empty
	return nil
}
