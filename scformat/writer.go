// Package scformat serializes synthdef documents into the binary file
// format the audio engine loads (big-endian throughout, ".scsyndef"
// files). Encoding drives a single field walk twice, once through a
// byte counter and once through the writer, and refuses to emit
// anything if the two disagree.
package scformat

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// StringTooLongError is returned when a name does not fit the 1-byte
// length prefix of the wire format.
type StringTooLongError struct {
	Str string
}

func (e *StringTooLongError) Error() string {
	return fmt.Sprintf("string of %d bytes does not fit a 1-byte length prefix: %.32q...", len(e.Str), e.Str)
}

// SizeMismatchError is returned when the precomputed encoded size and
// the number of bytes actually written diverge. It means the counter
// and the writer walks disagree, which is a bug, and no output is
// produced.
type SizeMismatchError struct {
	Expected, Actual int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("encoded size mismatch: computed %d bytes but wrote %d", e.Expected, e.Actual)
}

// sink receives the serialized fields of a synthdef file. Both the
// counter and the writer implement it, so the size computation and the
// byte emission can never come from divergent walks.
type sink interface {
	int8(v int8)
	int16(v int16)
	int32(v int32)
	float32(v float32)
	pstring(s string) error
}

type counter struct {
	n int
}

func (c *counter) int8(int8)       { c.n++ }
func (c *counter) int16(int16)     { c.n += 2 }
func (c *counter) int32(int32)     { c.n += 4 }
func (c *counter) float32(float32) { c.n += 4 }

func (c *counter) pstring(s string) error {
	if len(s) > 255 {
		return &StringTooLongError{Str: s}
	}
	c.n += 1 + len(s)
	return nil
}

type writer struct {
	buf bytes.Buffer
}

func (w *writer) int8(v int8) {
	w.buf.WriteByte(byte(v))
}

func (w *writer) int16(v int16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	w.buf.Write(b[:])
}

func (w *writer) int32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf.Write(b[:])
}

func (w *writer) float32(v float32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(v))
	w.buf.Write(b[:])
}

func (w *writer) pstring(s string) error {
	if len(s) > 255 {
		return &StringTooLongError{Str: s}
	}
	w.buf.WriteByte(byte(len(s)))
	w.buf.WriteString(s)
	return nil
}
