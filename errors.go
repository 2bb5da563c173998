package orafm

import "fmt"

// DuplicateParameterError is returned when a parameter name is declared
// twice within one synthdef.
type DuplicateParameterError struct {
	Name string
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("parameter %q is already declared", e.Name)
}

// DanglingReferenceError is returned when a ugen input references a
// constant or ugen output that does not exist, or a ugen at or past the
// referencing ugen's own position. Forward references are rejected so
// the graph stays evaluatable front to back.
type DanglingReferenceError struct {
	UGen  int    // index the referencing ugen would have received
	Input int    // position of the offending input
	Ref   Ref    // the reference that failed to resolve
	Class string // class of the referencing ugen
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("input %d of %s (ugen %d) references %v, which does not resolve to an earlier ugen output or constant",
		e.Input, e.Class, e.UGen, e.Ref)
}
