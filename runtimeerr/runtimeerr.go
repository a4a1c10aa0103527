// Package runtimeerr defines the stable runtime error taxonomy raised by the
// virtual machine and the builtin registry, along with the external
// single-line and stack-trace rendering used by the CLI.
//
// Every error carries a stable uppercase Code, the source Position of the
// instruction that raised it, and (for errors that escape a call) a Frames
// list describing the call stack, innermost first.
package runtimeerr

import (
	"fmt"
	"strings"

	"github.com/dr8co/monkeyvm/position"
)

// Code is a stable, public identifier for a runtime error kind.
type Code string

//nolint:revive
const (
	TypeMismatch         Code = "TYPE_MISMATCH"
	UnknownIdentifier    Code = "UNKNOWN_IDENTIFIER"
	NotCallable          Code = "NOT_CALLABLE"
	WrongArgumentCount   Code = "WRONG_ARGUMENT_COUNT"
	InvalidArgumentType  Code = "INVALID_ARGUMENT_TYPE"
	InvalidControlFlow   Code = "INVALID_CONTROL_FLOW"
	InvalidIndex         Code = "INVALID_INDEX"
	Unhashable           Code = "UNHASHABLE"
	DivisionByZero       Code = "DIVISION_BY_ZERO"
	UnsupportedOperation Code = "UNSUPPORTED_OPERATION"
)

// Frame describes one call-stack entry attached to an Error, innermost first.
type Frame struct {
	// Name is the function's inferred name, or "" for an anonymous closure.
	Name string

	// Pos is the faulting ip's position for the innermost frame, or the
	// call-site position for every outer frame.
	Pos position.Position

	// ArgCount is the number of arguments the frame's call was made with.
	ArgCount int
}

// Error is a runtime error raised by the VM or a builtin. It implements the
// standard error interface via Error().
type Error struct {
	Code    Code
	Message string
	Pos     position.Position

	// Frames is the call stack at the point the error escaped, innermost
	// first. Builtins leave this nil; the VM fills it in as the error
	// unwinds through Call/Return.
	Frames []Frame
}

// New constructs an Error with the given code, position, and formatted message.
func New(code Code, pos position.Position, format string, a ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, a...), Pos: pos}
}

// WithFrames returns a copy of e with its Frames set, used by the VM to
// attach the call stack as a builtin or opcode error propagates outward.
func (e *Error) WithFrames(frames []Frame) *Error {
	cp := *e
	cp.Frames = frames
	return &cp
}

// WithPos returns a copy of e with its Pos set, used by the VM to stamp a
// builtin's zero-value Position with the call site's actual position.
func (e *Error) WithPos(pos position.Position) *Error {
	cp := *e
	cp.Pos = pos
	return &cp
}

// Error implements the error interface, returning the single-line rendering.
func (e *Error) Error() string {
	return fmt.Sprintf("Error[%s] at %s: %s", e.Code, e.Pos, e.Message)
}

// Verbose renders the single-line form followed by a "Stack trace:" section,
// one line per frame, innermost first.
func (e *Error) Verbose() string {
	if len(e.Frames) == 0 {
		return e.Error()
	}

	var out strings.Builder
	out.WriteString(e.Error())
	out.WriteString("\nStack trace:")
	for _, f := range e.Frames {
		name := f.Name
		if name == "" {
			name = "<anonymous>"
		}
		_, _ = fmt.Fprintf(&out, "\n  at %s(%d args) @ %s", name, f.ArgCount, f.Pos)
	}
	return out.String()
}
