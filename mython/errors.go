package mython

import (
	"fmt"
	"strconv"
	"strings"
)

// LexerError reports a scan failure: an unterminated string, a disallowed
// escape, a stray newline inside a literal, or an odd indentation count.
type LexerError struct {
	Msg string
	Pos Position
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("lexer error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

type parseError struct {
	pos Position
	msg string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.pos.Line, e.pos.Column, e.msg)
}

// CompileError wraps a lexer or parser error together with a caret code frame
// pointing at the offending source location.
type CompileError struct {
	Err       error
	CodeFrame string
}

func (e *CompileError) Error() string {
	if e.CodeFrame == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n" + e.CodeFrame
}

func (e *CompileError) Unwrap() error { return e.Err }

// RuntimeErrorKind classifies evaluation failures.
type RuntimeErrorKind string

const (
	ErrRuntime        RuntimeErrorKind = "RuntimeError"
	ErrUndefinedName  RuntimeErrorKind = "UndefinedName"
	ErrTypeMismatch   RuntimeErrorKind = "TypeMismatch"
	ErrArityMismatch  RuntimeErrorKind = "ArityMismatch"
	ErrDivisionByZero RuntimeErrorKind = "DivisionByZero"
)

// StackFrame records one active method call at the moment an error occurred.
type StackFrame struct {
	Function string
	Pos      Position
}

const (
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

// RuntimeError is any evaluation failure, carrying the call frames that were
// active when it was raised.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	Frames  []StackFrame
}

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(string(re.Kind))
	b.WriteString(": ")
	b.WriteString(re.Message)
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := lines[pos.Line-1]

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineText)+1 {
		column = len(lineText) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
