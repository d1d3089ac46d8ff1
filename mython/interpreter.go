package mython

import "errors"

// Config controls interpreter execution bounds.
type Config struct {
	// RecursionLimit caps the method call depth. Zero means the default.
	RecursionLimit int
}

const defaultRecursionLimit = 256

// Engine compiles Mython source into runnable scripts.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine, filling in defaults for zero config fields.
func NewEngine(cfg Config) *Engine {
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	return &Engine{config: cfg}
}

// Script is a compiled program bound to the engine that produced it.
type Script struct {
	engine  *Engine
	program []Statement
	source  string
}

// Compile lexes and parses source. Lexer and parser failures come back as a
// *CompileError carrying a caret frame pointing into the source.
func (e *Engine) Compile(source string) (*Script, error) {
	lx, err := NewLexer(source)
	if err != nil {
		return nil, decorateCompileError(source, err)
	}
	program, err := newParser(lx).parseProgram()
	if err != nil {
		return nil, decorateCompileError(source, err)
	}
	return &Script{engine: e, program: program, source: source}, nil
}

func decorateCompileError(source string, err error) error {
	var pos Position
	var lexErr *LexerError
	var parseErr *parseError
	switch {
	case errors.As(err, &lexErr):
		pos = lexErr.Pos
	case errors.As(err, &parseErr):
		pos = parseErr.pos
	default:
		return err
	}
	return &CompileError{Err: err, CodeFrame: formatCodeFrame(source, pos)}
}

// Run executes the program against a fresh global closure, writing print
// output to the context's stream. The closure is returned so hosts can
// inspect the program's top-level bindings.
func (s *Script) Run(ctx Context) (Closure, error) {
	globals := make(Closure)
	if err := s.RunInto(ctx, globals); err != nil {
		return nil, err
	}
	return globals, nil
}

// RunInto executes the program against a caller-supplied global closure,
// letting hosts accumulate bindings across runs.
func (s *Script) RunInto(ctx Context, globals Closure) error {
	exec := newExecution(ctx, s.engine.config.RecursionLimit)
	for _, st := range s.program {
		_, returned, err := exec.exec(st, globals)
		if err != nil {
			return err
		}
		if returned {
			return exec.newError(ErrRuntime, "return outside of a method")
		}
	}
	return nil
}
