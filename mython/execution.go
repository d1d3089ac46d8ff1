package mython

import (
	"fmt"
	"io"
	"strings"
)

// Context is the per-execution object supplied by the host. It exposes the
// sink that print statements write to, and nothing else.
type Context interface {
	Output() io.Writer
}

type writerContext struct {
	w io.Writer
}

func (c *writerContext) Output() io.Writer { return c.w }

// NewContext wraps an io.Writer as an execution context.
func NewContext(w io.Writer) Context {
	return &writerContext{w: w}
}

// Execution walks the AST against closures and a context. Statement
// evaluation returns a (value, returned, error) triple: the returned flag is
// the non-local transfer raised by a return statement, threaded up through
// every nested statement until a MethodBody converts it back into a plain
// value.
type Execution struct {
	context      Context
	recursionCap int
	callStack    []StackFrame
}

func newExecution(ctx Context, recursionCap int) *Execution {
	return &Execution{context: ctx, recursionCap: recursionCap}
}

func (exec *Execution) output() io.Writer {
	return exec.context.Output()
}

func (exec *Execution) newError(kind RuntimeErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Frames:  append([]StackFrame(nil), exec.callStack...),
	}
}

func (exec *Execution) pushFrame(function string, pos Position) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.newError(ErrRuntime, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, StackFrame{Function: function, Pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

func (exec *Execution) exec(st Statement, closure Closure) (Value, bool, error) {
	switch n := st.(type) {
	case *NumberLit:
		return NewNumber(n.Value), false, nil
	case *StringLit:
		return NewString(n.Value), false, nil
	case *BoolLit:
		return NewBool(n.Value), false, nil
	case *NoneLit:
		return NewNone(), false, nil
	case *VarRef:
		v, err := exec.evalVarRef(n, closure)
		return v, false, err
	case *AssignStmt:
		return exec.execAssign(n, closure)
	case *FieldAssignStmt:
		return exec.execFieldAssign(n, closure)
	case *PrintStmt:
		return exec.execPrint(n, closure)
	case *MethodCallExpr:
		v, err := exec.evalMethodCall(n, closure)
		return v, false, err
	case *NewInstanceExpr:
		v, err := exec.evalNewInstance(n, closure)
		return v, false, err
	case *StringifyExpr:
		v, err := exec.evalStringify(n, closure)
		return v, false, err
	case *BinaryExpr:
		v, err := exec.evalBinary(n, closure)
		return v, false, err
	case *LogicalExpr:
		v, err := exec.evalLogical(n, closure)
		return v, false, err
	case *NotExpr:
		v, err := exec.evalNot(n, closure)
		return v, false, err
	case *ComparisonExpr:
		v, err := exec.evalComparison(n, closure)
		return v, false, err
	case *IfStmt:
		return exec.execIf(n, closure)
	case *BlockStmt:
		return exec.execBlock(n, closure)
	case *ReturnStmt:
		return exec.execReturn(n, closure)
	case *ClassDefStmt:
		return exec.execClassDef(n, closure)
	case *MethodBody:
		return exec.execMethodBody(n, closure)
	default:
		return Value{}, false, exec.newError(ErrRuntime, "cannot execute %T node", st)
	}
}

// eval evaluates a node in expression position. The grammar keeps return
// statements out of expressions, so the returned flag is never set here.
func (exec *Execution) eval(st Statement, closure Closure) (Value, error) {
	v, _, err := exec.exec(st, closure)
	return v, err
}

func (exec *Execution) evalVarRef(n *VarRef, closure Closure) (Value, error) {
	scope := closure
	for i := 0; i+1 < len(n.Ids); i++ {
		v, ok := scope.Get(n.Ids[i])
		if !ok {
			return Value{}, exec.newError(ErrUndefinedName, "identifier %q is undefined", n.Ids[i])
		}
		inst := v.Instance()
		if inst == nil {
			return Value{}, exec.newError(ErrTypeMismatch, "%q is not a class instance", n.Ids[i])
		}
		scope = inst.Fields
	}
	last := n.Ids[len(n.Ids)-1]
	v, ok := scope.Get(last)
	if !ok {
		return Value{}, exec.newError(ErrUndefinedName, "identifier %q is undefined", last)
	}
	return v, nil
}

func (exec *Execution) execAssign(n *AssignStmt, closure Closure) (Value, bool, error) {
	v, err := exec.eval(n.Value, closure)
	if err != nil {
		return Value{}, false, err
	}
	closure.Define(n.Name, v)
	return v, false, nil
}

func (exec *Execution) execFieldAssign(n *FieldAssignStmt, closure Closure) (Value, bool, error) {
	obj, err := exec.eval(n.Object, closure)
	if err != nil {
		return Value{}, false, err
	}
	inst := obj.Instance()
	if inst == nil {
		return Value{}, false, exec.newError(ErrTypeMismatch, "cannot assign field %q on %s", n.Field, obj.Kind())
	}
	v, err := exec.eval(n.Value, closure)
	if err != nil {
		return Value{}, false, err
	}
	inst.Fields.Define(n.Field, v)
	return v, false, nil
}

func (exec *Execution) execPrint(n *PrintStmt, closure Closure) (Value, bool, error) {
	var b strings.Builder
	for i, arg := range n.Args {
		v, err := exec.eval(arg, closure)
		if err != nil {
			return Value{}, false, err
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		if err := v.Print(&b, exec); err != nil {
			return Value{}, false, err
		}
	}
	b.WriteByte('\n')
	line := b.String()
	if _, err := io.WriteString(exec.output(), line); err != nil {
		return Value{}, false, exec.newError(ErrRuntime, "write output: %v", err)
	}
	return NewString(line), false, nil
}

func (exec *Execution) execIf(n *IfStmt, closure Closure) (Value, bool, error) {
	cond, err := exec.eval(n.Cond, closure)
	if err != nil {
		return Value{}, false, err
	}
	if cond.Kind() != KindBool {
		return Value{}, false, exec.newError(ErrTypeMismatch, "if condition must be a bool, got %s", cond.Kind())
	}
	if cond.Bool() {
		return exec.exec(n.Then, closure)
	}
	if n.Else != nil {
		return exec.exec(n.Else, closure)
	}
	return Value{}, false, nil
}

func (exec *Execution) execBlock(n *BlockStmt, closure Closure) (Value, bool, error) {
	for _, st := range n.Stmts {
		v, returned, err := exec.exec(st, closure)
		if err != nil {
			return Value{}, false, err
		}
		if returned {
			return v, true, nil
		}
	}
	return Value{}, false, nil
}

func (exec *Execution) execReturn(n *ReturnStmt, closure Closure) (Value, bool, error) {
	if n.Value == nil {
		return Value{}, true, nil
	}
	v, err := exec.eval(n.Value, closure)
	if err != nil {
		return Value{}, false, err
	}
	return v, true, nil
}

func (exec *Execution) execClassDef(n *ClassDefStmt, closure Closure) (Value, bool, error) {
	if n.Class.Parent == nil && n.ParentName != "" {
		pv, ok := closure.Get(n.ParentName)
		if !ok {
			return Value{}, false, exec.newError(ErrUndefinedName, "identifier %q is undefined", n.ParentName)
		}
		parent := pv.Class()
		if parent == nil {
			return Value{}, false, exec.newError(ErrTypeMismatch, "%q is not a class", n.ParentName)
		}
		n.Class.Parent = parent
	}
	cv := NewClass(n.Class)
	closure.Define(n.Class.Name, cv)
	return cv, false, nil
}

func (exec *Execution) execMethodBody(n *MethodBody, closure Closure) (Value, bool, error) {
	v, returned, err := exec.exec(n.Body, closure)
	if err != nil {
		return Value{}, false, err
	}
	if returned {
		return v, false, nil
	}
	return Value{}, false, nil
}
