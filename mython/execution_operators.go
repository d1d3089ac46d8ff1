package mython

import "strings"

func (exec *Execution) evalBinary(n *BinaryExpr, closure Closure) (Value, error) {
	lhs, err := exec.eval(n.Lhs, closure)
	if err != nil {
		return Value{}, err
	}
	rhs, err := exec.eval(n.Rhs, closure)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case '+':
		return exec.addValues(lhs, rhs)
	case '-':
		return exec.numericOp(lhs, rhs, "subtract", func(a, b int64) int64 { return a - b })
	case '*':
		return exec.numericOp(lhs, rhs, "multiply", func(a, b int64) int64 { return a * b })
	case '/':
		if lhs.Kind() == KindNumber && rhs.Kind() == KindNumber && rhs.Number() == 0 {
			return Value{}, exec.newError(ErrDivisionByZero, "division by zero")
		}
		return exec.numericOp(lhs, rhs, "divide", func(a, b int64) int64 { return a / b })
	default:
		return Value{}, exec.newError(ErrRuntime, "unsupported operator %q", string(n.Op))
	}
}

// addValues handles the three add forms: integer addition, string
// concatenation, and __add__ dispatch on a left-hand instance.
func (exec *Execution) addValues(lhs, rhs Value) (Value, error) {
	if lhs.Kind() == KindNumber && rhs.Kind() == KindNumber {
		return NewNumber(lhs.Number() + rhs.Number()), nil
	}
	if lhs.Kind() == KindString && rhs.Kind() == KindString {
		return NewString(lhs.Str() + rhs.Str()), nil
	}
	if inst := lhs.Instance(); inst != nil && inst.Class.HasMethod(addMethod, 1) {
		return inst.Call(exec, addMethod, []Value{rhs})
	}
	return Value{}, exec.newError(ErrTypeMismatch, "cannot add %s and %s", lhs.Kind(), rhs.Kind())
}

func (exec *Execution) numericOp(lhs, rhs Value, verb string, op func(a, b int64) int64) (Value, error) {
	if lhs.Kind() != KindNumber || rhs.Kind() != KindNumber {
		return Value{}, exec.newError(ErrTypeMismatch, "cannot %s %s and %s", verb, lhs.Kind(), rhs.Kind())
	}
	return NewNumber(op(lhs.Number(), rhs.Number())), nil
}

// evalLogical evaluates BOTH operands before combining them; and/or do not
// short-circuit, which is observable when operands have side effects.
func (exec *Execution) evalLogical(n *LogicalExpr, closure Closure) (Value, error) {
	lhs, err := exec.eval(n.Lhs, closure)
	if err != nil {
		return Value{}, err
	}
	rhs, err := exec.eval(n.Rhs, closure)
	if err != nil {
		return Value{}, err
	}
	lb, err := exec.equalsTrue(lhs)
	if err != nil {
		return Value{}, err
	}
	rb, err := exec.equalsTrue(rhs)
	if err != nil {
		return Value{}, err
	}
	if n.Op == tokenOr {
		return NewBool(lb || rb), nil
	}
	return NewBool(lb && rb), nil
}

// equalsTrue tests an operand the way the comparison cascade would against
// True, so non-bool operands raise a type mismatch instead of being coerced.
func (exec *Execution) equalsTrue(v Value) (bool, error) {
	return Equal(v, NewBool(true), exec)
}

func (exec *Execution) evalNot(n *NotExpr, closure Closure) (Value, error) {
	v, err := exec.eval(n.Arg, closure)
	if err != nil {
		return Value{}, err
	}
	if v.Kind() != KindBool {
		return Value{}, exec.newError(ErrTypeMismatch, "not requires a bool operand, got %s", v.Kind())
	}
	return NewBool(!v.Bool()), nil
}

func (exec *Execution) evalComparison(n *ComparisonExpr, closure Closure) (Value, error) {
	lhs, err := exec.eval(n.Lhs, closure)
	if err != nil {
		return Value{}, err
	}
	rhs, err := exec.eval(n.Rhs, closure)
	if err != nil {
		return Value{}, err
	}
	var result bool
	switch n.Op {
	case "==":
		result, err = Equal(lhs, rhs, exec)
	case "!=":
		result, err = NotEqual(lhs, rhs, exec)
	case "<":
		result, err = Less(lhs, rhs, exec)
	case ">":
		result, err = Greater(lhs, rhs, exec)
	case "<=":
		result, err = LessOrEqual(lhs, rhs, exec)
	case ">=":
		result, err = GreaterOrEqual(lhs, rhs, exec)
	default:
		return Value{}, exec.newError(ErrRuntime, "unsupported comparison %q", n.Op)
	}
	if err != nil {
		return Value{}, err
	}
	return NewBool(result), nil
}

func (exec *Execution) evalStringify(n *StringifyExpr, closure Closure) (Value, error) {
	v, err := exec.eval(n.Arg, closure)
	if err != nil {
		return Value{}, err
	}
	var b strings.Builder
	if err := v.Print(&b, exec); err != nil {
		return Value{}, err
	}
	return NewString(b.String()), nil
}
