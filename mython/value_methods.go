package mython

import (
	"fmt"
	"io"
	"strconv"
)

func (k ValueKind) String() string {
	switch k {
	case KindAbsent:
		return "nothing"
	case KindNone:
		return "None"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindClass:
		return "class"
	case KindInstance:
		return "class instance"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders the value for hosts (error messages, REPL panes). Unlike
// Print it never dispatches __str__, so it cannot run user code.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent, KindNone:
		return "None"
	case KindBool:
		if v.Bool() {
			return "True"
		}
		return "False"
	case KindNumber:
		return strconv.FormatInt(v.Number(), 10)
	case KindString:
		return v.Str()
	case KindClass:
		return "Class " + v.Class().Name
	case KindInstance:
		return fmt.Sprintf("<%s object at %p>", v.Instance().Class.Name, v.Instance())
	default:
		return v.kind.String()
	}
}

// Truthy reports the value's truthiness: the empty handle and None are falsy,
// booleans are themselves, numbers are truthy when non-zero, strings when
// non-empty. Classes and instances are never used in conditions by
// well-formed programs and count as falsy here.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.Bool()
	case KindNumber:
		return v.Number() != 0
	case KindString:
		return v.Str() != ""
	default:
		return false
	}
}

// Print writes the value's printed form to w. Instances with a zero-argument
// __str__ print its result; other instances print an address-like identifier.
func (v Value) Print(w io.Writer, exec *Execution) error {
	switch v.kind {
	case KindAbsent, KindNone:
		_, err := io.WriteString(w, "None")
		return err
	case KindBool:
		s := "False"
		if v.Bool() {
			s = "True"
		}
		_, err := io.WriteString(w, s)
		return err
	case KindNumber:
		_, err := io.WriteString(w, strconv.FormatInt(v.Number(), 10))
		return err
	case KindString:
		_, err := io.WriteString(w, v.Str())
		return err
	case KindClass:
		_, err := io.WriteString(w, "Class "+v.Class().Name)
		return err
	case KindInstance:
		inst := v.Instance()
		if inst.Class.HasMethod(strMethod, 0) {
			res, err := inst.Call(exec, strMethod, nil)
			if err != nil {
				return err
			}
			return res.Print(w, exec)
		}
		_, err := fmt.Fprintf(w, "<%s object at %p>", inst.Class.Name, inst)
		return err
	default:
		_, err := io.WriteString(w, "None")
		return err
	}
}

// Equal applies Mython's equality cascade: two empty handles are equal,
// same-kind booleans, numbers and strings compare by value, and an instance
// on the left dispatches __eq__. Everything else is a type mismatch.
func Equal(lhs, rhs Value, exec *Execution) (bool, error) {
	if lhs.IsAbsent() && rhs.IsAbsent() {
		return true, nil
	}
	if lhs.kind == rhs.kind {
		switch lhs.kind {
		case KindBool:
			return lhs.Bool() == rhs.Bool(), nil
		case KindNumber:
			return lhs.Number() == rhs.Number(), nil
		case KindString:
			return lhs.Str() == rhs.Str(), nil
		}
	}
	if inst := lhs.Instance(); inst != nil && inst.Class.HasMethod(eqMethod, 1) {
		res, err := inst.Call(exec, eqMethod, []Value{rhs})
		if err != nil {
			return false, err
		}
		if res.Kind() != KindBool {
			return false, exec.newError(ErrTypeMismatch, "%s must return a bool, got %s", eqMethod, res.Kind())
		}
		return res.Bool(), nil
	}
	return false, exec.newError(ErrTypeMismatch, "cannot compare %s and %s for equality", lhs.Kind(), rhs.Kind())
}

// Less applies the ordering cascade: same-kind booleans, numbers and strings
// use the natural <, an instance on the left dispatches __lt__.
func Less(lhs, rhs Value, exec *Execution) (bool, error) {
	if lhs.kind == rhs.kind {
		switch lhs.kind {
		case KindBool:
			return !lhs.Bool() && rhs.Bool(), nil
		case KindNumber:
			return lhs.Number() < rhs.Number(), nil
		case KindString:
			return lhs.Str() < rhs.Str(), nil
		}
	}
	if inst := lhs.Instance(); inst != nil && inst.Class.HasMethod(ltMethod, 1) {
		res, err := inst.Call(exec, ltMethod, []Value{rhs})
		if err != nil {
			return false, err
		}
		if res.Kind() != KindBool {
			return false, exec.newError(ErrTypeMismatch, "%s must return a bool, got %s", ltMethod, res.Kind())
		}
		return res.Bool(), nil
	}
	return false, exec.newError(ErrTypeMismatch, "cannot compare %s and %s for ordering", lhs.Kind(), rhs.Kind())
}

func NotEqual(lhs, rhs Value, exec *Execution) (bool, error) {
	eq, err := Equal(lhs, rhs, exec)
	return !eq, err
}

// Greater is composed from Less and Equal, so instance comparisons may
// dispatch both special methods for a single operator.
func Greater(lhs, rhs Value, exec *Execution) (bool, error) {
	less, err := Less(lhs, rhs, exec)
	if err != nil || less {
		return false, err
	}
	eq, err := Equal(lhs, rhs, exec)
	return !less && !eq, err
}

func LessOrEqual(lhs, rhs Value, exec *Execution) (bool, error) {
	less, err := Less(lhs, rhs, exec)
	if err != nil || less {
		return less, err
	}
	return Equal(lhs, rhs, exec)
}

func GreaterOrEqual(lhs, rhs Value, exec *Execution) (bool, error) {
	less, err := Less(lhs, rhs, exec)
	return !less, err
}
