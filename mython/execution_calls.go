package mython

func (exec *Execution) evalArgs(args []Statement, closure Closure) ([]Value, error) {
	actual := make([]Value, 0, len(args))
	for _, arg := range args {
		v, err := exec.eval(arg, closure)
		if err != nil {
			return nil, err
		}
		actual = append(actual, v)
	}
	return actual, nil
}

// evalMethodCall dispatches a method on a class instance. A receiver that is
// not an instance, or lacks a method of matching name and arity, makes the
// whole call yield the empty handle rather than an error.
func (exec *Execution) evalMethodCall(n *MethodCallExpr, closure Closure) (Value, error) {
	obj, err := exec.eval(n.Object, closure)
	if err != nil {
		return Value{}, err
	}
	inst := obj.Instance()
	if inst == nil || !inst.Class.HasMethod(n.Method, len(n.Args)) {
		return Value{}, nil
	}
	actual, err := exec.evalArgs(n.Args, closure)
	if err != nil {
		return Value{}, err
	}
	return inst.Call(exec, n.Method, actual)
}

// evalNewInstance constructs a fresh instance and runs __init__ for its side
// effects when the class defines one with matching arity.
func (exec *Execution) evalNewInstance(n *NewInstanceExpr, closure Closure) (Value, error) {
	class := n.Class
	if class == nil {
		cv, ok := closure.Get(n.ClassName)
		if !ok {
			return Value{}, exec.newError(ErrUndefinedName, "identifier %q is undefined", n.ClassName)
		}
		if class = cv.Class(); class == nil {
			return Value{}, exec.newError(ErrTypeMismatch, "%q is not a class", n.ClassName)
		}
	}
	inst := NewInstanceOf(class)
	if class.HasMethod(initMethod, len(n.Args)) {
		actual, err := exec.evalArgs(n.Args, closure)
		if err != nil {
			return Value{}, err
		}
		if _, err := inst.Call(exec, initMethod, actual); err != nil {
			return Value{}, err
		}
	}
	return NewInstance(inst), nil
}

// Call invokes a method on the instance: a fresh closure is populated with
// the formal parameter bindings plus self, and the method body (a MethodBody
// wrapper) traps any return raised inside it.
func (i *Instance) Call(exec *Execution, name string, args []Value) (Value, error) {
	method := i.Class.GetMethod(name)
	if method == nil {
		return Value{}, exec.newError(ErrRuntime, "class %s has no method %s", i.Class.Name, name)
	}
	if len(method.FormalParams) != len(args) {
		return Value{}, exec.newError(ErrArityMismatch, "%s.%s expects %d arguments, got %d",
			i.Class.Name, name, len(method.FormalParams), len(args))
	}
	if err := exec.pushFrame(i.Class.Name+"."+name, method.Body.Pos()); err != nil {
		return Value{}, err
	}
	defer exec.popFrame()

	closure := make(Closure, len(args)+1)
	for idx, formal := range method.FormalParams {
		closure.Define(formal, args[idx])
	}
	closure.Define("self", NewInstance(i))
	v, _, err := exec.exec(method.Body, closure)
	return v, err
}
