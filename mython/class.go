package mython

// Special method names the runtime dispatches on.
const (
	initMethod = "__init__"
	strMethod  = "__str__"
	addMethod  = "__add__"
	eqMethod   = "__eq__"
	ltMethod   = "__lt__"
)

// Method is a named method body with its formal parameter list.
type Method struct {
	Name         string
	FormalParams []string
	Body         Statement
}

// ClassDef describes a class: its name, methods, and optional parent. The
// parent pointer is non-owning; the parent class is kept alive by the
// closure that defined it.
type ClassDef struct {
	Name    string
	Methods []Method
	Parent  *ClassDef
}

// GetMethod returns the first method with a matching name, walking the class
// itself and then the parent chain. Arity is not part of lookup.
func (c *ClassDef) GetMethod(name string) *Method {
	for cur := c; cur != nil; cur = cur.Parent {
		for i := range cur.Methods {
			if cur.Methods[i].Name == name {
				return &cur.Methods[i]
			}
		}
	}
	return nil
}

// HasMethod reports whether lookup yields a method whose formal parameter
// count equals argc.
func (c *ClassDef) HasMethod(name string, argc int) bool {
	if m := c.GetMethod(name); m != nil {
		return len(m.FormalParams) == argc
	}
	return false
}

// Instance is a live object: a reference to its class plus a field map.
// Fields spring into existence on first assignment.
type Instance struct {
	Class  *ClassDef
	Fields Closure
}

func NewInstanceOf(c *ClassDef) *Instance {
	return &Instance{Class: c, Fields: make(Closure)}
}
