package mython

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	// KindAbsent is the empty handle: the result of statements that produce
	// no value. It prints as None but is distinct from the None object.
	KindAbsent ValueKind = iota
	KindNone
	KindBool
	KindNumber
	KindString
	KindClass
	KindInstance
)

// Value is the uniform runtime handle for every Mython value. The zero Value
// is the empty (absent) handle.
type Value struct {
	kind ValueKind
	data any
}
