package r5rs

import (
	"math/big"
	"strings"
)

// Value is the tagged union of every runtime value the evaluator can
// produce or consume. It is a closed set: the concrete types below are
// the only ones that implement it, and a type switch over them is the
// idiomatic way to dispatch on variant (mirroring the Interface type
// switches the teacher uses throughout message.go and object.go).
type Value interface {
	String() string
	isValue()
}

// Atom is an identifier.
type Atom struct {
	Name string
}

func (Atom) isValue() {}
func (a Atom) String() string { return a.Name }

// List is a proper, finite list of values.
type List struct {
	Items []Value
}

func (List) isValue() {}

func (l List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range l.Items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	b.WriteByte(')')
	return b.String()
}

// DottedList is an improper list whose final cdr is not itself a list.
// NewDottedList enforces the normalization invariant (a List tail
// collapses into the head); the pair primitives in primitives.go also
// build DottedList literals directly, only with a tail that is not a List.
type DottedList struct {
	Head []Value
	Tail Value
}

func (DottedList) isValue() {}

func (d DottedList) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range d.Head {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	b.WriteString(" . ")
	b.WriteString(d.Tail.String())
	b.WriteByte(')')
	return b.String()
}

// NewDottedList builds a DottedList, flattening a List tail into the head
// per the Data Model invariant: "a dotted tail that is a List is flattened
// into a List".
func NewDottedList(head []Value, tail Value) Value {
	if l, ok := tail.(List); ok {
		items := make([]Value, 0, len(head)+len(l.Items))
		items = append(items, head...)
		items = append(items, l.Items...)
		return List{Items: items}
	}
	return DottedList{Head: head, Tail: tail}
}

// Number is an arbitrary-precision signed integer.
type Number struct {
	Value *big.Int
}

func (Number) isValue() {}
func (n Number) String() string { return n.Value.String() }

// NewNumber wraps an int64 as a Number.
func NewNumber(v int64) Number {
	return Number{Value: big.NewInt(v)}
}

// String is raw text; the reader performs no escape processing beyond
// delimiting, and printing adds only the surrounding quotes.
type String struct {
	Value string
}

func (String) isValue() {}
func (s String) String() string { return "\"" + s.Value + "\"" }

// Bool is the sole falsy value other than nothing: only Bool(false) is
// false in `if`; every other value, including Bool(true), is truthy.
type Bool struct {
	Value bool
}

func (Bool) isValue() {}

func (b Bool) String() string {
	if b.Value {
		return "#t"
	}
	return "#f"
}

// TrueVal and FalseVal are the canonical Bool values, mirroring the
// teacher's vm.True/vm.False singletons (object.go) even though Go's
// value semantics mean any Bool{true} is equally valid.
var (
	TrueVal  = Bool{Value: true}
	FalseVal = Bool{Value: false}
)

// PrimitiveFunc is a pure built-in procedure: it cannot perform I/O and
// cannot fail by way of host side effects.
type PrimitiveFunc struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (PrimitiveFunc) isValue() {}
func (p PrimitiveFunc) String() string { return "#<primitive:" + p.Name + ">" }

// IOFunc is a built-in procedure with the authority to perform I/O.
type IOFunc struct {
	Name string
	Fn   func(interp *Interp, args []Value) (Value, error)
}

func (IOFunc) isValue() {}
func (f IOFunc) String() string { return "#<primitive:" + f.Name + ">" }

// Func is a user-defined procedure: a closure over the environment in
// which it was created.
type Func struct {
	Params     []string
	Varargs    string
	HasVarargs bool
	Body       []Value
	Closure    *Env
}

func (Func) isValue() {}

func (f Func) String() string {
	var b strings.Builder
	b.WriteString("(lambda (")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	if f.HasVarargs {
		if len(f.Params) > 0 {
			b.WriteString(" . ")
		}
		b.WriteString(f.Varargs)
	}
	b.WriteString(") ...)")
	return b.String()
}

// PortDirection distinguishes input from output file ports.
type PortDirection int

const (
	PortInput PortDirection = iota
	PortOutput
)

// Port is an opaque reference to an open OS file stream. Printing it
// always yields the literal "<IO port>" regardless of direction or
// open/closed state.
type Port struct {
	handle *portHandle
}

func (Port) isValue() {}
func (Port) String() string { return "<IO port>" }

// IsTruthy implements the falsity rule from §4.3: only Bool(false) is
// false; every other value, including the empty list, is truthy.
func IsTruthy(v Value) bool {
	b, ok := v.(Bool)
	return !ok || b.Value
}

// Equal is the isValue-aware structural comparison used internally (the
// `eqv?`/`eq?` primitives delegate to it; see primitives.go for the
// cross-type coercion that `equal?` layers on top).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Atom:
		bv, ok := b.(Atom)
		return ok && av.Name == bv.Name
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value.Cmp(bv.Value) == 0
	case String:
		bv, ok := b.(String)
		return ok && av.Value == bv.Value
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value
	case List:
		bv, ok := b.(List)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case DottedList:
		bv, ok := b.(DottedList)
		if !ok || len(av.Head) != len(bv.Head) {
			return false
		}
		for i := range av.Head {
			if !Equal(av.Head[i], bv.Head[i]) {
				return false
			}
		}
		return Equal(av.Tail, bv.Tail)
	case Port:
		bv, ok := b.(Port)
		return ok && av.handle == bv.handle
	default:
		// PrimitiveFunc, IOFunc, Func: identity is not structural here;
		// two distinct closures are never eqv?.
		return false
	}
}
