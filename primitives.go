package r5rs

import (
	"math/big"
	"strings"
)

// RegisterPrimitives binds every pure built-in procedure from §4.4 into
// env, the way the teacher's initNumber/initObject (number.go, object.go)
// populate a Slots map, generalized here to a flat Define over the
// spec's single global environment instead of per-type proto slots.
func RegisterPrimitives(env *Env) {
	for name, fn := range arithmeticPrimitives() {
		Define(env, name, PrimitiveFunc{Name: name, Fn: fn})
	}
	for name, fn := range comparisonPrimitives() {
		Define(env, name, PrimitiveFunc{Name: name, Fn: fn})
	}
	for name, fn := range pairPrimitives() {
		Define(env, name, PrimitiveFunc{Name: name, Fn: fn})
	}
	for name, fn := range equalityPrimitives() {
		Define(env, name, PrimitiveFunc{Name: name, Fn: fn})
	}
	Define(env, "number->string", PrimitiveFunc{Name: "number->string", Fn: primNumberToString})
}

// --- numeric coercion helpers (§4.3 "Numeric tie-breaks and coercion") ---

// unpackNum accepts a Number directly, a String that fully parses as an
// integer (an optional leading sign per the host integer reader), or a
// single-element List wrapping either of those.
func unpackNum(v Value) (*big.Int, error) {
	switch t := v.(type) {
	case Number:
		return t.Value, nil
	case String:
		n, ok := new(big.Int).SetString(strings.TrimSpace(t.Value), 10)
		if !ok {
			return nil, NewTypeMismatchError("number", v)
		}
		return n, nil
	case List:
		if len(t.Items) == 1 {
			return unpackNum(t.Items[0])
		}
		return nil, NewTypeMismatchError("number", v)
	default:
		return nil, NewTypeMismatchError("number", v)
	}
}

// unpackStr stringifies Number and Bool via their display forms, and
// returns a String's value unchanged.
func unpackStr(v Value) (string, error) {
	switch t := v.(type) {
	case String:
		return t.Value, nil
	case Number:
		return t.Value.String(), nil
	case Bool:
		return t.String(), nil
	default:
		return "", NewTypeMismatchError("string", v)
	}
}

// unpackBool accepts only Bool.
func unpackBool(v Value) (bool, error) {
	if b, ok := v.(Bool); ok {
		return b.Value, nil
	}
	return false, NewTypeMismatchError("boolean", v)
}

func arithmeticPrimitives() map[string]func([]Value) (Value, error) {
	fold := func(name string, op func(acc, cur *big.Int) (*big.Int, error)) func([]Value) (Value, error) {
		return func(args []Value) (Value, error) {
			if len(args) < 2 {
				return nil, NewNumArgsError(2, args)
			}
			acc, err := numberArg(args[0])
			if err != nil {
				return nil, err
			}
			acc = new(big.Int).Set(acc)
			for _, a := range args[1:] {
				cur, err := numberArg(a)
				if err != nil {
					return nil, err
				}
				acc, err = op(acc, cur)
				if err != nil {
					return nil, err
				}
			}
			return Number{Value: acc}, nil
		}
	}
	div := func(acc, cur *big.Int) (*big.Int, error) {
		if cur.Sign() == 0 {
			return nil, NewDefaultError("division by zero")
		}
		return new(big.Int).Quo(acc, cur), nil
	}
	rem := func(acc, cur *big.Int) (*big.Int, error) {
		if cur.Sign() == 0 {
			return nil, NewDefaultError("division by zero")
		}
		return new(big.Int).Rem(acc, cur), nil
	}
	mod := func(acc, cur *big.Int) (*big.Int, error) {
		if cur.Sign() == 0 {
			return nil, NewDefaultError("division by zero")
		}
		return new(big.Int).Mod(acc, cur), nil
	}
	return map[string]func([]Value) (Value, error){
		"+":         fold("+", func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Add(a, b), nil }),
		"-":         fold("-", func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Sub(a, b), nil }),
		"*":         fold("*", func(a, b *big.Int) (*big.Int, error) { return new(big.Int).Mul(a, b), nil }),
		"/":         fold("/", div),
		"quotient":  fold("quotient", div),
		"mod":       fold("mod", mod),
		"remainder": fold("remainder", rem),
	}
}

// numberArg requires a strict Number (arithmetic is not specified to
// coerce strings/lists the way comparisons are in §4.3).
func numberArg(v Value) (*big.Int, error) {
	n, ok := v.(Number)
	if !ok {
		return nil, NewTypeMismatchError("number", v)
	}
	return n.Value, nil
}

func comparisonPrimitives() map[string]func([]Value) (Value, error) {
	numCmp := func(pred func(c int) bool) func([]Value) (Value, error) {
		return func(args []Value) (Value, error) {
			if len(args) != 2 {
				return nil, NewNumArgsError(2, args)
			}
			a, err := unpackNum(args[0])
			if err != nil {
				return nil, err
			}
			b, err := unpackNum(args[1])
			if err != nil {
				return nil, err
			}
			return boolVal(pred(a.Cmp(b))), nil
		}
	}
	strCmp := func(pred func(c int) bool) func([]Value) (Value, error) {
		return func(args []Value) (Value, error) {
			if len(args) != 2 {
				return nil, NewNumArgsError(2, args)
			}
			a, ok := args[0].(String)
			if !ok {
				return nil, NewTypeMismatchError("string", args[0])
			}
			b, ok := args[1].(String)
			if !ok {
				return nil, NewTypeMismatchError("string", args[1])
			}
			return boolVal(pred(strings.Compare(a.Value, b.Value))), nil
		}
	}
	boolOp := func(combine func(a, b bool) bool) func([]Value) (Value, error) {
		return func(args []Value) (Value, error) {
			if len(args) != 2 {
				return nil, NewNumArgsError(2, args)
			}
			a, err := unpackBool(args[0])
			if err != nil {
				return nil, err
			}
			b, err := unpackBool(args[1])
			if err != nil {
				return nil, err
			}
			return boolVal(combine(a, b)), nil
		}
	}
	return map[string]func([]Value) (Value, error){
		"=":            numCmp(func(c int) bool { return c == 0 }),
		"<":            numCmp(func(c int) bool { return c < 0 }),
		">":            numCmp(func(c int) bool { return c > 0 }),
		"/=":           numCmp(func(c int) bool { return c != 0 }),
		">=":           numCmp(func(c int) bool { return c >= 0 }),
		"<=":           numCmp(func(c int) bool { return c <= 0 }),
		"string=?":     strCmp(func(c int) bool { return c == 0 }),
		"string<?":     strCmp(func(c int) bool { return c < 0 }),
		"string>?":     strCmp(func(c int) bool { return c > 0 }),
		"string<=?":    strCmp(func(c int) bool { return c <= 0 }),
		"string>=?":    strCmp(func(c int) bool { return c >= 0 }),
		"&&":           boolOp(func(a, b bool) bool { return a && b }),
		"||":           boolOp(func(a, b bool) bool { return a || b }),
	}
}

func boolVal(b bool) Value {
	if b {
		return TrueVal
	}
	return FalseVal
}

func pairPrimitives() map[string]func([]Value) (Value, error) {
	return map[string]func([]Value) (Value, error){
		"car":  primCar,
		"cdr":  primCdr,
		"cons": primCons,
	}
}

func primCar(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NewNumArgsError(1, args)
	}
	switch v := args[0].(type) {
	case List:
		if len(v.Items) == 0 {
			return nil, NewTypeMismatchError("pair", v)
		}
		return v.Items[0], nil
	case DottedList:
		return v.Head[0], nil
	default:
		return nil, NewTypeMismatchError("pair", args[0])
	}
}

func primCdr(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NewNumArgsError(1, args)
	}
	switch v := args[0].(type) {
	case List:
		if len(v.Items) == 0 {
			return nil, NewTypeMismatchError("pair", v)
		}
		return List{Items: v.Items[1:]}, nil
	case DottedList:
		if len(v.Head) == 1 {
			return v.Tail, nil
		}
		return DottedList{Head: v.Head[1:], Tail: v.Tail}, nil
	default:
		return nil, NewTypeMismatchError("pair", args[0])
	}
}

func primCons(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, NewNumArgsError(2, args)
	}
	x, y := args[0], args[1]
	switch yv := y.(type) {
	case List:
		items := make([]Value, 0, len(yv.Items)+1)
		items = append(items, x)
		items = append(items, yv.Items...)
		return List{Items: items}, nil
	case DottedList:
		head := make([]Value, 0, len(yv.Head)+1)
		head = append(head, x)
		head = append(head, yv.Head...)
		return DottedList{Head: head, Tail: yv.Tail}, nil
	default:
		return DottedList{Head: []Value{x}, Tail: y}, nil
	}
}

func equalityPrimitives() map[string]func([]Value) (Value, error) {
	eqv := func(args []Value) (Value, error) {
		if len(args) != 2 {
			return nil, NewNumArgsError(2, args)
		}
		return boolVal(Equal(args[0], args[1])), nil
	}
	equalP := func(args []Value) (Value, error) {
		if len(args) != 2 {
			return nil, NewNumArgsError(2, args)
		}
		if Equal(args[0], args[1]) {
			return TrueVal, nil
		}
		if n1, err := unpackNum(args[0]); err == nil {
			if n2, err := unpackNum(args[1]); err == nil {
				return boolVal(n1.Cmp(n2) == 0), nil
			}
		}
		if s1, err := unpackStr(args[0]); err == nil {
			if s2, err := unpackStr(args[1]); err == nil {
				return boolVal(s1 == s2), nil
			}
		}
		if b1, err := unpackBool(args[0]); err == nil {
			if b2, err := unpackBool(args[1]); err == nil {
				return boolVal(b1 == b2), nil
			}
		}
		return FalseVal, nil
	}
	return map[string]func([]Value) (Value, error){
		"eqv?":   eqv,
		"eq?":    eqv,
		"equal?": equalP,
	}
}

func primNumberToString(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NewNumArgsError(1, args)
	}
	n, ok := args[0].(Number)
	if !ok {
		return nil, NewTypeMismatchError("number", args[0])
	}
	return String{Value: n.Value.String()}, nil
}
