package r5rs

// specialForms names the list heads that select non-standard evaluation,
// as opposed to an ordinary application. Anything that parses as
// (Atom ...) but does not match one of these is an application.
var specialForms = map[string]bool{
	"quote": true, "if": true, "cond": true, "case": true,
	"set!": true, "define": true, "lambda": true, "load": true,
}

// Eval evaluates v in env, dispatching on syntactic form the way the
// teacher's Message.Eval (message.go) walks a message chain resolving
// slots, generalized here to the spec's closed set of special forms
// instead of an open proto-chain of arbitrary slot names.
func Eval(interp *Interp, env *Env, v Value) (Value, error) {
	switch t := v.(type) {
	case String, Number, Bool:
		return v, nil
	case Atom:
		return Lookup(env, t.Name)
	case List:
		if len(t.Items) == 0 {
			return t, nil
		}
		if head, ok := t.Items[0].(Atom); ok && specialForms[head.Name] {
			interp.logDispatch(head.Name, envDepth(env))
			return evalSpecialForm(interp, env, head.Name, t)
		}
		return evalApplication(interp, env, t.Items)
	default:
		// DottedList (which the reader does produce, e.g. for (a . b)) is
		// returned unevaluated. Port, PrimitiveFunc, IOFunc, Func: not
		// produced by the reader; they arise only as results, and
		// evaluating one (e.g. a procedure bound and referenced without
		// being applied) simply yields itself.
		return v, nil
	}
}

func envDepth(env *Env) int {
	n := 0
	for e := env; e != nil; e = e.parent {
		n++
	}
	return n
}

func evalSpecialForm(interp *Interp, env *Env, name string, form List) (Value, error) {
	args := form.Items[1:]
	switch name {
	case "quote":
		return evalQuote(args, form)
	case "if":
		return evalIf(interp, env, args, form)
	case "cond":
		return evalCond(interp, env, args, form)
	case "case":
		return evalCase(interp, env, args, form)
	case "set!":
		return evalSet(interp, env, args, form)
	case "define":
		return evalDefine(interp, env, args, form)
	case "lambda":
		return evalLambda(env, args, form)
	case "load":
		return evalLoad(interp, env, args, form)
	default:
		panic("r5rs: unreachable special form " + name)
	}
}

func evalQuote(args []Value, form List) (Value, error) {
	if len(args) != 1 {
		return nil, NewBadSpecialFormError("quote requires exactly 1 argument", form)
	}
	return args[0], nil
}

func evalIf(interp *Interp, env *Env, args []Value, form List) (Value, error) {
	if len(args) != 3 {
		return nil, NewBadSpecialFormError("if requires a predicate, consequent, and alternative", form)
	}
	p, err := Eval(interp, env, args[0])
	if err != nil {
		return nil, err
	}
	if b, ok := p.(Bool); ok && !b.Value {
		return Eval(interp, env, args[2])
	}
	return Eval(interp, env, args[1])
}

func evalCond(interp *Interp, env *Env, clauses []Value, form List) (Value, error) {
	for i, c := range clauses {
		clause, ok := c.(List)
		if !ok || len(clause.Items) == 0 {
			return nil, NewBadSpecialFormError("cond clause must be a non-empty list", form)
		}
		test := clause.Items[0]
		body := clause.Items[1:]
		if a, ok := test.(Atom); ok && a.Name == "else" && i == len(clauses)-1 {
			return evalSequence(interp, env, body)
		}
		tv, err := Eval(interp, env, test)
		if err != nil {
			return nil, err
		}
		b, ok := tv.(Bool)
		if !ok {
			return nil, NewTypeMismatchError("boolean", tv)
		}
		if b.Value {
			return evalSequence(interp, env, body)
		}
	}
	return nil, NewBadSpecialFormError("no matching cond clause", form)
}

func evalCase(interp *Interp, env *Env, args []Value, form List) (Value, error) {
	if len(args) < 1 {
		return nil, NewBadSpecialFormError("case requires a key expression", form)
	}
	key, err := Eval(interp, env, args[0])
	if err != nil {
		return nil, err
	}
	clauses := args[1:]
	for i, c := range clauses {
		clause, ok := c.(List)
		if !ok || len(clause.Items) == 0 {
			return nil, NewBadSpecialFormError("case clause must be a non-empty list", form)
		}
		datumSpec := clause.Items[0]
		body := clause.Items[1:]
		if a, ok := datumSpec.(Atom); ok && a.Name == "else" && i == len(clauses)-1 {
			if len(body) == 0 {
				return nil, NewBadSpecialFormError("empty case clause body", form)
			}
			return evalSequence(interp, env, body)
		}
		datumList, ok := datumSpec.(List)
		if !ok {
			return nil, NewBadSpecialFormError("case clause datum must be a list", form)
		}
		for _, d := range datumList.Items {
			if Equal(key, d) {
				if len(body) == 0 {
					return nil, NewBadSpecialFormError("empty case clause body", form)
				}
				return evalSequence(interp, env, body)
			}
		}
	}
	return nil, NewBadSpecialFormError("no matching case clause", form)
}

func evalSet(interp *Interp, env *Env, args []Value, form List) (Value, error) {
	if len(args) != 2 {
		return nil, NewBadSpecialFormError("set! requires a name and an expression", form)
	}
	name, ok := args[0].(Atom)
	if !ok {
		return nil, NewBadSpecialFormError("set! requires a name", form)
	}
	v, err := Eval(interp, env, args[1])
	if err != nil {
		return nil, err
	}
	if err := Set(env, name.Name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func evalDefine(interp *Interp, env *Env, args []Value, form List) (Value, error) {
	if len(args) < 1 {
		return nil, NewBadSpecialFormError("define requires a target", form)
	}
	switch target := args[0].(type) {
	case Atom:
		if len(args) != 2 {
			return nil, NewBadSpecialFormError("define requires exactly one expression", form)
		}
		v, err := Eval(interp, env, args[1])
		if err != nil {
			return nil, err
		}
		Define(env, target.Name, v)
		return v, nil
	case List:
		if len(target.Items) == 0 {
			return nil, NewBadSpecialFormError("define requires a procedure name", form)
		}
		name, ok := target.Items[0].(Atom)
		if !ok {
			return nil, NewBadSpecialFormError("define requires a procedure name", form)
		}
		params, err := atomNames(target.Items[1:])
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, NewBadSpecialFormError("define requires a body", form)
		}
		fn := Func{Params: params, Body: args[1:], Closure: env}
		Define(env, name.Name, fn)
		return fn, nil
	case DottedList:
		if len(target.Head) == 0 {
			return nil, NewBadSpecialFormError("define requires a procedure name", form)
		}
		name, ok := target.Head[0].(Atom)
		if !ok {
			return nil, NewBadSpecialFormError("define requires a procedure name", form)
		}
		rest, ok := target.Tail.(Atom)
		if !ok {
			return nil, NewBadSpecialFormError("define varargs name must be an identifier", form)
		}
		params, err := atomNames(target.Head[1:])
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, NewBadSpecialFormError("define requires a body", form)
		}
		fn := Func{Params: params, Varargs: rest.Name, HasVarargs: true, Body: args[1:], Closure: env}
		Define(env, name.Name, fn)
		return fn, nil
	default:
		return nil, NewBadSpecialFormError("malformed define", form)
	}
}

func evalLambda(env *Env, args []Value, form List) (Value, error) {
	if len(args) < 2 {
		return nil, NewBadSpecialFormError("lambda requires a parameter list and a body", form)
	}
	body := args[1:]
	switch params := args[0].(type) {
	case List:
		names, err := atomNames(params.Items)
		if err != nil {
			return nil, err
		}
		return Func{Params: names, Body: body, Closure: env}, nil
	case DottedList:
		names, err := atomNames(params.Head)
		if err != nil {
			return nil, err
		}
		rest, ok := params.Tail.(Atom)
		if !ok {
			return nil, NewBadSpecialFormError("lambda varargs name must be an identifier", form)
		}
		return Func{Params: names, Varargs: rest.Name, HasVarargs: true, Body: body, Closure: env}, nil
	case Atom:
		return Func{Varargs: params.Name, HasVarargs: true, Body: body, Closure: env}, nil
	default:
		return nil, NewBadSpecialFormError("malformed lambda parameter list", form)
	}
}

func evalLoad(interp *Interp, env *Env, args []Value, form List) (Value, error) {
	if len(args) != 1 {
		return nil, NewBadSpecialFormError("load requires a path", form)
	}
	path, ok := args[0].(String)
	if !ok {
		return nil, NewTypeMismatchError("string", args[0])
	}
	exprs, err := interp.readAllFile(path.Value)
	if err != nil {
		return nil, err
	}
	return evalSequence(interp, env, exprs)
}

func atomNames(items []Value) ([]string, error) {
	names := make([]string, len(items))
	for i, v := range items {
		a, ok := v.(Atom)
		if !ok {
			return nil, NewTypeMismatchError("identifier", v)
		}
		names[i] = a.Name
	}
	return names, nil
}

// evalSequence evaluates each value in order and returns the last
// result; it is used for special-form and procedure bodies alike.
func evalSequence(interp *Interp, env *Env, body []Value) (Value, error) {
	var result Value = List{}
	for _, expr := range body {
		v, err := Eval(interp, env, expr)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func evalApplication(interp *Interp, env *Env, items []Value) (Value, error) {
	fn, err := Eval(interp, env, items[0])
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(items)-1)
	for i, expr := range items[1:] {
		v, err := Eval(interp, env, expr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return Apply(interp, fn, args)
}

// Apply invokes a callable Value with already-evaluated arguments, the
// way the teacher's apply (call.go) dispatches on the target's dynamic
// type once its Actor-ness is established.
func Apply(interp *Interp, fn Value, args []Value) (Value, error) {
	switch f := fn.(type) {
	case PrimitiveFunc:
		interp.logPrimitive(f.Name, len(args))
		v, err := f.Fn(args)
		if err != nil {
			interp.logError(err)
		}
		return v, err
	case IOFunc:
		interp.logPrimitive(f.Name, len(args))
		v, err := f.Fn(interp, args)
		if err != nil {
			interp.logError(err)
		}
		return v, err
	case Func:
		return applyFunc(interp, f, args)
	default:
		return nil, NewNotFunctionError("not a function", fn)
	}
}

func applyFunc(interp *Interp, f Func, args []Value) (Value, error) {
	if f.HasVarargs {
		if len(args) < len(f.Params) {
			return nil, NewNumArgsError(len(f.Params), args)
		}
	} else if len(args) != len(f.Params) {
		return nil, NewNumArgsError(len(f.Params), args)
	}
	names := make([]string, 0, len(f.Params)+1)
	values := make([]Value, 0, len(f.Params)+1)
	names = append(names, f.Params...)
	values = append(values, args[:len(f.Params)]...)
	if f.HasVarargs {
		names = append(names, f.Varargs)
		values = append(values, List{Items: append([]Value{}, args[len(f.Params):]...)})
	}
	child := Extend(f.Closure, names, values)
	return evalSequence(interp, child, f.Body)
}
