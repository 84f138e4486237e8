package r5rs

import (
	"io"
	"os"
	"path/filepath"
)

// Interp is the evaluation context: the global environment plus the
// ambient I/O streams and load path primitives consult. It plays the
// role the teacher's VM plays (vm.go) — a single handle threaded through
// every evaluation step and primitive call — generalized from the
// teacher's object-memoization tables (NumberMemo, StringMemo) to this
// spec's simpler needs (no value memoization is required; Number and
// String values are cheap Go structs).
type Interp struct {
	Global *Env

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LoadPath is the directory relative paths given to load, read-all,
	// read-contents, and open-*-file are resolved against. Empty means
	// the process's current working directory.
	LoadPath string

	logger Logger
}

// NewInterp constructs an Interp with its global environment populated
// with every primitive and I/O primitive, applying the given options in
// order.
func NewInterp(opts ...Option) *Interp {
	in := &Interp{
		Global: NewEnv(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(in)
	}
	RegisterPrimitives(in.Global)
	RegisterIOPrimitives(in.Global)
	return in
}

// EvalExpr evaluates an already-parsed Value in the interpreter's global
// environment.
func (in *Interp) EvalExpr(v Value) (Value, error) {
	return Eval(in, in.Global, v)
}

// EvalString parses and evaluates one expression of source text in the
// global environment.
func (in *Interp) EvalString(src string) (Value, error) {
	v, err := ParseOne(src)
	if err != nil {
		return nil, err
	}
	return in.EvalExpr(v)
}

// EvalStringDisplay is the top-level error handler described in §7: it
// converts any evaluation error into its displayed form and returns that
// in place of a value, so callers (the REPL) never need to type-switch
// on error vs. value themselves.
func (in *Interp) EvalStringDisplay(src string) string {
	v, err := in.EvalString(src)
	if err != nil {
		return err.Error()
	}
	return v.String()
}

// RunFile evaluates (load path) in the global environment after binding
// the Scheme-level variable "args" to a List of the given strings, per
// §6's batch-mode contract.
func (in *Interp) RunFile(path string, args []string) (Value, error) {
	items := make([]Value, len(args))
	for i, a := range args {
		items[i] = String{Value: a}
	}
	Define(in.Global, "args", List{Items: items})
	form := List{Items: []Value{Atom{Name: "load"}, String{Value: path}}}
	return in.EvalExpr(form)
}

// resolvePath joins a relative path against LoadPath; absolute paths are
// returned unchanged.
func (in *Interp) resolvePath(path string) string {
	if in.LoadPath == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(in.LoadPath, path)
}

// readAllFile reads and parses every expression in the file at path, for
// use by the load special form.
func (in *Interp) readAllFile(path string) ([]Value, error) {
	data, err := os.ReadFile(in.resolvePath(path))
	if err != nil {
		return nil, WrapHostError(err)
	}
	return ParseAll(string(data))
}
