package r5rs

import (
	"fmt"
	"io"
	"os"
)

// portHandle is the mutable state behind a Port value. It is heap
// allocated once per open call and shared by every Port Value that
// refers to it, so closing one reference closes the file for all of
// them — the direct analogue of the teacher's *os.File embedded in File
// (file.go), trimmed to just what the spec's Port needs.
type portHandle struct {
	file   *os.File
	dir    PortDirection
	closed bool
}

// RegisterIOPrimitives binds every I/O-capable built-in from §4.5 into
// env, grounded on the teacher's initFile (file.go) slot registration,
// generalized from Io's method-table-per-type to this spec's single flat
// global environment.
func RegisterIOPrimitives(env *Env) {
	prims := map[string]func(*Interp, []Value) (Value, error){
		"apply":             primApply,
		"open-input-file":   primOpenInputFile,
		"open-output-file":  primOpenOutputFile,
		"close-input-port":  primCloseInputPort,
		"close-output-port": primCloseOutputPort,
		"read":              primRead,
		"write":             primWrite,
		"read-contents":     primReadContents,
		"read-all":          primReadAll,
	}
	for name, fn := range prims {
		Define(env, name, IOFunc{Name: name, Fn: fn})
	}
}

// primApply implements `apply f args… [restList]`: if the last argument
// is a List, it is spread onto the call; otherwise every argument is
// passed through verbatim, per §4.5.
func primApply(interp *Interp, args []Value) (Value, error) {
	if len(args) < 1 {
		return nil, NewNumArgsError(1, args)
	}
	fn := args[0]
	rest := args[1:]
	if len(rest) > 0 {
		if spread, ok := rest[len(rest)-1].(List); ok {
			final := make([]Value, 0, len(rest)-1+len(spread.Items))
			final = append(final, rest[:len(rest)-1]...)
			final = append(final, spread.Items...)
			return Apply(interp, fn, final)
		}
	}
	return Apply(interp, fn, rest)
}

func primOpenInputFile(interp *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NewNumArgsError(1, args)
	}
	path, ok := args[0].(String)
	if !ok {
		return nil, NewTypeMismatchError("string", args[0])
	}
	f, err := os.Open(interp.resolvePath(path.Value))
	if err != nil {
		return nil, WrapHostError(err)
	}
	return Port{handle: &portHandle{file: f, dir: PortInput}}, nil
}

func primOpenOutputFile(interp *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NewNumArgsError(1, args)
	}
	path, ok := args[0].(String)
	if !ok {
		return nil, NewTypeMismatchError("string", args[0])
	}
	f, err := os.Create(interp.resolvePath(path.Value))
	if err != nil {
		return nil, WrapHostError(err)
	}
	return Port{handle: &portHandle{file: f, dir: PortOutput}}, nil
}

// primCloseInputPort and primCloseOutputPort return #f on a non-port
// argument rather than erroring, per §4.5.
func primCloseInputPort(_ *Interp, args []Value) (Value, error) {
	return closePort(args)
}

func primCloseOutputPort(_ *Interp, args []Value) (Value, error) {
	return closePort(args)
}

func closePort(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NewNumArgsError(1, args)
	}
	p, ok := args[0].(Port)
	if !ok {
		return FalseVal, nil
	}
	if p.handle.closed {
		return FalseVal, nil
	}
	p.handle.closed = true
	if err := p.handle.file.Close(); err != nil {
		return FalseVal, nil
	}
	return TrueVal, nil
}

// primRead reads one line from the given Port (default stdin), parses
// it as one expression, and returns the resulting Value.
func primRead(interp *Interp, args []Value) (Value, error) {
	var r io.Reader
	switch len(args) {
	case 0:
		r = interp.Stdin
	case 1:
		p, ok := args[0].(Port)
		if !ok {
			return nil, NewTypeMismatchError("port", args[0])
		}
		if p.handle.closed {
			return nil, NewDefaultError("read from closed port")
		}
		r = p.handle.file
	default:
		return nil, NewNumArgsError(1, args)
	}
	line, err := readLine(r)
	if err != nil {
		return nil, WrapHostError(err)
	}
	return ParseOne(line)
}

// primWrite writes the printed form of obj followed by a newline to the
// port (default stdout), preserving the trailing newline per the §9
// Open Question resolution.
func primWrite(interp *Interp, args []Value) (Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, NewNumArgsError(1, args)
	}
	var w io.Writer = interp.Stdout
	if len(args) == 2 {
		p, ok := args[1].(Port)
		if !ok {
			return nil, NewTypeMismatchError("port", args[1])
		}
		if p.handle.closed {
			return nil, NewDefaultError("write to closed port")
		}
		w = p.handle.file
	}
	if _, err := fmt.Fprintf(w, "%s\n", args[0].String()); err != nil {
		return nil, WrapHostError(err)
	}
	return TrueVal, nil
}

func primReadContents(interp *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NewNumArgsError(1, args)
	}
	path, ok := args[0].(String)
	if !ok {
		return nil, NewTypeMismatchError("string", args[0])
	}
	data, err := os.ReadFile(interp.resolvePath(path.Value))
	if err != nil {
		return nil, WrapHostError(err)
	}
	return String{Value: string(data)}, nil
}

func primReadAll(interp *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NewNumArgsError(1, args)
	}
	path, ok := args[0].(String)
	if !ok {
		return nil, NewTypeMismatchError("string", args[0])
	}
	exprs, err := interp.readAllFile(path.Value)
	if err != nil {
		return nil, err
	}
	return List{Items: exprs}, nil
}

// readLine reads one line byte by byte from r, stopping at '\n' (which
// is discarded) or EOF, and trims a trailing '\r'. It returns io.EOF
// only when no bytes were read at all, mirroring the teacher's
// File.ReadLine (file.go) EOF convention. Reading byte by byte rather
// than through a buffered reader avoids over-reading past the line on
// arbitrary io.Reader values (stdin, pipes) that cannot be seeked back,
// the same problem the teacher's custom ReadLine works around.
func readLine(r io.Reader) (string, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			line = append(line, buf[0])
		}
		if err != nil {
			if err == io.EOF {
				if len(line) == 0 {
					return "", io.EOF
				}
				break
			}
			return "", err
		}
	}
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return string(line), nil
}
