package r5rs

import "io"

// Option configures an Interp at construction time, generalizing the
// teacher's NewVM (vm.go), which wires its memoization tables and
// standard streams inline with no way for a caller to override them.
// Here construction is opened up the way the pack's more modern repos
// (cellux-langsam's langsam.go) expose functional options, so tests can
// swap in buffers for stdin/stdout/stderr without touching the process's
// real file descriptors.
type Option func(*Interp)

// WithStdin overrides the stream `read` consults by default.
func WithStdin(r io.Reader) Option {
	return func(in *Interp) { in.Stdin = r }
}

// WithStdout overrides the stream `write` targets by default.
func WithStdout(w io.Writer) Option {
	return func(in *Interp) { in.Stdout = w }
}

// WithStderr overrides the stream batch-mode results are printed to.
func WithStderr(w io.Writer) Option {
	return func(in *Interp) { in.Stderr = w }
}

// WithLoadPath sets the directory relative load/file paths resolve
// against.
func WithLoadPath(path string) Option {
	return func(in *Interp) { in.LoadPath = path }
}

// WithLogger attaches a structured logger; see logging.go.
func WithLogger(l Logger) Option {
	return func(in *Interp) { in.logger = l }
}
