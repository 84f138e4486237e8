// Command r5rs is the file-mode and REPL driver for the interpreter, the
// counterpart to the teacher's cmd/io/main.go and io/main.go.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/whst/r5rs"
)

const (
	prompt  = "r5rs> "
	goodbye = "goodbye"
)

func main() {
	logEnabled := flag.Bool("log", false, "enable structured evaluation-trace logging to stderr")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, or error")
	flag.Parse()

	opts := []r5rs.Option{}
	if *logEnabled {
		logger, err := r5rs.NewLogger(*logLevel)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		opts = append(opts, r5rs.WithLogger(logger))
	}

	in := r5rs.NewInterp(opts...)

	args := flag.Args()
	if len(args) == 0 {
		runREPL(in)
		return
	}
	runFile(in, args[0], args[1:])
}

// runFile implements the batch-mode contract in §6: evaluate (load
// script) and print the resulting value, or the error string, to
// standard error.
func runFile(in *r5rs.Interp, script string, rest []string) {
	v, err := in.RunFile(script, rest)
	if err != nil {
		fmt.Fprintln(in.Stderr, err.Error())
		return
	}
	fmt.Fprintln(in.Stderr, v.String())
}

// runREPL implements the line-oriented prompt loop in §6: the literal
// line "quit" and end-of-input both terminate the loop with a fixed
// goodbye line, grounded on the teacher's io/main.go scan-eval-print
// loop.
func runREPL(in *r5rs.Interp) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, prompt)
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "quit" {
			break
		}
		fmt.Fprintln(os.Stdout, in.EvalStringDisplay(line))
	}
	fmt.Fprintln(os.Stdout, goodbye)
}
