package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	writeFatal(os.Stderr, format, args...)
	os.Exit(1)
}

// ExitCode maps a command's final error to a process status. An interrupted
// run (context canceled) is a normal exit.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	return 1
}

func writeFatal(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
