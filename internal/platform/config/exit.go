package config

import (
	"fmt"
	"os"
	"strings"
)

// Exitf prints a one-line error to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	os.Exit(1)
}
