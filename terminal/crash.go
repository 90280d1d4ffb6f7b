package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
)

// ReportCrash restores the console and prints the panic value with its stack to stderr
// Intended for a deferred recover in main, before exiting non-zero
func ReportCrash(name string, r any) {
	EmergencyReset(os.Stdout)
	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", name, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()
}
