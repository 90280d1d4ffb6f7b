package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lixenwraith/retui/terminal"
)

func main() {
	// Restore the console before the trace is printed, otherwise it lands on the alternate screen
	defer func() {
		if r := recover(); r != nil {
			terminal.ReportCrash("RETUI-DEMO", r)
			os.Exit(1)
		}
	}()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "retui-demo: %v\n", err)
		os.Exit(1)
	}
}
