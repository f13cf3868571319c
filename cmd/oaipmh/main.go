package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/pslits/oai-pmh-sub003/internal/cli"
	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(oaipmh.ExitPanic)
		}
	}()

	if os.Getenv("OAIPMH_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(oaipmh.ExitCodeForError(err))
	}
}
