// boleto extracts payment fields from Brazilian boleto documents.
//
// Usage:
//
//	boleto extract <file|->         print the extracted record as JSON
//	boleto text <file>              print the acquired text layer
//	boleto batch --dir <dir>        process a folder into an XLSX report
//	boleto watch --dir <dir>        process documents dropped into a folder
//	boleto serve                    run the HTTP API
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	var exit exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
