// Command memscan reports where a byte string occurs in files.
//
//	memscan [flags] NEEDLE [FILE...]
//
// With no FILE, or when FILE is -, standard input is read. Files ending in
// .gz, .zst, .s2, .sz or .br are decompressed first. The exit status is 0 if
// any file matched, 1 if none did and 2 on error.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/mhr3/memscan/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := app.Main(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
