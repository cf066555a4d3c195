// Command wigpreview composites a wig onto portrait images from the
// command line.
//
// Usage:
//
//	wigpreview render -i portrait.png -m mask.png -w wig.png -o out.png
//	wigpreview batch --frames frames/ --masks masks/ -w wig.png -o out/
//	wigpreview gpuinfo
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
