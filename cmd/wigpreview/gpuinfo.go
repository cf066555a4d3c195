package main

import (
	"fmt"
	"io"

	"github.com/gogpu/wigfit"
	"github.com/spf13/cobra"
)

// probeSize is the frame size used to test accelerator initialization.
const probeSize = 64

func newGPUInfoCmd(_ *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gpuinfo",
		Short: "Report whether the GPU accelerator can initialize",
		RunE: func(cmd *cobra.Command, args []string) error {
			gpuInfo(cmd.OutOrStdout(), wigfit.Accelerator())
			return nil
		},
	}
}

// gpuInfo initializes a, reports the outcome and closes it again.
func gpuInfo(w io.Writer, a wigfit.FlattenAccelerator) {
	if a == nil {
		fmt.Fprintln(w, "accelerator: none registered (built with nogpu?)")
		return
	}
	fmt.Fprintf(w, "accelerator: %s\n", a.Name())
	if !a.IsSupported() {
		fmt.Fprintln(w, "supported:   no")
		return
	}
	fmt.Fprintln(w, "supported:   yes")

	if err := a.Init(probeSize, probeSize); err != nil {
		fmt.Fprintf(w, "init:        failed: %v\n", err)
		return
	}
	defer a.Close()
	fmt.Fprintln(w, "init:        ok")
	if n, ok := a.(interface{ AdapterName() string }); ok {
		fmt.Fprintf(w, "adapter:     %s\n", n.AdapterName())
	}
}
