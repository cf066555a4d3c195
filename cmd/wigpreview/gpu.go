//go:build !nogpu

package main

// Register the wgpu accelerator; --gpu selects it at run time.
import _ "github.com/gogpu/wigfit/gpu"
