//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/flatten.wgsl
var flattenShaderWGSL string

// Entry points of flatten.wgsl.
const (
	transformEntryPoint = "transform_main"
	smoothEntryPoint    = "smooth_main"
)

// compileShaderToSPIRV compiles WGSL source to SPIR-V words.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V length %d is not word aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// createFlattenShader compiles flatten.wgsl and creates the shader module.
func createFlattenShader(device hal.Device) (hal.ShaderModule, error) {
	spirv, err := compileShaderToSPIRV(flattenShaderWGSL)
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "flatten",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
}
